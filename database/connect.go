package database

import (
	"fmt"
	"strconv"

	"resto_manager/config"
	"resto_manager/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Índice parcial: a lo sumo una orden activa (no terminal) por mesa. Respaldo
// en la base del candado sobre la fila de la mesa al crear órdenes.
var activeOrderIndexSQL = fmt.Sprintf(
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_org_table_active_order ON orders (organization_id, table_number) WHERE status NOT IN ('%s', '%s')",
	model.OrderPagado, model.OrderCancelado,
)

func ConnectDB() {
	var err error
	p := config.ConfigDefault("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	DB.AutoMigrate(
		&model.Organization{},
		&model.User{},
		&model.Table{},
		&model.InventoryItem{},
		&model.MenuItem{},
		&model.MenuItemIngredient{},
		&model.Order{},
		&model.OrderItem{},
		&model.Transaction{},
		&model.PrepTimeStat{},
	)
	DB.Exec(activeOrderIndexSQL)
	fmt.Println("Database Migrated")

	SeedData(DB)
}
