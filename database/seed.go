package database

import (
	"log"

	"resto_manager/constants"
	"resto_manager/model"
	"resto_manager/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData crea datos mínimos de demostración. Idempotente: usa FirstOrCreate.
func SeedData(db *gorm.DB) {
	var org model.Organization
	if err := db.Where(model.Organization{Name: "Demo Restaurante"}).FirstOrCreate(&org).Error; err != nil {
		log.Println("failed to seed organization:", err)
		return
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "123456cn"
	}
	users := []model.User{
		{Username: "admin", Password: hashPassword, Name: "Administrador", Role: constants.ROLE_ADMIN, Active: true, OrganizationID: org.ID},
		{Username: "mesero1", Password: hashPassword, Name: "Mesero Demo", Role: constants.ROLE_MESERO, Active: true, OrganizationID: org.ID},
		{Username: "cocina1", Password: hashPassword, Name: "Cocina Demo", Role: constants.ROLE_COCINERO, Active: true, OrganizationID: org.ID},
		{Username: "caja1", Password: hashPassword, Name: "Caja Demo", Role: constants.ROLE_CAJERO, Active: true, OrganizationID: org.ID},
	}
	for _, user := range users {
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Username, "error:", err)
		}
	}

	for n := 1; n <= 6; n++ {
		table := model.Table{Number: n, OrganizationID: org.ID, Capacity: 4, Blockable: true, Status: model.TableDisponible}
		if err := db.Where(model.Table{Number: n, OrganizationID: org.ID}).FirstOrCreate(&table).Error; err != nil {
			log.Println("failed to seed table:", n, "error:", err)
		}
	}

	ingredients := []model.InventoryItem{
		{Name: "Café molido", Unit: "gr", CurrentStock: 5000, OrganizationID: org.ID},
		{Name: "Leche", Unit: "ml", CurrentStock: 20000, OrganizationID: org.ID},
		{Name: "Pan de hamburguesa", Unit: "unidad", CurrentStock: 60, OrganizationID: org.ID},
		{Name: "Carne de res", Unit: "gr", CurrentStock: 12000, OrganizationID: org.ID},
	}
	byName := map[string]uint{}
	for _, ing := range ingredients {
		if err := db.Where(model.InventoryItem{Name: ing.Name, OrganizationID: org.ID}).FirstOrCreate(&ing).Error; err != nil {
			log.Println("failed to seed inventory:", ing.Name, "error:", err)
			continue
		}
		byName[ing.Name] = ing.ID
	}

	// Precios en centavos: 18000.00 COP → 1800000
	menu := []model.MenuItem{
		{Name: "Hamburguesa clásica", Category: "platos", Price: 1800000, UseInventory: true, OrganizationID: org.ID, Ingredients: []model.MenuItemIngredient{
			{InventoryItemID: byName["Pan de hamburguesa"], Quantity: 1},
			{InventoryItemID: byName["Carne de res"], Quantity: 150},
		}},
		{Name: "Café con leche", Category: "bebidas", Price: 450000, UseInventory: true, OrganizationID: org.ID, Ingredients: []model.MenuItemIngredient{
			{InventoryItemID: byName["Café molido"], Quantity: 18},
			{InventoryItemID: byName["Leche"], Quantity: 120},
		}},
		{Name: "Gaseosa 350ml", Category: "bebidas", Price: 500000, Direct: true, Stock: utils.Ptr(48), OrganizationID: org.ID},
		{Name: "Agua en botella", Category: "bebidas", Price: 350000, Direct: true, OrganizationID: org.ID},
	}
	for _, item := range menu {
		if err := db.Where(model.MenuItem{Name: item.Name, OrganizationID: org.ID}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed menu item:", item.Name, "error:", err)
		}
	}
}
