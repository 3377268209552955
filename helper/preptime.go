package helper

import (
	"log"
	"time"

	"resto_manager/database"
	"resto_manager/model"
	"resto_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm/clause"
)

// PrepRow es una fila de ítem terminado, lo mínimo para agregar tiempos.
type PrepRow struct {
	MenuItemID     uint
	OrganizationID uint
	StartedAt      time.Time
	CompletedAt    time.Time
}

// BuildPrepTimeStats agrega tiempos de preparación por producto para un día.
// Descarta duraciones negativas (reloj desincronizado). Determinista: correr
// dos veces con las mismas filas produce los mismos agregados.
func BuildPrepTimeStats(rows []PrepRow, dateKey string) []model.PrepTimeStat {
	type acc struct {
		org   uint
		count int
		sum   float64
		min   float64
		max   float64
	}
	byItem := map[uint]*acc{}

	for _, row := range rows {
		minutes := row.CompletedAt.Sub(row.StartedAt).Minutes()
		if minutes < 0 {
			continue
		}
		a, ok := byItem[row.MenuItemID]
		if !ok {
			a = &acc{org: row.OrganizationID, min: minutes, max: minutes}
			byItem[row.MenuItemID] = a
		}
		a.count++
		a.sum += minutes
		if minutes < a.min {
			a.min = minutes
		}
		if minutes > a.max {
			a.max = minutes
		}
	}

	stats := make([]model.PrepTimeStat, 0, len(byItem))
	for menuItemID, a := range byItem {
		stats = append(stats, model.PrepTimeStat{
			MenuItemID:     menuItemID,
			Date:           dateKey,
			OrganizationID: a.org,
			Count:          a.count,
			AvgMinutes:     a.sum / float64(a.count),
			MinMinutes:     a.min,
			MaxMinutes:     a.max,
		})
	}
	return stats
}

// ComputePrepTimeStats corre el agregado del día (hora de Colombia) y hace
// upsert por (producto, fecha): re-ejecutar sobrescribe, nunca duplica.
func ComputePrepTimeStats(day time.Time) error {
	db := database.DB
	start, end := utils.DayBounds(day)
	dateKey := utils.DateKey(day)

	var rows []PrepRow
	err := db.Model(&model.OrderItem{}).
		Select("order_items.menu_item_id, orders.organization_id, order_items.started_at, order_items.completed_at").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.status IN ?", []string{model.ItemListo, model.ItemServido}).
		Where("order_items.completed_at BETWEEN ? AND ?", start, end).
		Where("order_items.started_at IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	stats := BuildPrepTimeStats(rows, dateKey)
	if len(stats) == 0 {
		return nil
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "menu_item_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"organization_id", "count", "avg_minutes", "min_minutes", "max_minutes", "updated_at"}),
	}).Create(&stats).Error
}

var (
	prepTimeScheduler gocron.Scheduler
	intradayCron      *cron.Cron
)

// StartPrepTimeScheduler programa el agregado diario a las 23:55 hora de
// Colombia, más un refresco cada 30 minutos para los tableros de cocina.
func StartPrepTimeScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(utils.BogotaZone),
	)
	if err != nil {
		log.Printf("Error creando scheduler de tiempos de cocina: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(23, 55, 0),
			),
		),
		gocron.NewTask(func() {
			if err := ComputePrepTimeStats(time.Now()); err != nil {
				log.Printf("Error en agregado diario de tiempos: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("Error programando agregado diario: %v", err)
		return
	}

	s.Start()
	prepTimeScheduler = s

	intradayCron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	_, err = intradayCron.AddFunc("*/30 * * * *", func() {
		if err := ComputePrepTimeStats(time.Now()); err != nil {
			log.Printf("Error en refresco de tiempos de cocina: %v", err)
		}
	})
	if err != nil {
		log.Printf("Error programando refresco intradía: %v", err)
		return
	}
	intradayCron.Start()

	log.Println("Scheduler de tiempos de cocina iniciado (23:55 COT + cada 30 min)")
}

func StopPrepTimeScheduler() {
	if prepTimeScheduler != nil {
		_ = prepTimeScheduler.Shutdown()
	}
	if intradayCron != nil {
		intradayCron.Stop()
	}
	log.Println("Scheduler de tiempos de cocina detenido")
}
