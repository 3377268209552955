package helper

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"resto_manager/model"
)

func TestBuildPrepTimeStats(t *testing.T) {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	row := func(menuItem uint, minutes float64) PrepRow {
		return PrepRow{
			MenuItemID:     menuItem,
			OrganizationID: 1,
			StartedAt:      base,
			CompletedAt:    base.Add(time.Duration(minutes * float64(time.Minute))),
		}
	}

	rows := []PrepRow{
		row(1, 10),
		row(1, 20),
		row(1, 30),
		row(2, 5),
		row(2, -3), // reloj desincronizado: se descarta
	}

	stats := BuildPrepTimeStats(rows, "2025-08-01")
	sort.Slice(stats, func(i, j int) bool { return stats[i].MenuItemID < stats[j].MenuItemID })

	want := []model.PrepTimeStat{
		{MenuItemID: 1, Date: "2025-08-01", OrganizationID: 1, Count: 3, AvgMinutes: 20, MinMinutes: 10, MaxMinutes: 30},
		{MenuItemID: 2, Date: "2025-08-01", OrganizationID: 1, Count: 1, AvgMinutes: 5, MinMinutes: 5, MaxMinutes: 5},
	}
	if !reflect.DeepEqual(stats, want) {
		t.Errorf("BuildPrepTimeStats() = %+v, want %+v", stats, want)
	}
}

func TestBuildPrepTimeStatsDeterministic(t *testing.T) {
	base := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := []PrepRow{
		{MenuItemID: 1, OrganizationID: 1, StartedAt: base, CompletedAt: base.Add(8 * time.Minute)},
		{MenuItemID: 1, OrganizationID: 1, StartedAt: base, CompletedAt: base.Add(12 * time.Minute)},
	}

	// Re-correr con las mismas filas produce el mismo agregado (el upsert
	// por clave hace idempotente la corrida completa).
	first := BuildPrepTimeStats(rows, "2025-08-01")
	second := BuildPrepTimeStats(rows, "2025-08-01")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("dos corridas difieren: %+v vs %+v", first, second)
	}
	if len(first) != 1 || first[0].Count != 2 || first[0].AvgMinutes != 10 {
		t.Errorf("agregado inesperado: %+v", first)
	}
}

func TestBuildPrepTimeStatsEmpty(t *testing.T) {
	if stats := BuildPrepTimeStats(nil, "2025-08-01"); len(stats) != 0 {
		t.Errorf("sin filas debe dar cero agregados, dio %d", len(stats))
	}
}
