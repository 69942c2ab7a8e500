package seeders

import (
	"time"

	"github.com/aarondl/null/v8"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
)

func day(s string) null.Time {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return null.TimeFrom(t)
}

// demoEquipment covers every category and every alert kind relative to the
// day it is seeded.
func demoEquipment() []entities.Equipment {
	now := time.Now()
	soon := null.TimeFrom(now.AddDate(0, 0, 7))
	old := null.TimeFrom(now.AddDate(-2, 0, 0))

	return []entities.Equipment{
		{
			Name: "Analytical balance", Stock: 2, Category: constants.CategoryCentralLab,
			Brand: null.StringFrom("Sartorius"), Model: null.StringFrom("Quintix 125D"),
			Location: null.StringFrom("Lab 1"), Responsible: null.StringFrom("M. Rivera"),
			Status: constants.StatusActive, AcquisitionDate: day("2021-03-15"),
			LastCalibration: null.TimeFrom(now.AddDate(0, -11, 0)), NextCalibration: soon,
		},
		{
			Name: "Muffle furnace", Stock: 1, Category: constants.CategoryCentralLab,
			Brand: null.StringFrom("Thermo"), Location: null.StringFrom("Lab 1"),
			Status: constants.StatusActive, LastCalibration: old,
		},
		{
			Name: "GPS receiver", Stock: 4, Category: constants.CategoryField,
			Brand: null.StringFrom("Garmin"), Model: null.StringFrom("GPSMAP 66"),
			Location: null.StringFrom("Warehouse"), Status: constants.StatusActive,
		},
		{
			Name: "Nitrile gloves (box)", Stock: 40, Category: constants.CategorySafetyConsumable,
			Location: null.StringFrom("Warehouse"), Status: constants.StatusActive,
		},
		{
			Name: "Buffer solution pH 7", Stock: 12, Category: constants.CategoryCentralLabConsumable,
			Brand: null.StringFrom("Hanna"), Status: constants.StatusActive,
		},
		{
			Name: "Portable pH meter", Stock: 3, Category: constants.CategoryFieldLab,
			Brand: null.StringFrom("Hanna"), Model: null.StringFrom("HI98107"),
			Location: null.StringFrom("Field kit A"), Status: constants.StatusInactive,
			LastCalibration: old,
		},
	}
}
