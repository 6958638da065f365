package services

import (
	"beautysalon-backend/models"

	"gorm.io/gorm"
)

// ServiceSpec is the catalog entry the scheduling engine works with.
type ServiceSpec struct {
	DurationMinutes int
	Price           float64
	MaxConcurrent   int
	Points          int
}

// Catalog resolves a service name to its booking parameters. The production
// implementation reads the services table; tests inject a MapCatalog.
type Catalog interface {
	Lookup(name string) (ServiceSpec, bool)
}

type DBCatalog struct {
	db *gorm.DB
}

func NewDBCatalog(db *gorm.DB) *DBCatalog {
	return &DBCatalog{db: db}
}

func (c *DBCatalog) Lookup(name string) (ServiceSpec, bool) {
	var svc models.Service
	err := c.db.Where("name = ? AND is_active = ?", name, true).First(&svc).Error
	if err != nil {
		return ServiceSpec{}, false
	}
	return ServiceSpec{
		DurationMinutes: svc.Duration,
		Price:           svc.Price,
		MaxConcurrent:   svc.MaxConcurrent,
		Points:          svc.Points,
	}, true
}

// MapCatalog is an in-memory catalog for tests and fixtures.
type MapCatalog map[string]ServiceSpec

func (m MapCatalog) Lookup(name string) (ServiceSpec, bool) {
	spec, ok := m[name]
	return spec, ok
}

// SeedCatalog inserts the default service list on first startup.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Service{
		{Name: "Manikura", Price: 25, Duration: 45, MaxConcurrent: 2, Points: 10, Category: "Nails"},
		{Name: "Pedikura", Price: 45, Duration: 45, MaxConcurrent: 2, Points: 10, Category: "Nails"},
		{Name: "Gel nokti", Price: 35, Duration: 60, MaxConcurrent: 1, Points: 15, Category: "Nails"},
		{Name: "Šišanje", Price: 20, Duration: 30, MaxConcurrent: 1, Points: 10, Category: "Hair"},
		{Name: "Feniranje", Price: 15, Duration: 30, MaxConcurrent: 1, Points: 5, Category: "Hair"},
		{Name: "Masaža", Price: 50, Duration: 60, MaxConcurrent: 1, Points: 20, Category: "Body"},
	}
	for i := range defaults {
		defaults[i].IsActive = true
		if err := db.Create(&defaults[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
