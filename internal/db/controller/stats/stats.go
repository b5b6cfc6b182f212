// Package stats computes the aggregated figures shown on the dashboard.
package stats

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Dashboard holds record totals and status histograms.
type Dashboard struct {
	TotalPeople         int64            `json:"totalPeople"`
	TotalUsers          int64            `json:"totalUsers"`
	TotalReports        int64            `json:"totalReports"`
	TotalAnimals        int64            `json:"totalAnimals"`
	TotalCampaigns      int64            `json:"totalCampaigns"`
	TotalEvents         int64            `json:"totalEvents"`
	TotalBreeds         int64            `json:"totalBreeds"`
	ReportStatusSummary map[string]int64 `json:"reportStatusSummary"`
	AnimalStatusSummary map[string]int64 `json:"animalStatusSummary"`
}

type statusCount struct {
	Status string
	N      int64
}

// Collect computes the dashboard. Accounts whose email equals hiddenEmail
// (the bootstrap administrator) are left out of TotalUsers.
func Collect(ctx context.Context, db *gorm.DB, hiddenEmail string) (*Dashboard, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.WithContext(ctx)
	d := &Dashboard{}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Person{}, &d.TotalPeople},
		{&models.Report{}, &d.TotalReports},
		{&models.Animal{}, &d.TotalAnimals},
		{&models.Campaign{}, &d.TotalCampaigns},
		{&models.Event{}, &d.TotalEvents},
		{&models.Breed{}, &d.TotalBreeds},
	}

	for _, c := range counts {
		if err := tx.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("count records: %w", err)
		}
	}

	users := tx.Model(&models.User{})
	if hiddenEmail != "" {
		users = users.Where("email <> ?", hiddenEmail)
	}

	if err := users.Count(&d.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var err error

	if d.ReportStatusSummary, err = histogram(tx, &models.Report{}); err != nil {
		return nil, err
	}

	if d.AnimalStatusSummary, err = histogram(tx, &models.Animal{}); err != nil {
		return nil, err
	}

	return d, nil
}

func histogram(tx *gorm.DB, model any) (map[string]int64, error) {
	var rows []statusCount

	err := tx.Model(model).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group by status: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}

	return out, nil
}
