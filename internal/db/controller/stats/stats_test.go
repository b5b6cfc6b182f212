package stats

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abrigo-digital/shelter-admin/internal/db/models"
	"github.com/abrigo-digital/shelter-admin/internal/rbac"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	return db
}

func TestCollect(t *testing.T) {
	db := setupTestDB(t)

	seed := []any{
		&models.User{Email: "admin@teste.com.br", Name: "Admin", Password: "x", Role: rbac.RoleAdmin, Active: true},
		&models.User{Email: "ana@shelter.org", Name: "Ana", Password: "x", Role: rbac.RoleEditor, Active: true},
		&models.Breed{Name: "Mixed"},
		&models.Animal{Name: "Rex", Species: models.SpeciesDog, Status: models.AnimalStatusAdoptable},
		&models.Animal{Name: "Mia", Species: models.SpeciesCat, Status: models.AnimalStatusAdoptable},
		&models.Animal{Name: "Bob", Species: models.SpeciesDog, Status: models.AnimalStatusTreatment},
		&models.Report{Title: "Dog chained"},
		&models.Report{Title: "Cat abandoned", Status: models.ReportStatusCompleted},
		&models.Campaign{Title: "Blankets"},
		&models.Event{Title: "Adoption fair"},
		&models.Person{Name: "João", CPF: "123.456.789-00"},
	}
	for _, rec := range seed {
		require.NoError(t, db.Create(rec).Error)
	}

	d, err := Collect(context.Background(), db, "admin@teste.com.br")
	require.NoError(t, err)

	assert.Equal(t, int64(1), d.TotalUsers)
	assert.Equal(t, int64(1), d.TotalPeople)
	assert.Equal(t, int64(2), d.TotalReports)
	assert.Equal(t, int64(3), d.TotalAnimals)
	assert.Equal(t, int64(1), d.TotalCampaigns)
	assert.Equal(t, int64(1), d.TotalEvents)
	assert.Equal(t, int64(1), d.TotalBreeds)
	assert.Equal(t, map[string]int64{"ADOPTABLE": 2, "TREATMENT": 1}, d.AnimalStatusSummary)
	assert.Equal(t, map[string]int64{"AWAITING": 1, "COMPLETED": 1}, d.ReportStatusSummary)

	all, err := Collect(context.Background(), db, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalUsers)
}

func TestCollect_Empty(t *testing.T) {
	d, err := Collect(context.Background(), setupTestDB(t), "admin@teste.com.br")
	require.NoError(t, err)
	assert.Zero(t, d.TotalAnimals)
	assert.Empty(t, d.AnimalStatusSummary)
	assert.NotNil(t, d.ReportStatusSummary)
}

func TestCollect_NilDatabase(t *testing.T) {
	_, err := Collect(context.Background(), nil, "")
	require.ErrorIs(t, err, ErrDBNil)
}
