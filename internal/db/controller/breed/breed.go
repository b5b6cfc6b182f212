// Package breed manages animal breeds, which animals reference.
package breed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abrigo-digital/shelter-admin/internal/db/controller/record"
	"github.com/abrigo-digital/shelter-admin/internal/db/models"
)

// ErrBreedInUse is returned when deleting a breed still referenced by an animal.
var ErrBreedInUse = fmt.Errorf("%w: breed is in use by one or more animals", record.ErrConflict)

// Controller is the record controller for breeds with referential checks.
type Controller struct {
	*record.Controller[models.Breed]
}

// New returns a breed controller.
func New(db *gorm.DB) *Controller {
	return &Controller{Controller: record.New[models.Breed](db)}
}

// InUse returns the number of animals referencing the breed.
func (c *Controller) InUse(ctx context.Context, id string) (int64, error) {
	if c.DB() == nil {
		return 0, record.ErrDBNil
	}

	return inUse(c.DB().WithContext(ctx), id)
}

// Delete removes the breed unless an animal still references it.
// The check and the delete run in one transaction.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if c.DB() == nil {
		return record.ErrDBNil
	}

	return c.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := inUse(tx, id)
		if err != nil {
			return err
		}

		if n > 0 {
			return ErrBreedInUse
		}

		return record.Delete[models.Breed](tx, id)
	})
}

func inUse(tx *gorm.DB, id string) (int64, error) {
	var n int64

	if err := tx.Model(&models.Animal{}).Where("breed_id = ?", id).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count animals of breed: %w", err)
	}

	return n, nil
}
