// Package record provides CRUD operations shared by every shelter record type.
package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const whereID = "id = ?"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is the base of every business rule rejection.
	ErrConflict = errors.New("conflict")
	// ErrDuplicate is returned when a unique column would be duplicated.
	ErrDuplicate = fmt.Errorf("%w: record already exists", ErrConflict)
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNoFields is returned by Patch without any field to change.
	ErrNoFields = errors.New("no fields to update")
)

// Query narrows a listing.
type Query struct {
	// Where holds column equality filters.
	Where map[string]any
	// Order is an ORDER BY clause; defaults to newest first.
	Order  string
	Limit  int
	Offset int
}

// Controller implements CRUD for the model T.
type Controller[T any] struct {
	db *gorm.DB
}

// New returns a controller for T.
func New[T any](db *gorm.DB) *Controller[T] {
	return &Controller[T]{db: db}
}

// DB returns the underlying connection.
func (c *Controller[T]) DB() *gorm.DB {
	return c.db
}

// ValidID reports whether id has the shape of a record id.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// List returns the records matching q.
func (c *Controller[T]) List(ctx context.Context, q Query) ([]T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	tx := c.db.WithContext(ctx).Model(new(T))

	if len(q.Where) > 0 {
		tx = tx.Where(q.Where)
	}

	order := q.Order
	if order == "" {
		order = "created_at desc"
	}

	tx = tx.Order(order)

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit).Offset(q.Offset)
	}

	out := make([]T, 0)
	if err := tx.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return out, nil
}

// Get returns the record with id.
func (c *Controller[T]) Get(ctx context.Context, id string) (*T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	return get[T](c.db.WithContext(ctx), id)
}

// Create inserts rec; its id is assigned on insert.
func (c *Controller[T]) Create(ctx context.Context, rec *T) error {
	if c.db == nil {
		return ErrDBNil
	}

	if err := c.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return translate(err)
	}

	return nil
}

// Update replaces every column of the record with id by the values in rec.
func (c *Controller[T]) Update(ctx context.Context, id string, rec *T) (*T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	var out *T

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := get[T](tx, id); err != nil {
			return err
		}

		err := tx.Model(new(T)).
			Where(whereID, id).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(rec).Error
		if err != nil {
			return translate(err)
		}

		out, err = get[T](tx, id)

		return err
	})

	return out, err
}

// Patch changes only the given columns of the record with id.
func (c *Controller[T]) Patch(ctx context.Context, id string, fields map[string]any) (*T, error) {
	if c.db == nil {
		return nil, ErrDBNil
	}

	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	var out *T

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := get[T](tx, id); err != nil {
			return err
		}

		if err := tx.Model(new(T)).Where(whereID, id).Updates(fields).Error; err != nil {
			return translate(err)
		}

		var err error
		out, err = get[T](tx, id)

		return err
	})

	return out, err
}

// Delete removes the record with id.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if c.db == nil {
		return ErrDBNil
	}

	return Delete[T](c.db.WithContext(ctx), id)
}

// Delete removes the record with id using tx, for callers running their own transaction.
func Delete[T any](tx *gorm.DB, id string) error {
	if !ValidID(id) {
		return ErrNotFound
	}

	res := tx.Where(whereID, id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("delete record: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of records of T.
func (c *Controller[T]) Count(ctx context.Context) (int64, error) {
	if c.db == nil {
		return 0, ErrDBNil
	}

	var n int64
	err := c.db.WithContext(ctx).Model(new(T)).Count(&n).Error

	return n, err
}

func get[T any](tx *gorm.DB, id string) (*T, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}

	rec := new(T)

	err := tx.Where(whereID, id).Take(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	return rec, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}

	return err
}
