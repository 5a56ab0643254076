// Package repository wraps gorm queries for each entity of the asset hierarchy
// and translates driver errors into apperr kinds.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/gmao/internal/apperr"
	"gorm.io/gorm"
)

// translate maps a gorm/driver error to the application taxonomy.
func translate(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity, id)
	case isDuplicate(err):
		return apperr.Conflict("%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Conflict("%s references a missing or still referenced record", entity)
	default:
		return apperr.Database(err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "UNIQUE constraint failed")
}

// childGuard blocks a delete while rows of model reference the parent through column.
type childGuard struct {
	model  any
	column string
	label  string
}

// crud is the shared query set behind every entity repository.
type crud[T any] struct {
	db     *gorm.DB
	entity string
}

func (c crud[T]) conn(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

func (c crud[T]) get(ctx context.Context, id string, preloads ...string) (*T, error) {
	q := c.conn(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var v T
	if err := q.First(&v, "id = ?", id).Error; err != nil {
		return nil, translate(err, c.entity, id)
	}
	return &v, nil
}

func (c crud[T]) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]T, error) {
	q := c.conn(ctx)
	if scope != nil {
		q = scope(q)
	}
	items := []T{}
	if err := q.Find(&items).Error; err != nil {
		return nil, translate(err, c.entity, "")
	}
	return items, nil
}

func (c crud[T]) exists(ctx context.Context, model any, id string) (bool, error) {
	var n int64
	if err := c.conn(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, apperr.Database(err)
	}
	return n > 0, nil
}

func (c crud[T]) create(ctx context.Context, v *T) error {
	return translate(c.conn(ctx).Create(v).Error, c.entity, "")
}

// update applies only the given columns and returns the stored row.
func (c crud[T]) update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	current, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return current, nil
	}
	if err := c.conn(ctx).Model(current).Updates(fields).Error; err != nil {
		return nil, translate(err, c.entity, id)
	}
	return c.get(ctx, id)
}

// remove deletes the row after checking no child still references it.
// It returns the deleted row.
func (c crud[T]) remove(ctx context.Context, id string, guards ...childGuard) (*T, error) {
	current, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, g := range guards {
		var n int64
		if err := c.conn(ctx).Model(g.model).Where(g.column+" = ?", id).Count(&n).Error; err != nil {
			return nil, apperr.Database(err)
		}
		if n > 0 {
			return nil, apperr.Conflict("Cannot delete %s with existing %s", c.entity, g.label)
		}
	}
	if err := c.conn(ctx).Delete(current).Error; err != nil {
		return nil, translate(err, c.entity, id)
	}
	return current, nil
}

func byName(q *gorm.DB) *gorm.DB { return q.Order("name ASC") }
