// Package services validates and normalizes input before handing it to the
// repositories. Validation always runs before any I/O.
package services

import (
	"strings"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/validation"
)

// columns collects the gorm column updates of a partial patch.
type columns map[string]any

func (c columns) str(col string, v *string) {
	if v != nil {
		c[col] = strings.TrimSpace(*v)
	}
}

func set[T any](c columns, col string, v *T) {
	if v != nil {
		c[col] = *v
	}
}

func check(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return apperr.Validation(v)
}

func requireID(field, id string) error {
	v := validation.Violations{}
	validation.RequiredID(field, id, v)
	return check(v)
}

func trim(s string) string { return strings.TrimSpace(s) }
