package validation

import (
	"slices"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// RequiredPtr flags a field that is present in a patch but blank.
func RequiredPtr(field string, value *string, v Violations) {
	if value != nil && strings.TrimSpace(*value) == "" {
		v[field] = "required"
	}
}

// RequiredID flags an empty identifier.
func RequiredID(field, id string, v Violations) {
	if strings.TrimSpace(id) == "" {
		v[field] = "required"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	if value == "" {
		return
	}
	if !slices.Contains(allowed, value) {
		v[field] = "invalid_value"
	}
}

func NonNegativeInt(field string, val int, v Violations) {
	if val < 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}
