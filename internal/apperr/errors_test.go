package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("site", "abc"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected errors.Is to match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("did not expect conflict match")
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("KindOf = %q", KindOf(err))
	}
}

func TestDatabasePrefix(t *testing.T) {
	err := Database(errors.New("boom"))
	if err.Error() != "Database error: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("expected database kind")
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"single field", map[string]string{"name": "required"}, "name is required"},
		{"several fields", map[string]string{"name": "required", "clientId": "required"}, "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validation(tt.fields).Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOfPlainError(t *testing.T) {
	if KindOf(errors.New("x")) != "" {
		t.Fatalf("expected empty kind for plain error")
	}
}
