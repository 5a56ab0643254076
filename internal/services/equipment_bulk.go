package services

import (
	"context"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

const (
	BulkUpdate       = "update"
	BulkDelete       = "delete"
	BulkUpdateStatus = "updateStatus"
	BulkUpdateHealth = "updateHealth"
)

var bulkOperations = []string{BulkUpdate, BulkDelete, BulkUpdateStatus, BulkUpdateHealth}

type BulkRequest struct {
	Operation string         `json:"operation"`
	IDs       []string       `json:"ids"`
	Data      EquipmentPatch `json:"data"`
}

// BulkOutcome is the result of one item of a batch: Item on success, Err otherwise.
type BulkOutcome struct {
	ID   string
	Item *models.Equipment
	Err  error
}

func (o BulkOutcome) OK() bool { return o.Err == nil }

func (r BulkRequest) validate() error {
	v := validation.Violations{}
	validation.Required("operation", r.Operation, v)
	validation.OneOf("operation", r.Operation, bulkOperations, v)
	if len(r.IDs) == 0 {
		v["ids"] = "required"
	}
	switch r.Operation {
	case BulkUpdateStatus:
		if r.Data.Statut == nil {
			v["data.statut"] = "required"
		}
	case BulkUpdateHealth:
		if r.Data.EtatSante == nil {
			v["data.etatSante"] = "required"
		}
	case BulkUpdate:
		r.Data.validate(v)
	}
	return check(v)
}

// Bulk applies one operation to each id in order. A failing id is recorded and
// never aborts the batch; no transaction spans the items.
func (s *EquipmentService) Bulk(ctx context.Context, req BulkRequest) ([]BulkOutcome, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	out := make([]BulkOutcome, 0, len(req.IDs))
	for _, id := range req.IDs {
		if err := ctx.Err(); err != nil {
			out = append(out, BulkOutcome{ID: id, Err: err})
			continue
		}
		item, err := s.bulkOne(ctx, req, id)
		out = append(out, BulkOutcome{ID: id, Item: item, Err: err})
	}
	return out, nil
}

func (s *EquipmentService) bulkOne(ctx context.Context, req BulkRequest, id string) (*models.Equipment, error) {
	switch req.Operation {
	case BulkUpdate:
		return s.Modify(ctx, id, req.Data)
	case BulkDelete:
		return s.Remove(ctx, id)
	case BulkUpdateStatus:
		return s.UpdateStatus(ctx, id, *req.Data.Statut)
	case BulkUpdateHealth:
		return s.UpdateHealth(ctx, id, *req.Data.EtatSante)
	default:
		return nil, apperr.Invalid("unknown bulk operation %q", req.Operation)
	}
}
