package service

import (
	"github.com/google/uuid"
	"github.com/sangkips/stockroom-api/pkg/apperror"
)

// fieldCheck collects field errors so every problem is reported at once
type fieldCheck struct {
	errs []apperror.FieldError
}

func (c *fieldCheck) add(field, message string) {
	c.errs = append(c.errs, apperror.FieldError{Field: field, Message: message})
}

func (c *fieldCheck) check(ok bool, field, message string) {
	if !ok {
		c.add(field, message)
	}
}

func (c *fieldCheck) requireID(id uuid.UUID, field string) {
	c.check(id != uuid.Nil, field, field+" is required")
}

func (c *fieldCheck) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return apperror.NewValidationError(c.errs)
}

// uniqueIDs returns ids without duplicates, keeping first-seen order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
