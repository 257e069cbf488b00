// Package storage provides the durable registration repository. It is the
// only resource shared across user identities: phone and plate uniqueness is
// enforced here, atomically with the write, never in session state.
package storage

import (
	"context"
	"errors"
	"fmt"

	"jeepfest-bot/registration"
)

// ErrNotFound is returned for lookups of registrations that do not exist.
var ErrNotFound = errors.New("registration not found")

// ConflictError reports an upsert rejected because the phone or plate value
// already belongs to a different identity. The write is not applied; callers
// surface the conflict distinctly from validation failures and keep the
// session alive so the user can edit the offending field.
type ConflictError struct {
	Field registration.Field
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already registered by another participant", e.Field)
}

// Code implements the error-code hook used by handler summary logging.
func (e *ConflictError) Code() string { return "CONFLICT" }

// Totals aggregates the repository for exports and /count.
type Totals struct {
	Registrations int
	People        int
}

// Repository stores completed registrations keyed by Telegram identity.
//
// Upsert is atomic with respect to the uniqueness checks: two racing upserts
// claiming the same phone or plate resolve so that exactly one succeeds and
// the other observes *ConflictError, with no partial write.
type Repository interface {
	Upsert(ctx context.Context, reg registration.Registration) (int64, error)
	GetByTgID(ctx context.Context, tgID int64) (registration.Registration, error)
	GetByID(ctx context.Context, id int64) (registration.Registration, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) error
	SetReceipt(ctx context.Context, id int64, fileID string) error
	ListAll(ctx context.Context) ([]registration.Registration, error)
	Totals(ctx context.Context) (Totals, error)
	ListTgIDs(ctx context.Context) ([]int64, error)
}
