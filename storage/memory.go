package storage

import (
	"context"
	"sync"
	"time"

	"jeepfest-bot/registration"
)

// MemoryRepository is an in-memory Repository for tests and development. All
// operations run under one mutex, so the uniqueness check and the write are
// atomic exactly like the single-statement Postgres upsert.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byTgID map[int64]*registration.Registration
	order  []int64 // tg ids in creation order
}

// NewMemory constructs an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		byTgID: make(map[int64]*registration.Registration),
	}
}

func strEq(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func (r *MemoryRepository) Upsert(_ context.Context, reg registration.Registration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tgID, other := range r.byTgID {
		if tgID == reg.TgID {
			continue
		}
		if strEq(other.Phone, reg.Phone) {
			return 0, &ConflictError{Field: registration.FieldPhone}
		}
		if strEq(other.Plate, reg.Plate) {
			return 0, &ConflictError{Field: registration.FieldPlate}
		}
	}

	now := time.Now().UTC()
	if existing, ok := r.byTgID[reg.TgID]; ok {
		reg.ID = existing.ID
		reg.CreatedAt = existing.CreatedAt
		reg.PayStatus = existing.PayStatus
		reg.ReceiptFileID = existing.ReceiptFileID
		reg.UpdatedAt = now
		*existing = reg
		return existing.ID, nil
	}

	if reg.PayStatus == "" {
		reg.PayStatus = registration.PayPending
	}
	reg.ID = r.nextID
	r.nextID++
	reg.CreatedAt = now
	reg.UpdatedAt = now
	stored := reg
	r.byTgID[reg.TgID] = &stored
	r.order = append(r.order, reg.TgID)
	return reg.ID, nil
}

func (r *MemoryRepository) GetByTgID(_ context.Context, tgID int64) (registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg, ok := r.byTgID[tgID]; ok {
		return *reg, nil
	}
	return registration.Registration{}, ErrNotFound
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg := r.findByID(id); reg != nil {
		return *reg, nil
	}
	return registration.Registration{}, ErrNotFound
}

func (r *MemoryRepository) findByID(id int64) *registration.Registration {
	for _, reg := range r.byTgID {
		if reg.ID == id {
			return reg
		}
	}
	return nil
}

func (r *MemoryRepository) UpdatePaymentStatus(_ context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := r.findByID(id)
	if reg == nil {
		return ErrNotFound
	}
	reg.PayStatus = status
	reg.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) SetReceipt(_ context.Context, id int64, fileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := r.findByID(id)
	if reg == nil {
		return ErrNotFound
	}
	reg.ReceiptFileID = &fileID
	reg.PayStatus = registration.PayPending
	reg.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *MemoryRepository) ListAll(_ context.Context) ([]registration.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	regs := make([]registration.Registration, 0, len(r.order))
	for _, tgID := range r.order {
		regs = append(regs, *r.byTgID[tgID])
	}
	return regs, nil
}

func (r *MemoryRepository) Totals(_ context.Context) (Totals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := Totals{Registrations: len(r.byTgID)}
	for _, reg := range r.byTgID {
		t.People += reg.People
	}
	return t, nil
}

func (r *MemoryRepository) ListTgIDs(_ context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.order...), nil
}
