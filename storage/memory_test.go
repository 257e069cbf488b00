package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"jeepfest-bot/registration"
)

func strPtr(s string) *string { return &s }

func rec(tgID int64, phone, plate string) registration.Registration {
	r := registration.Registration{
		TgID:   tgID,
		Lang:   "ru",
		Name:   "Test User",
		Car:    "UAZ Patriot",
		People: 2,
	}
	if phone != "" {
		r.Phone = strPtr(phone)
	}
	if plate != "" {
		r.Plate = strPtr(plate)
	}
	return r
}

func TestUpsertCreatesThenOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	id1, err := repo.Upsert(ctx, rec(10, "+998901112233", ""))
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	updated := rec(10, "+998901112233", "")
	updated.Name = "Renamed"
	id2, err := repo.Upsert(ctx, updated)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("repeat upsert must keep the id: %d vs %d", id1, id2)
	}

	got, err := repo.GetByTgID(ctx, 10)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("got %q", got.Name)
	}

	totals, err := repo.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Registrations != 1 {
		t.Fatalf("expected one registration, got %d", totals.Registrations)
	}
}

func TestUpsertPhoneConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	if _, err := repo.Upsert(ctx, rec(10, "+998901112233", "")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := repo.Upsert(ctx, rec(20, "+998901112233", ""))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Field != registration.FieldPhone {
		t.Fatalf("conflict field: %s", conflict.Field)
	}

	// The rejected write must not leave a row behind.
	if _, err := repo.GetByTgID(ctx, 20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpsertPlateConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	if _, err := repo.Upsert(ctx, rec(10, "", "01A123BC")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := repo.Upsert(ctx, rec(20, "", "01A123BC"))
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Field != registration.FieldPlate {
		t.Fatalf("conflict field: %s", conflict.Field)
	}
}

func TestUpsertPreservesAdminOwnedFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	id, err := repo.Upsert(ctx, rec(10, "+998901112233", ""))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.SetReceipt(ctx, id, "file-123"); err != nil {
		t.Fatalf("set receipt: %v", err)
	}
	if err := repo.UpdatePaymentStatus(ctx, id, registration.PayPaid); err != nil {
		t.Fatalf("update status: %v", err)
	}

	// A user edit must not reset what admins already verified.
	if _, err := repo.Upsert(ctx, rec(10, "+998907778899", "")); err != nil {
		t.Fatalf("edit upsert: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PayStatus != registration.PayPaid {
		t.Fatalf("pay status reset to %q", got.PayStatus)
	}
	if got.ReceiptFileID == nil || *got.ReceiptFileID != "file-123" {
		t.Fatalf("receipt lost: %v", got.ReceiptFileID)
	}
}

func TestConcurrentUpsertsSamePhone(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Upsert(ctx, rec(int64(100+i), "+998901112233", ""))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("exactly one racer must win, got %d", ok)
	}
}

func TestListAllKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	for i := int64(1); i <= 3; i++ {
		if _, err := repo.Upsert(ctx, rec(i*10, "", "")); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	regs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(regs) != 3 {
		t.Fatalf("got %d rows", len(regs))
	}
	for i, r := range regs {
		if r.TgID != int64(i+1)*10 {
			t.Fatalf("row %d out of order: tg_id %d", i, r.TgID)
		}
	}

	ids, err := repo.ListTgIDs(ctx)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 3 || ids[0] != 10 || ids[2] != 30 {
		t.Fatalf("got %v", ids)
	}
}
