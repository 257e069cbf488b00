package export

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"jeepfest-bot/registration"
	"jeepfest-bot/storage"
)

func seed(t *testing.T, repo *storage.MemoryRepository, tgID int64, name, car, phone string, people int) {
	t.Helper()
	reg := registration.Registration{
		TgID: tgID, Lang: "ru", Name: name, Car: car, People: people,
	}
	if phone != "" {
		reg.Phone = &phone
	}
	if _, err := repo.Upsert(context.Background(), reg); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func TestCSV(t *testing.T) {
	repo := storage.NewMemory()
	seed(t, repo, 1, "Akbar", "Jeep Grand", "+998901112233", 3)
	seed(t, repo, 2, "Anvar", "UAZ Patriot", "+998907654321", 2)

	out, err := CSV(context.Background(), repo)
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][7] != "people" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][3] != "Akbar" || rows[2][3] != "Anvar" {
		t.Errorf("rows out of creation order: %v / %v", rows[1], rows[2])
	}
	if rows[1][7] != "3" {
		t.Errorf("people column = %q, want 3", rows[1][7])
	}
	if rows[1][10] != registration.PayPending {
		t.Errorf("pay_status = %q, want %q", rows[1][10], registration.PayPending)
	}
}

func TestCSVEmpty(t *testing.T) {
	out, err := CSV(context.Background(), storage.NewMemory())
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export must still carry the header, got %d rows", len(rows))
	}
}

func TestSummaryCountsOncePerIdentity(t *testing.T) {
	repo := storage.NewMemory()
	seed(t, repo, 10, "Akbar", "Jeep Grand", "+998901112233", 3)
	// Same identity registering again overwrites, not duplicates.
	seed(t, repo, 10, "Akbar", "Jeep Grand", "+998901112233", 3)

	totals, err := Summary(context.Background(), repo)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if totals.Registrations != 1 || totals.People != 3 {
		t.Errorf("totals = %+v, want 1 registration / 3 people", totals)
	}
}
