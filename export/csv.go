// Package export renders the registration list for admins: a CSV file with
// every column and a short totals summary.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"jeepfest-bot/core/logger"
	"jeepfest-bot/core/telegram/format"
	"jeepfest-bot/registration"
	"jeepfest-bot/storage"
)

var header = []string{
	"id", "tg_id", "lang", "name", "car", "plate", "phone",
	"people", "participation", "discipline", "pay_status", "created_at",
}

func boolCell(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "yes"
	}
	return "no"
}

func row(r registration.Registration) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		strconv.FormatInt(r.TgID, 10),
		r.Lang,
		r.Name,
		r.Car,
		format.DerefString(r.Plate, ""),
		format.DerefString(r.Phone, ""),
		strconv.Itoa(r.People),
		boolCell(r.Participation),
		format.DerefString(r.Discipline, ""),
		r.PayStatus,
		r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CSV writes every registration in creation order. The snapshot is whatever
// the repository returns in one read; concurrent writes land in the next one.
func CSV(ctx context.Context, repo storage.Repository) ([]byte, error) {
	start := time.Now()
	regs, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: list registrations: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}
	for _, r := range regs {
		if err := w.Write(row(r)); err != nil {
			return nil, fmt.Errorf("export: write row id=%d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}

	logger.Info(ctx, "service.export", "csv.ok",
		slog.String("status", "ok"),
		slog.Int("rows", len(regs)),
		slog.Duration("duration", logger.Took(start)),
	)
	return buf.Bytes(), nil
}

// Summary returns the aggregate counters for the /count command.
func Summary(ctx context.Context, repo storage.Repository) (storage.Totals, error) {
	t, err := repo.Totals(ctx)
	if err != nil {
		return storage.Totals{}, fmt.Errorf("export: totals: %w", err)
	}
	return t, nil
}
