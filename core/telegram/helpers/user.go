package helpers

import "context"

// CurrentRecord resolves the sender's Telegram user ID to a domain record via
// a repository that implements GetByTgID. The generic type T allows different
// projects to supply their own model.
func CurrentRecord[T any](
	ctx context.Context,
	repo interface {
		GetByTgID(context.Context, int64) (T, error)
	},
	tgID int64,
) (T, error) {
	var zero T
	if repo == nil {
		return zero, nil
	}
	return repo.GetByTgID(ctx, tgID)
}
