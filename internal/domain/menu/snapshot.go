package menu

import "context"

// SnapshotStore keeps an advisory last-known-good copy of the public menu
// outside the primary store. Implementations are best-effort: a miss or a
// write failure must never break a menu read.
type SnapshotStore interface {
	SaveCategories(ctx context.Context, categories []Category) error
	LoadCategories(ctx context.Context) ([]Category, error)
	SaveItems(ctx context.Context, items []Item) error
	LoadItems(ctx context.Context) ([]Item, error)
	Clear(ctx context.Context) error
}
