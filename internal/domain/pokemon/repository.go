package pokemon

import "context"

// PageQuery windows an ordered catalog listing.
type PageQuery struct {
	Limit  int
	Offset int
	Sort   SortKey
}

// Repository describes catalog persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, sort SortKey) ([]Pokemon, error)
	ListPage(ctx context.Context, query PageQuery) ([]Pokemon, error)
	Count(ctx context.Context) (int, error)
	GetByID(ctx context.Context, id int64) (Pokemon, bool, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Pokemon, error)
	Search(ctx context.Context, term string, limit int) ([]Pokemon, error)
	Upsert(ctx context.Context, item Pokemon) error
	ReplaceAll(ctx context.Context, items []Pokemon) error
}
