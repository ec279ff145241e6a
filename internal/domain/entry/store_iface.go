package entry

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, e Entry) (string, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error)
	Count(ctx context.Context, filter Filter) (int, error)
	Update(ctx context.Context, e Entry) error
	DeleteByID(ctx context.Context, id string) error
	Exists(ctx context.Context, createdFor string, month, year int, templateID, kpiRefValue string) (bool, error)
	UpdateStatusBulk(ctx context.Context, ids []string, status string) (int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	ListByStatus(ctx context.Context, status string, month, year int) ([]Entry, error)
}
