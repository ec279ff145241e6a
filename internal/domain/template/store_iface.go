package template

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, t Template) (string, error)
	GetByID(ctx context.Context, id string) (Template, error)
	List(ctx context.Context, departmentSlug, role string, limit, offset int) ([]Template, error)
	Count(ctx context.Context, departmentSlug, role string) (int, error)
	Update(ctx context.Context, t Template) error
	DeleteByID(ctx context.Context, id string) error
}
