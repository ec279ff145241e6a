package template

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, t Template) (string, error) {
	if err := ValidateDefinition(t); err != nil {
		return "", err
	}
	return s.Store.Insert(ctx, t)
}

func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	return s.Store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, departmentSlug, role string, limit, offset int) ([]Template, int, error) {
	templates, err := s.Store.List(ctx, departmentSlug, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Store.Count(ctx, departmentSlug, role)
	if err != nil {
		return nil, 0, err
	}
	return templates, count, nil
}

func (s *Service) Update(ctx context.Context, t Template) error {
	if err := ValidateDefinition(t); err != nil {
		return err
	}
	return s.Store.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteByID(ctx, id)
}
