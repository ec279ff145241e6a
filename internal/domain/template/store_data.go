package template

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, t Template) (string, error) {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO kpi_templates (name, department_slug, role, items)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, t.Name, t.DepartmentSlug, t.Role, items).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Template, error) {
	var t Template
	var items []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, department_slug, role, items, created_at, updated_at
    FROM kpi_templates
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Name, &t.DepartmentSlug, &t.Role, &items, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Template{}, ErrTemplateNotFound
	}
	if err != nil {
		return Template{}, err
	}
	if err := json.Unmarshal(items, &t.Items); err != nil {
		return Template{}, err
	}
	return t, nil
}

func (s *Store) List(ctx context.Context, departmentSlug, role string, limit, offset int) ([]Template, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, department_slug, role, items, created_at, updated_at
    FROM kpi_templates
    WHERE ($1 = '' OR department_slug = $1)
      AND ($2 = '' OR role = $2)
    ORDER BY department_slug, role, name
    LIMIT $3 OFFSET $4
  `, departmentSlug, role, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTemplates(rows)
}

func (s *Store) Count(ctx context.Context, departmentSlug, role string) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM kpi_templates
    WHERE ($1 = '' OR department_slug = $1)
      AND ($2 = '' OR role = $2)
  `, departmentSlug, role).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) Update(ctx context.Context, t Template) error {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE kpi_templates
    SET name = $2, department_slug = $3, role = $4, items = $5, updated_at = now()
    WHERE id = $1
  `, t.ID, t.Name, t.DepartmentSlug, t.Role, items)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM kpi_templates WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func scanTemplates(rows pgx.Rows) ([]Template, error) {
	var templates []Template
	for rows.Next() {
		var t Template
		var items []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.DepartmentSlug, &t.Role, &items, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &t.Items); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
