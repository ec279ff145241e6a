package entry

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, e Entry) (string, error) {
	values, err := json.Marshal(e.Values)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO kpi_entries (month, year, template_id, kpi_ref_label, kpi_ref_value,
                             created_for, created_by, status, "values", total_score)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, e.Month, e.Year, e.TemplateID, e.KpiRef.Label, e.KpiRef.Value,
		e.CreatedFor, e.CreatedBy, e.Status, values, e.TotalScore).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", ErrEntryExists
		}
		return "", err
	}
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (Entry, error) {
	row := s.DB.QueryRow(ctx, selectEntry+" WHERE id = $1", id)
	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrEntryNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, selectEntry+`
    WHERE ($1 = 0 OR month = $1)
      AND ($2 = 0 OR year = $2)
      AND ($3 = '' OR template_id::text = $3)
      AND ($4 = '' OR created_for = $4)
      AND ($5 = '' OR status = $5)
    ORDER BY year DESC, month DESC, created_at DESC
    LIMIT $6 OFFSET $7
  `, filter.Month, filter.Year, filter.TemplateID, filter.CreatedFor, filter.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM kpi_entries
    WHERE ($1 = 0 OR month = $1)
      AND ($2 = 0 OR year = $2)
      AND ($3 = '' OR template_id::text = $3)
      AND ($4 = '' OR created_for = $4)
      AND ($5 = '' OR status = $5)
  `, filter.Month, filter.Year, filter.TemplateID, filter.CreatedFor, filter.Status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) Update(ctx context.Context, e Entry) error {
	values, err := json.Marshal(e.Values)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE kpi_entries
    SET status = $2, "values" = $3, total_score = $4, updated_at = now()
    WHERE id = $1
  `, e.ID, e.Status, values, e.TotalScore)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM kpi_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, createdFor string, month, year int, templateID, kpiRefValue string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM kpi_entries
    WHERE created_for = $1 AND month = $2 AND year = $3
      AND template_id::text = $4 AND kpi_ref_value = $5
  `, createdFor, month, year, templateID, kpiRefValue).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) UpdateStatusBulk(ctx context.Context, ids []string, status string) (int, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE kpi_entries
    SET status = $2, updated_at = now()
    WHERE id::text = ANY($1)
  `, ids, status)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT status, COUNT(1)
    FROM kpi_entries
    GROUP BY status
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *Store) ListByStatus(ctx context.Context, status string, month, year int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, selectEntry+`
    WHERE status = $1
      AND ($2 = 0 OR month = $2)
      AND ($3 = 0 OR year = $3)
    ORDER BY created_for, year, month
  `, status, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const selectEntry = `
    SELECT id, month, year, template_id, kpi_ref_label, kpi_ref_value,
           created_for, created_by, status, "values", total_score, created_at, updated_at
    FROM kpi_entries`

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	var values []byte
	err := row.Scan(&e.ID, &e.Month, &e.Year, &e.TemplateID, &e.KpiRef.Label, &e.KpiRef.Value,
		&e.CreatedFor, &e.CreatedBy, &e.Status, &values, &e.TotalScore, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal(values, &e.Values); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
