package db

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"kpm/internal/domain/auth"
	"kpm/internal/domain/template"
	"kpm/internal/platform/config"
)

// Seed provisions the admin account and the default revenue-department
// templates. Every step checks before inserting, so repeated boots are safe.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}
	return ensureDefaultTemplates(ctx, pool)
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, name, password_hash, role)
    VALUES ($1, 'Administrator', $2, 'admin')
  `, email, hash)
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}

func ensureDefaultTemplates(ctx context.Context, pool *pgxpool.Pool) error {
	for _, tmpl := range defaultTemplates() {
		var count int
		err := pool.QueryRow(ctx, `
      SELECT COUNT(1) FROM kpi_templates WHERE department_slug = $1 AND role = $2
    `, tmpl.DepartmentSlug, tmpl.Role).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		items, err := json.Marshal(tmpl.Items)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO kpi_templates (name, department_slug, role, items)
      VALUES ($1, $2, $3, $4)
    `, tmpl.Name, tmpl.DepartmentSlug, tmpl.Role, items); err != nil {
			return err
		}
		slog.Info("seeded template", "department", tmpl.DepartmentSlug, "role", tmpl.Role)
	}
	return nil
}

func defaultTemplates() []template.Template {
	disposalRules := []template.Rule{
		{Value: floatPtr(90), Score: 10},
		{Value: floatPtr(70), Score: 7},
		{Value: floatPtr(50), Score: 5},
	}
	return []template.Template{
		{
			Name:           "Tehsildar Monthly KPI",
			DepartmentSlug: "revenue-department",
			Role:           "tehsildar",
			Items: []template.Item{
				{Name: "court_case_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "namantaran_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "batwara_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "revenue_recovery", MaxMarks: 10, KpiType: template.TypeScore},
			},
		},
		{
			Name:           "Nayab Tehsildar Monthly KPI",
			DepartmentSlug: "revenue-department",
			Role:           "nayab-tehsildar",
			Items: []template.Item{
				{Name: "court_case_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "namantaran_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "revenue_recovery", MaxMarks: 10, KpiType: template.TypeScore},
			},
		},
		{
			Name:           "RI Monthly KPI",
			DepartmentSlug: "revenue-department",
			Role:           "ri",
			Items: []template.Item{
				{Name: "namantaran_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "batwara_disposal", MaxMarks: 10, KpiType: template.TypePercentage, Rules: disposalRules},
				{Name: "revenue_recovery", MaxMarks: 10, KpiType: template.TypeScore},
			},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
