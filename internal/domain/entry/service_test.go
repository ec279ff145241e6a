package entry

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"kpm/internal/domain/template"
)

type fakeStore struct {
	entries map[string]Entry
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[string]Entry)}
}

func (f *fakeStore) Insert(_ context.Context, e Entry) (string, error) {
	for _, existing := range f.entries {
		if existing.CreatedFor == e.CreatedFor && existing.Month == e.Month &&
			existing.Year == e.Year && existing.TemplateID == e.TemplateID &&
			existing.KpiRef.Value == e.KpiRef.Value {
			return "", ErrEntryExists
		}
	}
	f.nextID++
	id := "entry-" + strconv.Itoa(f.nextID)
	e.ID = id
	f.entries[id] = e
	return id, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeStore) List(_ context.Context, _ Filter, _, _ int) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) Count(_ context.Context, _ Filter) (int, error) {
	return len(f.entries), nil
}

func (f *fakeStore) Update(_ context.Context, e Entry) error {
	if _, ok := f.entries[e.ID]; !ok {
		return ErrEntryNotFound
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) Exists(_ context.Context, createdFor string, month, year int, templateID, kpiRefValue string) (bool, error) {
	for _, e := range f.entries {
		if e.CreatedFor == createdFor && e.Month == month && e.Year == year &&
			e.TemplateID == templateID && e.KpiRef.Value == kpiRefValue {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdateStatusBulk(_ context.Context, ids []string, status string) (int, error) {
	updated := 0
	for _, id := range ids {
		if e, ok := f.entries[id]; ok {
			e.Status = status
			f.entries[id] = e
			updated++
		}
	}
	return updated, nil
}

func (f *fakeStore) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range f.entries {
		counts[e.Status]++
	}
	return counts, nil
}

func (f *fakeStore) ListByStatus(_ context.Context, status string, _, _ int) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTemplates struct {
	templates map[string]template.Template
}

func (f *fakeTemplates) GetByID(_ context.Context, id string) (template.Template, error) {
	t, ok := f.templates[id]
	if !ok {
		return template.Template{}, template.ErrTemplateNotFound
	}
	return t, nil
}

func f64(v float64) *float64 { return &v }

func testTemplate() template.Template {
	return template.Template{
		ID:             "tmpl-1",
		Name:           "Monthly Disposal",
		DepartmentSlug: "revenue-department",
		Role:           "tehsildar",
		Items: []template.Item{
			{
				Name:     "case_disposal_rate",
				MaxMarks: 10,
				KpiType:  template.TypePercentage,
				Rules: []template.Rule{
					{Value: f64(90), Score: 10},
					{Value: f64(70), Score: 7},
				},
			},
			{Name: "inspection_marks", MaxMarks: 20, KpiType: template.TypeScore},
		},
	}
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	templates := &fakeTemplates{templates: map[string]template.Template{"tmpl-1": testTemplate()}}
	return NewService(store, templates), store
}

func TestCreateScoresAndPersists(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), CreateParams{
		Month:      4,
		Year:       2024,
		TemplateID: "tmpl-1",
		KpiRef:     KpiRef{Label: "court", Value: "court-a"},
		CreatedFor: "member-1",
		CreatedBy:  "admin-1",
		Values: []template.RawValue{
			{Name: "case_disposal_rate", Value: float64(92)},
			{Name: "inspection_marks", Value: float64(14)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != StatusCreated {
		t.Fatalf("expected default status created, got %q", created.Status)
	}
	if created.TotalScore != 24 {
		t.Fatalf("expected total 24, got %v", created.TotalScore)
	}
}

func TestCreateRejectsDuplicatePeriod(t *testing.T) {
	svc, _ := newTestService()
	params := CreateParams{
		Month:      4,
		Year:       2024,
		TemplateID: "tmpl-1",
		CreatedFor: "member-1",
		Values:     []template.RawValue{{Name: "inspection_marks", Value: float64(10)}},
	}
	if _, err := svc.Create(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), params); !errors.Is(err, ErrEntryExists) {
		t.Fatalf("expected ErrEntryExists, got %v", err)
	}
}

func TestCreateAllowsSameOfficerDifferentUnit(t *testing.T) {
	svc, _ := newTestService()
	base := CreateParams{
		Month:      4,
		Year:       2024,
		TemplateID: "tmpl-1",
		CreatedFor: "member-1",
		Values:     []template.RawValue{{Name: "inspection_marks", Value: float64(10)}},
	}
	base.KpiRef = KpiRef{Label: "court", Value: "court-a"}
	if _, err := svc.Create(context.Background(), base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base.KpiRef = KpiRef{Label: "court", Value: "court-b"}
	if _, err := svc.Create(context.Background(), base); err != nil {
		t.Fatalf("unexpected error for second unit: %v", err)
	}
}

func TestCreateValidatesPeriod(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateParams{Month: 13, Year: 2024, TemplateID: "tmpl-1", CreatedFor: "m"})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for month 13, got %v", err)
	}
	_, err = svc.Create(context.Background(), CreateParams{Month: 5, Year: 2019, TemplateID: "tmpl-1", CreatedFor: "m"})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for year 2019, got %v", err)
	}
}

func TestUpdateMergesValuesByName(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), CreateParams{
		Month:      4,
		Year:       2024,
		TemplateID: "tmpl-1",
		CreatedFor: "member-1",
		Values: []template.RawValue{
			{Name: "case_disposal_rate", Value: float64(92)},
			{Name: "inspection_marks", Value: float64(14)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, UpdateParams{
		Values: []template.RawValue{{Name: "case_disposal_rate", Value: float64(72)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := make(map[string]template.ScoredValue)
	for _, v := range updated.Values {
		byName[v.Name] = v
	}
	if byName["case_disposal_rate"].Score != 7 {
		t.Fatalf("expected rescored 7, got %v", byName["case_disposal_rate"].Score)
	}
	if byName["inspection_marks"].Score != 14 {
		t.Fatalf("expected preserved score 14, got %v", byName["inspection_marks"].Score)
	}
	if updated.TotalScore != 21 {
		t.Fatalf("expected total 21, got %v", updated.TotalScore)
	}
}

func TestUpdateRejectsUnknownItemNames(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Create(context.Background(), CreateParams{
		Month:      4,
		Year:       2024,
		TemplateID: "tmpl-1",
		CreatedFor: "member-1",
		Values:     []template.RawValue{{Name: "inspection_marks", Value: float64(14)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = svc.Update(context.Background(), created.ID, UpdateParams{
		Values: []template.RawValue{{Name: "garbage_field", Value: float64(1)}},
	})
	if !errors.Is(err, template.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestUpdateStatusBulk(t *testing.T) {
	svc, store := newTestService()
	var ids []string
	for i := 1; i <= 3; i++ {
		created, err := svc.Create(context.Background(), CreateParams{
			Month:      i,
			Year:       2024,
			TemplateID: "tmpl-1",
			CreatedFor: "member-1",
			Values:     []template.RawValue{{Name: "inspection_marks", Value: float64(10)}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, created.ID)
	}

	updated, err := svc.UpdateStatusBulk(context.Background(), ids[:2], StatusInitiated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 updated, got %d", updated)
	}
	counts, err := svc.StatusSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[StatusInitiated] != 2 || counts[StatusCreated] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if _, ok := store.entries[ids[2]]; !ok {
		t.Fatalf("third entry should remain")
	}

	if _, err := svc.UpdateStatusBulk(context.Background(), ids, "archived"); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for unknown status, got %v", err)
	}
}
