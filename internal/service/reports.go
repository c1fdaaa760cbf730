package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/ideascope/internal/db"
	"github.com/raphaelgruber/ideascope/internal/models"
)

const (
	// DefaultListLimit is used when List is called without a limit.
	DefaultListLimit = 20
	// MaxListLimit caps a single List call.
	MaxListLimit = 100

	saveAttempts = 3
)

// Store persists reports. Missing reports yield db.ErrNotFound and duplicate
// IDs yield db.ErrAlreadyExists.
type Store interface {
	SaveReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, limit int) ([]models.Report, error)
	DeleteReport(ctx context.Context, id string) error
}

var (
	_ Store = (*db.Client)(nil)
	_ Store = (*MemoryStore)(nil)
)

// ReportService stores completed analyses so they can be shared by ID.
type ReportService struct {
	store   Store
	baseURL string
}

// NewReportService creates a report service. baseURL prefixes share links.
func NewReportService(store Store, baseURL string) *ReportService {
	return &ReportService{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

// newReportID returns a short ID for convenience.
func newReportID() string {
	return uuid.New().String()[:8]
}

// Save stores report, assigning an ID and timestamp when missing. A
// generated ID is cleared again when the report could not be stored.
func (s *ReportService) Save(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	assigned := report.ID == ""

	var err error
	for range saveAttempts {
		if assigned {
			report.ID = newReportID()
		}
		err = s.store.SaveReport(ctx, report)
		if !assigned || !errors.Is(err, db.ErrAlreadyExists) {
			break
		}
	}
	if err != nil {
		if assigned {
			report.ID = ""
		}
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// Get returns the report with id.
func (s *ReportService) Get(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get report %q: %w", id, err)
	}
	return report, nil
}

// List returns summaries of the newest reports.
func (s *ReportService) List(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	reports, err := s.store.ListReports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	summaries := make([]models.ReportSummary, 0, len(reports))
	for _, r := range reports {
		summaries = append(summaries, r.Summary())
	}
	return summaries, nil
}

// Delete removes the report with id.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteReport(ctx, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete report %q: %w", id, err)
	}
	return nil
}

// ShareURL returns the shareable link for a report.
func (s *ReportService) ShareURL(id string) string {
	return s.baseURL + "/reports/" + id
}

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]models.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]models.Report)}
}

// SaveReport stores a copy of report.
func (m *MemoryStore) SaveReport(_ context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reports[report.ID]; ok {
		return fmt.Errorf("%w: %s", db.ErrAlreadyExists, report.ID)
	}
	m.reports[report.ID] = copyReport(*report)
	return nil
}

// GetReport returns a copy of the stored report.
func (m *MemoryStore) GetReport(_ context.Context, id string) (*models.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	r = copyReport(r)
	return &r, nil
}

// ListReports returns up to limit reports, newest first.
func (m *MemoryStore) ListReports(_ context.Context, limit int) ([]models.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Report, 0, len(m.reports))
	for _, r := range m.reports {
		out = append(out, copyReport(r))
	}
	slices.SortFunc(out, func(a, b models.Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteReport removes the report with id.
func (m *MemoryStore) DeleteReport(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.reports[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.reports, id)
	return nil
}

func copyReport(r models.Report) models.Report {
	r.Evidence = slices.Clone(r.Evidence)
	return r
}
