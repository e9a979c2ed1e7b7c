package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/report"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/pkg/metrics"
)

// ErrNothingToExport is returned when a table has no columns or no rows.
var ErrNothingToExport = errors.New("report has no columns or no rows to export")

type ReportOptions struct {
	Catalog  *report.Catalog // nil means report.Default
	Locale   language.Tag
	Location *time.Location
	Now      func() time.Time
}

// ReportService loads snapshots from the repositories and keeps one report
// selection per user. Selections live in process memory until the user logs
// out (DropSession) or the server restarts; there is no idle eviction.
type ReportService struct {
	tickets   repository.TicketRepository
	equipment repository.EquipmentRepository
	users     repository.UserRepository
	log       zerolog.Logger

	catalog *report.Catalog
	locale  language.Tag
	loc     *time.Location
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*report.Selection
}

func NewReportService(log zerolog.Logger, tickets repository.TicketRepository, equipment repository.EquipmentRepository, users repository.UserRepository, opts ReportOptions) *ReportService {
	if opts.Catalog == nil {
		opts.Catalog = report.Default
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReportService{
		tickets: tickets, equipment: equipment, users: users, log: log,
		catalog: opts.Catalog, locale: opts.Locale, loc: opts.Location, now: opts.Now,
		sessions: map[string]*report.Selection{},
	}
}

func (s *ReportService) Fields() []report.Field { return s.catalog.Fields() }

// FieldsOf never returns nil so empty groups encode as [].
func (s *ReportService) FieldsOf(c report.Collection) []report.Field {
	if fs := s.catalog.ByCollection(c); fs != nil {
		return fs
	}
	return []report.Field{}
}

// Snapshot reads all three collections.
func (s *ReportService) Snapshot(ctx context.Context) (*report.Snapshot, error) {
	tickets, err := s.tickets.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tickets: %w", err)
	}
	equipment, err := s.equipment.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return &report.Snapshot{Tickets: tickets, Equipment: equipment, Users: users}, nil
}

// Build runs q against a fresh snapshot using the configured collation.
func (s *ReportService) Build(ctx context.Context, q report.Query) (report.Table, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return report.Table{}, err
	}
	q.Locale = s.locale
	t, err := s.catalog.Build(snap, q)
	if err != nil {
		return report.Table{}, err
	}
	if len(t.Columns) > 0 {
		metrics.ReportBuildsTotal.WithLabelValues(string(t.Primary)).Inc()
		metrics.ReportRows.Observe(float64(len(t.Rows)))
	}
	s.log.Debug().Str("primary", string(t.Primary)).Int("columns", len(t.Columns)).Int("rows", len(t.Rows)).Msg("report built")
	return t, nil
}

// RunRequest is a one-shot report, independent of any session.
type RunRequest struct {
	Fields []string    `json:"fields"`
	Sort   report.Sort `json:"sort"`
	From   string      `json:"from"`
	To     string      `json:"to"`
}

func (s *ReportService) Run(ctx context.Context, in RunRequest) (report.Table, error) {
	rng, err := s.ParseRange(in.From, in.To)
	if err != nil {
		return report.Table{}, err
	}
	return s.Build(ctx, report.Query{Fields: in.Fields, Sort: in.Sort, Range: rng})
}

// ParseRange reads YYYY-MM-DD bounds in the report time zone.
func (s *ReportService) ParseRange(from, to string) (report.DateRange, error) {
	rng, err := report.ParseDateRange(from, to, s.loc)
	if err != nil && !errors.Is(err, report.ErrInvalidRange) {
		return report.DateRange{}, fmt.Errorf("%w: %w", repository.ErrInvalidInput, err)
	}
	return rng, err
}

// Export writes t as CSV and returns the download name.
func (s *ReportService) Export(w io.Writer, t report.Table) (string, error) {
	if !t.Exportable() {
		return "", ErrNothingToExport
	}
	if err := t.WriteCSV(w); err != nil {
		return "", err
	}
	metrics.ReportExportsTotal.Inc()
	return report.Filename(t.Primary, s.now().In(s.loc)), nil
}

// -----------------------------------------------------------------------------
// Per-user selections
// -----------------------------------------------------------------------------

type SessionView struct {
	State   string            `json:"state"`
	Fields  []string          `json:"fields"`
	Primary report.Collection `json:"primary,omitempty"`
	Sort    report.Sort       `json:"sort"`
	Range   report.DateRange  `json:"range"`
}

func (s *ReportService) session(uid string) *report.Selection {
	sel, ok := s.sessions[uid]
	if !ok {
		sel = report.NewSelection(s.catalog)
		s.sessions[uid] = sel
		metrics.ReportSessions.Set(float64(len(s.sessions)))
	}
	return sel
}

func view(sel *report.Selection) SessionView {
	primary, _ := sel.Primary()
	return SessionView{
		State: sel.State().String(), Fields: sel.Keys(), Primary: primary,
		Sort: sel.Sort(), Range: sel.Range(),
	}
}

func (s *ReportService) withSession(uid string, fn func(*report.Selection) error) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.session(uid)
	if fn != nil {
		if err := fn(sel); err != nil {
			return view(sel), err
		}
	}
	return view(sel), nil
}

// DropSession forgets uid's selection.
func (s *ReportService) DropSession(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[uid]; !ok {
		return
	}
	delete(s.sessions, uid)
	metrics.ReportSessions.Set(float64(len(s.sessions)))
}

func (s *ReportService) Session(uid string) SessionView {
	v, _ := s.withSession(uid, nil)
	return v
}

func (s *ReportService) ToggleField(uid, key string) (SessionView, error) {
	return s.withSession(uid, func(sel *report.Selection) error { return sel.Toggle(key) })
}

func (s *ReportService) ToggleSort(uid, key string) (SessionView, error) {
	return s.withSession(uid, func(sel *report.Selection) error { return sel.ToggleSort(key) })
}

func (s *ReportService) SetRange(uid, from, to string) (SessionView, error) {
	rng, err := s.ParseRange(from, to)
	if err != nil {
		return s.Session(uid), err
	}
	return s.withSession(uid, func(sel *report.Selection) error {
		sel.SetRange(rng)
		return nil
	})
}

// ResetSession returns the user's selection to Empty.
func (s *ReportService) ResetSession(uid string) SessionView {
	v, _ := s.withSession(uid, func(sel *report.Selection) error {
		sel.Reset()
		return nil
	})
	return v
}

// SessionTable builds the user's current selection.
func (s *ReportService) SessionTable(ctx context.Context, uid string) (report.Table, error) {
	s.mu.Lock()
	q := s.session(uid).Query()
	s.mu.Unlock()
	return s.Build(ctx, q)
}

// -----------------------------------------------------------------------------
// Dashboard summary
// -----------------------------------------------------------------------------

type Summary struct {
	Open             int `json:"open"`
	InProgress       int `json:"inProgress"`
	WaitingOnUser    int `json:"waitingOnUser"`
	Closed           int `json:"closed"`
	HighCriticalOpen int `json:"highCriticalOpen"`
	Closed7d         int `json:"closed7d"`
}

// Summary uses the repository's counters when it has them and otherwise
// scans every ticket.
func (s *ReportService) Summary(ctx context.Context) (Summary, error) {
	type adv interface {
		CountByStatus(ctx context.Context) (map[models.TicketStatus]int, error)
		CountClosedSince(ctx context.Context, since time.Time) (int, error)
		CountActiveByUrgency(ctx context.Context, urgencies []models.Urgency) (int, error)
	}
	since := s.now().Add(-7 * 24 * time.Hour)
	hot := []models.Urgency{models.UrgencyHigh, models.UrgencyCritical}

	if rr, ok := s.tickets.(adv); ok {
		by, err := rr.CountByStatus(ctx)
		if err != nil {
			return Summary{}, err
		}
		closed7d, err := rr.CountClosedSince(ctx, since)
		if err != nil {
			return Summary{}, err
		}
		hotOpen, err := rr.CountActiveByUrgency(ctx, hot)
		if err != nil {
			return Summary{}, err
		}
		return Summary{
			Open: by[models.StatusOpen], InProgress: by[models.StatusInProgress],
			WaitingOnUser: by[models.StatusWaitingUser], Closed: by[models.StatusClosed],
			HighCriticalOpen: hotOpen, Closed7d: closed7d,
		}, nil
	}

	items, err := s.tickets.All(ctx)
	if err != nil {
		return Summary{}, err
	}
	var out Summary
	for _, t := range items {
		switch t.Status {
		case models.StatusOpen:
			out.Open++
		case models.StatusInProgress:
			out.InProgress++
		case models.StatusWaitingUser:
			out.WaitingOnUser++
		case models.StatusClosed:
			out.Closed++
			if !t.UpdatedAt.Before(since) {
				out.Closed7d++
			}
		}
		if t.Status.Active() && (t.Urgency == models.UrgencyHigh || t.Urgency == models.UrgencyCritical) {
			out.HighCriticalOpen++
		}
	}
	return out, nil
}
