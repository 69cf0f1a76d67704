package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"bannerkit/internal/domain"
	"bannerkit/internal/infra"
	"bannerkit/internal/middleware"
	"bannerkit/internal/pipeline"
	"bannerkit/internal/providers/ideas"
	"bannerkit/internal/store"
)

// Shared stubs for the handler tests. The store stubs replay programmed
// results in call order; the provider stubs record what they were asked.

type rowResult struct {
	vals []any
	err  error
}

type execResult struct {
	tag pgconn.CommandTag
	err error
}

type stubDB struct {
	rowResults  []rowResult
	execResults []execResult
	queryRows   [][]any
	queryErr    error

	execArgs [][]any
}

func (db *stubDB) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	db.execArgs = append(db.execArgs, args)
	if len(db.execResults) == 0 {
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	res := db.execResults[0]
	db.execResults = db.execResults[1:]
	return res.tag, res.err
}

func (db *stubDB) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	if len(db.rowResults) == 0 {
		return stubRow{err: pgx.ErrNoRows}
	}
	res := db.rowResults[0]
	db.rowResults = db.rowResults[1:]
	return stubRow{vals: res.vals, err: res.err}
}

func (db *stubDB) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	return &stubRows{rows: db.queryRows, idx: -1}, nil
}

type stubRow struct {
	vals []any
	err  error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(dest, r.vals)
}

type stubRows struct {
	rows [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}
func (r *stubRows) Scan(dest ...any) error { return scanInto(dest, r.rows[r.idx]) }
func (r *stubRows) Values() ([]any, error) { return r.rows[r.idx], nil }
func (r *stubRows) RawValues() [][]byte    { return nil }
func (r *stubRows) Conn() *pgx.Conn        { return nil }

func scanInto(dest, vals []any) error {
	if len(dest) != len(vals) {
		return errors.New("stub: dest/vals length mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = vals[i].(string)
		case *int:
			*p = vals[i].(int)
		case *bool:
			*p = vals[i].(bool)
		case *time.Time:
			*p = vals[i].(time.Time)
		case *[]string:
			*p = vals[i].([]string)
		default:
			return errors.New("stub: unsupported scan target")
		}
	}
	return nil
}

func emptyBrandRow() rowResult {
	return rowResult{vals: []any{[]string{}, []string{}, []string{}, []string{}}}
}

func creditsRow(credits int) rowResult {
	return rowResult{vals: []any{credits}}
}

func bannerRowVals(id string, saved bool) []any {
	return []any{id, "u1", "sketchy", "https://cdn.example/" + id + ".png", "prompt", 42, "RESOLUTION_1024_1024", "topic", saved, time.Now()}
}

type stubIdeas struct {
	batches  [][]domain.VisualElementIdea
	err      error
	requests []ideas.IdeasRequest
}

func (s *stubIdeas) GenerateIdeas(_ context.Context, req ideas.IdeasRequest) ([]domain.VisualElementIdea, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	batch := s.batches[0]
	if len(s.batches) > 1 {
		s.batches = s.batches[1:]
	}
	return batch, nil
}

type stubRunner struct {
	result   *pipeline.BatchResult
	err      error
	requests []domain.GenerationRequest
}

func (s *stubRunner) Generate(_ context.Context, req domain.GenerationRequest) (*pipeline.BatchResult, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestApp(db *stubDB, ideaGen IdeaGenerator, runner BatchRunner) *App {
	cfg := &infra.Config{IdeaSessionTTL: time.Minute, SignupCredits: 10, JWTSecret: "test-secret"}
	return NewApp(store.New(db), zerolog.Nop(), cfg, ideaGen, runner)
}

func authedContext(userID string) context.Context {
	return contextWithRouteParams(userID, nil)
}

func contextWithRouteParams(userID string, params map[string]string) context.Context {
	ctx := context.Background()
	if userID != "" {
		ctx = middleware.ContextWithUserID(ctx, userID)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}
