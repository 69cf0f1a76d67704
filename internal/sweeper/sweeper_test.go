package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"bannerkit/internal/domain"
)

type stubStore struct {
	records   []domain.GeneratedImageRecord
	deleted   []string
	deleteErr map[string]error
	findErr   error
}

func (s *stubStore) FindStaleUnsavedImages(_ context.Context, cutoff time.Time) ([]domain.GeneratedImageRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []domain.GeneratedImageRecord
	for _, rec := range s.records {
		if !rec.Saved && rec.CreatedAt.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubStore) DeleteImageRecord(_ context.Context, id string) error {
	if err := s.deleteErr[id]; err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	return nil
}

func newTestService(store *stubStore, now time.Time) *Service {
	svc := New(store, zerolog.Nop(), domain.RetentionAge, time.Hour)
	svc.now = func() time.Time { return now }
	return svc
}

func record(id string, age time.Duration, saved bool, now time.Time) domain.GeneratedImageRecord {
	return domain.GeneratedImageRecord{ID: id, UserID: "u1", Saved: saved, CreatedAt: now.Add(-age)}
}

func TestSweepOnceDeletesOnlyPastRetentionAge(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := &stubStore{records: []domain.GeneratedImageRecord{
		record("fresh", 22*time.Hour+59*time.Minute, false, now),
		record("stale", 23*time.Hour+1*time.Minute, false, now),
	}}
	svc := newTestService(store, now)

	deleted, err := svc.SweepOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "stale" {
		t.Fatalf("wrong records deleted: %v", store.deleted)
	}
}

func TestSweepOnceNeverDeletesSavedRecords(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := &stubStore{records: []domain.GeneratedImageRecord{
		record("kept", 400*time.Hour, true, now),
		record("stale", 24*time.Hour, false, now),
	}}
	svc := newTestService(store, now)

	deleted, err := svc.SweepOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", deleted)
	}
	for _, id := range store.deleted {
		if id == "kept" {
			t.Fatal("saved record was deleted")
		}
	}
}

func TestSweepOnceIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := &stubStore{records: []domain.GeneratedImageRecord{
		record("stale", 30*time.Hour, false, now),
	}}
	svc := newTestService(store, now)

	if deleted, err := svc.SweepOnce(context.Background()); err != nil || deleted != 1 {
		t.Fatalf("first sweep: deleted=%d err=%v", deleted, err)
	}
	if deleted, err := svc.SweepOnce(context.Background()); err != nil || deleted != 0 {
		t.Fatalf("second sweep must be a no-op: deleted=%d err=%v", deleted, err)
	}
}

func TestSweepOnceContinuesPastDeleteFailures(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := &stubStore{
		records: []domain.GeneratedImageRecord{
			record("bad", 30*time.Hour, false, now),
			record("good", 30*time.Hour, false, now),
		},
		deleteErr: map[string]error{"bad": errors.New("row locked")},
	}
	svc := newTestService(store, now)

	deleted, err := svc.SweepOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Fatalf("expected the healthy record to be deleted, got %d", deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "good" {
		t.Fatalf("wrong records deleted: %v", store.deleted)
	}
}

func TestSweepOnceSurfacesQueryErrors(t *testing.T) {
	store := &stubStore{findErr: errors.New("db down")}
	svc := newTestService(store, time.Now())

	if _, err := svc.SweepOnce(context.Background()); err == nil {
		t.Fatal("expected query error to surface")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := &stubStore{}
	svc := New(store, zerolog.Nop(), domain.RetentionAge, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
