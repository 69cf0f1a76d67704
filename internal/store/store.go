package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bannerkit/internal/domain"
	"bannerkit/internal/infra"
	"bannerkit/internal/sqlinline"
)

// Store is the persistence facade for banner records, user credits, and brand
// themes. It issues inline SQL through the shared executor so handlers, the
// orchestrator, and the sweeper share one data-access surface.
type Store struct {
	sql infra.SQLExecutor
}

func New(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// CreateImageRecord persists a freshly generated banner. ID is assigned here
// when the caller leaves it empty.
func (s *Store) CreateImageRecord(ctx context.Context, rec domain.GeneratedImageRecord) (domain.GeneratedImageRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := s.sql.QueryRow(ctx, sqlinline.QInsertBanner,
		rec.ID, rec.UserID, rec.TemplateID, rec.URL, rec.UserPrompt, rec.Seed, rec.Resolution, rec.PostTopic)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return domain.GeneratedImageRecord{}, fmt.Errorf("insert banner: %w", err)
	}
	return rec, nil
}

// GetImageRecord loads one record owned by the user.
func (s *Store) GetImageRecord(ctx context.Context, id, userID string) (*domain.GeneratedImageRecord, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectBanner, id, userID)
	rec, err := scanBanner(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListImageRecords returns the user's most recent banners.
func (s *Store) ListImageRecords(ctx context.Context, userID string) ([]domain.GeneratedImageRecord, error) {
	rows, err := s.sql.Query(ctx, sqlinline.QListBanners, userID)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()
	var out []domain.GeneratedImageRecord
	for rows.Next() {
		rec, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// MarkImageSaved flips saved from false to true. The predicate in the update
// makes the transition one-way; a second call reports ErrAlreadySaved.
func (s *Store) MarkImageSaved(ctx context.Context, id, userID string) error {
	tag, err := s.sql.Exec(ctx, sqlinline.QMarkBannerSaved, id, userID)
	if err != nil {
		return fmt.Errorf("mark saved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetImageRecord(ctx, id, userID); err != nil {
			return err
		}
		return domain.ErrAlreadySaved
	}
	return nil
}

// DeleteImageRecordOwned removes a record on the owner's explicit request.
func (s *Store) DeleteImageRecordOwned(ctx context.Context, id, userID string) error {
	tag, err := s.sql.Exec(ctx, sqlinline.QDeleteBannerOwned, id, userID)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindStaleUnsavedImages returns unsaved records created before the cutoff.
func (s *Store) FindStaleUnsavedImages(ctx context.Context, cutoff time.Time) ([]domain.GeneratedImageRecord, error) {
	rows, err := s.sql.Query(ctx, sqlinline.QSelectStaleUnsaved, cutoff)
	if err != nil {
		return nil, fmt.Errorf("find stale banners: %w", err)
	}
	defer rows.Close()
	var out []domain.GeneratedImageRecord
	for rows.Next() {
		rec, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// DeleteImageRecord removes a record regardless of owner; used by the sweeper.
func (s *Store) DeleteImageRecord(ctx context.Context, id string) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QDeleteBanner, id); err != nil {
		return fmt.Errorf("delete banner %s: %w", id, err)
	}
	return nil
}

// CreditBalance returns the user's current credit balance.
func (s *Store) CreditBalance(ctx context.Context, userID string) (int, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectCredits, userID)
	var credits int
	if err := row.Scan(&credits); err != nil {
		if infra.IsNoRows(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("select credits: %w", err)
	}
	return credits, nil
}

// DecrementCreditIfPositive atomically charges one credit. The conditional
// update is the single synchronization point for concurrent batches of the
// same user: the affected-row count tells the caller whether the charge
// landed, so two branches can never decrement past zero.
func (s *Store) DecrementCreditIfPositive(ctx context.Context, userID string) (bool, error) {
	tag, err := s.sql.Exec(ctx, sqlinline.QDecrementCreditIfPositive, userID)
	if err != nil {
		return false, fmt.Errorf("decrement credit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GrantCredits tops up the user's balance and returns the new value.
func (s *Store) GrantCredits(ctx context.Context, userID string, amount int) (int, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QGrantCredits, userID, amount)
	var credits int
	if err := row.Scan(&credits); err != nil {
		if infra.IsNoRows(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("grant credits: %w", err)
	}
	return credits, nil
}

// GetBrandTheme loads the user's brand theme, creating an empty one on first
// access so callers always see a row.
func (s *Store) GetBrandTheme(ctx context.Context, userID string) (*domain.BrandTheme, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectBrandTheme, userID)
	theme := &domain.BrandTheme{UserID: userID}
	err := row.Scan(&theme.ColorScheme, &theme.PreferredStyles, &theme.Mood, &theme.Lighting)
	if err != nil {
		if infra.IsNoRows(err) {
			if err := s.UpsertBrandTheme(ctx, theme); err != nil {
				return nil, err
			}
			return theme, nil
		}
		return nil, fmt.Errorf("select brand theme: %w", err)
	}
	return theme, nil
}

// UpsertBrandTheme writes the theme, clamping list lengths server-side.
func (s *Store) UpsertBrandTheme(ctx context.Context, theme *domain.BrandTheme) error {
	theme.Clamp()
	_, err := s.sql.Exec(ctx, sqlinline.QUpsertBrandTheme,
		theme.UserID, theme.ColorScheme, theme.PreferredStyles, theme.Mood, theme.Lighting)
	if err != nil {
		return fmt.Errorf("upsert brand theme: %w", err)
	}
	return nil
}

// UpsertUser creates or refreshes a user row and returns its identity and
// balance. New users start with the configured signup credits.
func (s *Store) UpsertUser(ctx context.Context, email, name string, signupCredits int) (id string, credits int, err error) {
	row := s.sql.QueryRow(ctx, sqlinline.QUpsertUser, email, name, signupCredits)
	var outEmail, outName string
	if err := row.Scan(&id, &outEmail, &outName, &credits); err != nil {
		return "", 0, fmt.Errorf("upsert user: %w", err)
	}
	return id, credits, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanBanner(row scannable) (*domain.GeneratedImageRecord, error) {
	var rec domain.GeneratedImageRecord
	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.TemplateID, &rec.URL, &rec.UserPrompt,
		&rec.Seed, &rec.Resolution, &rec.PostTopic, &rec.Saved, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
