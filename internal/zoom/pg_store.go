package zoom

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps preferences in the zoom_preferences table.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PGStore backed by the given connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// EnsureTable creates the zoom_preferences table if it does not exist.
func (s *PGStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, createSchemaSQL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTableCreation, err)
	}

	return nil
}

// Get returns the stored preference for profile.
func (s *PGStore) Get(ctx context.Context, profile string) (Preference, error) {
	p := Preference{Profile: profile}

	err := s.pool.QueryRow(ctx,
		`SELECT level, updated_at FROM zoom_preferences WHERE profile = $1`,
		profile,
	).Scan(&p.Level, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DefaultPreference(profile), nil
		}

		return Preference{}, fmt.Errorf("getting zoom level for profile %s: %w", profile, err)
	}

	p.Level = Sanitize(p.Level)

	return p, nil
}

// Set upserts level for profile.
func (s *PGStore) Set(ctx context.Context, profile string, level int) (Preference, error) {
	if level <= 0 {
		return Preference{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	p := Preference{Profile: profile}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO zoom_preferences (profile, level)
		 VALUES ($1, $2)
		 ON CONFLICT (profile) DO UPDATE SET
		     level = EXCLUDED.level,
		     updated_at = NOW()
		 RETURNING level, updated_at`,
		profile, level,
	).Scan(&p.Level, &p.UpdatedAt)
	if err != nil {
		return Preference{}, fmt.Errorf("setting zoom level for profile %s: %w", profile, err)
	}

	return p, nil
}

// List returns every stored preference ordered by profile.
func (s *PGStore) List(ctx context.Context) ([]Preference, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT profile, level, updated_at FROM zoom_preferences ORDER BY profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying zoom preferences: %w", err)
	}
	defer rows.Close()

	prefs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Preference, error) {
		var p Preference
		if scanErr := row.Scan(&p.Profile, &p.Level, &p.UpdatedAt); scanErr != nil {
			return Preference{}, fmt.Errorf("scanning zoom preference row: %w", scanErr)
		}

		p.Level = Sanitize(p.Level)

		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning zoom preferences: %w", err)
	}

	return prefs, nil
}

// Update replaces the level of profile with fn(current) inside a transaction
// that holds the profile's row lock.
func (s *PGStore) Update(ctx context.Context, profile string, fn func(level int) int) (Preference, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return Preference{}, fmt.Errorf("beginning zoom update for profile %s: %w", profile, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx,
		`INSERT INTO zoom_preferences (profile, level) VALUES ($1, $2) ON CONFLICT (profile) DO NOTHING`,
		profile, Default,
	)
	if err != nil {
		return Preference{}, fmt.Errorf("seeding zoom level for profile %s: %w", profile, err)
	}

	var current int

	err = tx.QueryRow(ctx,
		`SELECT level FROM zoom_preferences WHERE profile = $1 FOR UPDATE`,
		profile,
	).Scan(&current)
	if err != nil {
		return Preference{}, fmt.Errorf("locking zoom level for profile %s: %w", profile, err)
	}

	level := fn(Sanitize(current))
	if level <= 0 {
		return Preference{}, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}

	p := Preference{Profile: profile}

	err = tx.QueryRow(ctx,
		`UPDATE zoom_preferences SET level = $2, updated_at = NOW()
		 WHERE profile = $1
		 RETURNING level, updated_at`,
		profile, level,
	).Scan(&p.Level, &p.UpdatedAt)
	if err != nil {
		return Preference{}, fmt.Errorf("updating zoom level for profile %s: %w", profile, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Preference{}, fmt.Errorf("committing zoom update for profile %s: %w", profile, err)
	}

	return p, nil
}
