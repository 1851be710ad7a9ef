package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentgrid/searchd/internal/domain/model"
)

// defaultQueryTimeout bounds store round-trips so a slow store surfaces a
// timeout instead of hanging the request.
const defaultQueryTimeout = 5 * time.Second

// PostgresOption applies a configuration option to the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithQueryTimeout overrides the per-query timeout.
func WithQueryTimeout(d time.Duration) PostgresOption {
	return func(s *PostgresStore) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// PostgresStore implements Store over a pgx connection pool. Row-to-domain
// projection happens here and nowhere else.
type PostgresStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresStore connects to databaseURL and verifies connectivity.
func NewPostgresStore(ctx context.Context, databaseURL string, opts ...PostgresOption) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: pgxpool.New: %v", ErrUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	s := &PostgresStore{pool: pool, queryTimeout: defaultQueryTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

const candidateColumns = `
	id, owner_id, headline, COALESCE(location, ''), skills, industries,
	companies, COALESCE(title, ''), salary_min, salary_max,
	remote_preference, privacy, verified, completion, updated_at`

// FetchCandidates scans the candidate population. Filtering happens in the
// engine, keeping filter semantics independent of SQL.
func (s *PostgresStore) FetchCandidates(ctx context.Context) ([]*model.CandidateProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles`)
	if err != nil {
		return nil, fmt.Errorf("%w: query candidates: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var profiles []*model.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan candidate: %v", ErrUnavailable, err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate candidates: %v", ErrUnavailable, err)
	}
	return profiles, nil
}

// FetchProfileByID resolves a single profile by identifier.
func (s *PostgresStore) FetchProfileByID(ctx context.Context, id string) (*model.CandidateProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row := s.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidate_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile %q: %v", ErrUnavailable, id, err)
	}
	return p, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func scanProfile(row pgx.Row) (*model.CandidateProfile, error) {
	var p model.CandidateProfile
	var remote, privacy string
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Headline, &p.Location, &p.Skills, &p.Industries,
		&p.Companies, &p.Title, &p.SalaryMin, &p.SalaryMax,
		&remote, &privacy, &p.Verified, &p.Completion, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Remote = model.RemotePreference(remote)
	p.Privacy = model.Privacy(privacy)
	return &p, nil
}
