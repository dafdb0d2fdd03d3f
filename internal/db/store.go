package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sc68cal/megamek-sub000/internal/ingestion"
)

// Store keeps profiles in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// Connect opens a pool for dsn and checks it is reachable.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewStore(pool), nil
}

func (s *Store) Close() { s.Pool.Close() }

// Migrate creates the tables Store needs.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS chassis (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			tonnage INTEGER NOT NULL,
			tech_base TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS unit_profiles (
			name TEXT PRIMARY KEY,
			chassis_id INTEGER NOT NULL REFERENCES chassis(id),
			model_code TEXT,
			walk_mp INTEGER NOT NULL,
			run_mp INTEGER NOT NULL,
			jump_mp INTEGER NOT NULL,
			data JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func normalizeTechBase(tb string) string {
	lower := strings.ToLower(tb)
	if strings.Contains(lower, "mixed") {
		return "Mixed"
	}
	if strings.Contains(lower, "clan") {
		return "Clan"
	}
	return "Inner Sphere"
}

func (s *Store) upsertChassis(ctx context.Context, tx pgx.Tx, name string, tonnage int, techBase string) (int, error) {
	var id int
	err := tx.QueryRow(ctx,
		`INSERT INTO chassis (name, tonnage, tech_base)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET tonnage = EXCLUDED.tonnage
		 RETURNING id`, name, tonnage, normalizeTechBase(techBase)).Scan(&id)
	return id, err
}

func (s *Store) UpsertProfile(ctx context.Context, p *ingestion.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", p.FullName(), err)
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	chassisID, err := s.upsertChassis(ctx, tx, p.Chassis, p.Mass, p.TechBase)
	if err != nil {
		return fmt.Errorf("upsert chassis %q: %w", p.Chassis, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO unit_profiles (name, chassis_id, model_code, walk_mp, run_mp, jump_mp, data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (name) DO UPDATE SET
		   chassis_id = EXCLUDED.chassis_id, model_code = EXCLUDED.model_code,
		   walk_mp = EXCLUDED.walk_mp, run_mp = EXCLUDED.run_mp, jump_mp = EXCLUDED.jump_mp,
		   data = EXCLUDED.data`,
		p.FullName(), chassisID, p.Model, p.WalkMP, p.RunMP(), p.JumpMP, data)
	if err != nil {
		return fmt.Errorf("upsert profile %q: %w", p.FullName(), err)
	}

	return tx.Commit(ctx)
}

func (s *Store) Profile(ctx context.Context, name string) (*ingestion.Profile, error) {
	var data []byte
	err := s.Pool.QueryRow(ctx, `SELECT data FROM unit_profiles WHERE name = $1`, name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %q: %w", name, err)
	}
	var p ingestion.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", name, err)
	}
	return &p, nil
}

// EachProfile calls fn for every stored profile in name order.
func (s *Store) EachProfile(ctx context.Context, fn func(*ingestion.Profile) error) error {
	rows, err := s.Pool.Query(ctx, `SELECT name, data FROM unit_profiles ORDER BY name`)
	if err != nil {
		return fmt.Errorf("select profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var data []byte
		if err := rows.Scan(&name, &data); err != nil {
			return fmt.Errorf("scan profile: %w", err)
		}
		var p ingestion.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode profile %q: %w", name, err)
		}
		if err := fn(&p); err != nil {
			return err
		}
	}
	return rows.Err()
}
