package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sc68cal/megamek-sub000/internal/ingestion"
)

// ErrProfileNotFound is returned when no profile has the requested name.
var ErrProfileNotFound = errors.New("profile not found")

// Profiles stores parsed unit profiles keyed by full name.
type Profiles interface {
	UpsertProfile(ctx context.Context, p *ingestion.Profile) error
	Profile(ctx context.Context, name string) (*ingestion.Profile, error)
}

// SQLiteProfiles keeps profiles in the local profile database.
type SQLiteProfiles struct {
	DB *sql.DB
}

func (s *SQLiteProfiles) UpsertProfile(ctx context.Context, p *ingestion.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", p.FullName(), err)
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO profiles (name, chassis, model, mass, walk_mp, jump_mp, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		   chassis = excluded.chassis, model = excluded.model, mass = excluded.mass,
		   walk_mp = excluded.walk_mp, jump_mp = excluded.jump_mp, data = excluded.data,
		   updated_at = CURRENT_TIMESTAMP`,
		p.FullName(), p.Chassis, p.Model, p.Mass, p.WalkMP, p.JumpMP, string(data))
	if err != nil {
		return fmt.Errorf("upsert profile %q: %w", p.FullName(), err)
	}
	return nil
}

func (s *SQLiteProfiles) Profile(ctx context.Context, name string) (*ingestion.Profile, error) {
	var data string
	err := s.DB.QueryRowContext(ctx, `SELECT data FROM profiles WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%q: %w", name, ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query profile %q: %w", name, err)
	}
	var p ingestion.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", name, err)
	}
	return &p, nil
}

// Names lists stored profile names matching a LIKE pattern, sorted.
func (s *SQLiteProfiles) Names(ctx context.Context, like string) ([]string, error) {
	if like == "" {
		like = "%"
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM profiles WHERE name LIKE ? ORDER BY name`, like)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan profile name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

var (
	_ Profiles = (*SQLiteProfiles)(nil)
	_ Profiles = (*Store)(nil)
)
