package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sc68cal/megamek-sub000/internal/movecheck"
)

// CheckRecord is one logged move check.
type CheckRecord struct {
	ID        uuid.UUID         `json:"id"`
	Unit      string            `json:"unit"`
	Board     string            `json:"board"`
	Steps     int               `json:"steps"`
	Report    string            `json:"report"`
	Entries   []movecheck.Entry `json:"entries"`
	CreatedAt time.Time         `json:"created_at"`
}

// CheckLog appends move check results to the local database.
type CheckLog struct {
	DB  *sql.DB
	Now func() time.Time
}

func (l *CheckLog) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now().UTC()
}

// Record stores rep for unit on board and returns the new record id.
func (l *CheckLog) Record(ctx context.Context, unit, board string, rep movecheck.Report) (uuid.UUID, error) {
	entries, err := json.Marshal(rep.Entries)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode entries: %w", err)
	}
	id := uuid.New()
	_, err = l.DB.ExecContext(ctx,
		`INSERT INTO move_checks (id, unit, board, steps, report, entries, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), unit, board, rep.Path.Len(), rep.String(), string(entries), l.now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert move check: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records for unit, newest first.
func (l *CheckLog) Recent(ctx context.Context, unit string, limit int) ([]CheckRecord, error) {
	rows, err := l.DB.QueryContext(ctx,
		`SELECT id, unit, COALESCE(board,''), steps, report, entries, created_at
		 FROM move_checks WHERE unit = ? ORDER BY created_at DESC LIMIT ?`, unit, limit)
	if err != nil {
		return nil, fmt.Errorf("query move checks: %w", err)
	}
	defer rows.Close()

	var out []CheckRecord
	for rows.Next() {
		var rec CheckRecord
		var id, entries string
		if err := rows.Scan(&id, &rec.Unit, &rec.Board, &rec.Steps, &rec.Report, &entries, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan move check: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("move check id %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(entries), &rec.Entries); err != nil {
			return nil, fmt.Errorf("decode entries: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
