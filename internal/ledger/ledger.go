// Package ledger is the durable leaderboard store. It is the only
// stateful collaborator of the progression engine: everything else
// rides in the client token.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/playperu/questhunt/internal/questhunt"
)

type Ledger struct {
	db *sql.DB
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// Record stores a finished run. A run is keyed by
// (player, scenario, restarts, elapsed), so resubmitting the same
// completion is a no-op. Returns whether a new row was written.
func (l *Ledger) Record(ctx context.Context, r questhunt.Result) (bool, error) {
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO results (player_id, scenario, restarts, elapsed_seconds, nickname)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (player_id, scenario, restarts, elapsed_seconds) DO NOTHING
	`, r.PlayerID, r.Scenario, r.Restarts, r.ElapsedSeconds, r.Nickname)
	if err != nil {
		return false, fmt.Errorf("recording result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("recording result: %w", err)
	}
	return n > 0, nil
}

// Top returns the fastest runs for a scenario, best first.
func (l *Ledger) Top(ctx context.Context, scenario string, limit int) ([]questhunt.Result, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT player_id, scenario, restarts, elapsed_seconds, nickname
		FROM results
		WHERE scenario = ?
		ORDER BY elapsed_seconds ASC, id ASC
		LIMIT ?
	`, scenario, limit)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var results []questhunt.Result
	for rows.Next() {
		var r questhunt.Result
		if err := rows.Scan(&r.PlayerID, &r.Scenario, &r.Restarts, &r.ElapsedSeconds, &r.Nickname); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
