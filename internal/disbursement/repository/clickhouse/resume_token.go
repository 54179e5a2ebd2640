package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// ResumeToken returns the history token of the newest stored page of app, or
// an empty token when nothing was stored yet.
func (r *Repository) ResumeToken(ctx context.Context, app model.AppID) (string, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("resume_token", err, start)
	}()

	const query = `
SELECT argMax(page_token, confirmed_round) AS token
FROM audit_events
WHERE app_id = ?`

	rows, err := r.conn.Query(ctx, query, uint64(app))
	if err != nil {
		return "", fmt.Errorf("query resume token: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var token string
	if !rows.Next() {
		return "", nil
	}
	if err = rows.Scan(&token); err != nil {
		return "", fmt.Errorf("scan resume token: %w", err)
	}
	if err = rows.Err(); err != nil {
		return "", fmt.Errorf("iterate resume token: %w", err)
	}

	return token, nil
}
