package clickhouse

import (
	"context"
	"fmt"
	"time"

	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// SchemeEvents returns the audit trail of one scheme in confirmation order.
func (r *Repository) SchemeEvents(ctx context.Context, app model.AppID, schemeID uint64, limit int) ([]dmodel.AuditEvent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("scheme_events", err, start)
	}()

	const query = `
SELECT
	tx_id,
	log_index,
	event,
	method,
	sender,
	subject,
	amount,
	value,
	confirmed_round,
	round_time
FROM audit_events FINAL
WHERE app_id = ? AND scheme_id = ?
ORDER BY confirmed_round, tx_id, log_index
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, uint64(app), schemeID, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query scheme events: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	events := make([]dmodel.AuditEvent, 0, limit)
	for rows.Next() {
		var (
			ev    dmodel.AuditEvent
			txID  string
			round uint64
		)
		if err = rows.Scan(
			&txID,
			&ev.LogIndex,
			&ev.Name,
			&ev.Method,
			&ev.Sender,
			&ev.Subject,
			&ev.Amount,
			&ev.Value,
			&round,
			&ev.RoundTime,
		); err != nil {
			return nil, fmt.Errorf("scan scheme event: %w", err)
		}
		ev.AppID = app
		ev.SchemeID = schemeID
		ev.TxID = model.TxID(txID)
		ev.ConfirmedRound = model.Round(round)
		events = append(events, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scheme events: %w", err)
	}

	r.metrics.ObserveRows("scheme_events", len(events))
	return events, nil
}
