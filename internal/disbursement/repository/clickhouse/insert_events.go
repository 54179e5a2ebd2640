package clickhouse

import (
	"context"
	"fmt"
	"time"

	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
)

// InsertEvents stores audit events. Re-inserting an event is harmless: rows
// collapse on (app, scheme, round, tx, log index).
func (r *Repository) InsertEvents(ctx context.Context, events []dmodel.AuditEvent) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO audit_events (
	app_id,
	tx_id,
	log_index,
	event,
	method,
	scheme_id,
	sender,
	subject,
	amount,
	value,
	confirmed_round,
	round_time,
	page_token
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, ev := range events {
		if err = batch.Append(
			uint64(ev.AppID),
			string(ev.TxID),
			ev.LogIndex,
			ev.Name,
			ev.Method,
			ev.SchemeID,
			ev.Sender,
			ev.Subject,
			ev.Amount,
			ev.Value,
			uint64(ev.ConfirmedRound),
			ev.RoundTime,
			ev.PageToken,
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	r.metrics.ObserveRows("insert_events", len(events))
	return nil
}
