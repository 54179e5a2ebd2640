package audit

import (
	"bytes"

	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/tidwall/gjson"
)

// Decode extracts the events a confirmed call logged. Return values and
// entries that are not event objects are skipped.
func Decode(app model.AppID, tx model.HistoryTransaction, pageToken string) []dmodel.AuditEvent {
	var events []dmodel.AuditEvent
	for i, entry := range tx.Logs {
		if bytes.HasPrefix(entry, model.ReturnPrefix) || !gjson.ValidBytes(entry) {
			continue
		}
		fields := gjson.GetManyBytes(entry, "event", "scheme_id", "subject", "amount", "value")
		if fields[0].String() == "" {
			continue
		}
		events = append(events, dmodel.AuditEvent{
			AppID:          app,
			TxID:           tx.ID,
			LogIndex:       uint16(i),
			Name:           fields[0].String(),
			Method:         tx.Method,
			SchemeID:       fields[1].Uint(),
			Sender:         tx.Sender.String(),
			Subject:        fields[2].String(),
			Amount:         fields[3].Uint(),
			Value:          fields[4].Uint(),
			ConfirmedRound: tx.ConfirmedRound,
			RoundTime:      tx.RoundTime,
			PageToken:      pageToken,
		})
	}
	return events
}
