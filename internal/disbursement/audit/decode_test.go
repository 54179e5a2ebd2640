package audit

import (
	"testing"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/stretchr/testify/require"
)

func addr(seed byte) model.Address {
	var a model.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestDecode(t *testing.T) {
	roundTime := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	tx := model.HistoryTransaction{
		ID:             "TXA",
		Sender:         addr(1),
		ConfirmedRound: 12,
		RoundTime:      roundTime,
		Method:         "release_funds",
	}

	tests := []struct {
		name  string
		logs  [][]byte
		names []string
	}{
		{name: "no logs"},
		{
			name:  "single event",
			logs:  [][]byte{[]byte(`{"event":"funds_released","scheme_id":3,"subject":"bob","amount":250000}`)},
			names: []string{"funds_released"},
		},
		{
			name: "return value and garbage skipped",
			logs: [][]byte{
				model.EncodeReturn([]byte{0, 0, 0, 0, 0, 0, 0, 1}),
				[]byte("not json"),
				[]byte(`{"other":1}`),
				[]byte(`{"event":"scheme_paused","scheme_id":3}`),
			},
			names: []string{"scheme_paused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tx
			tx.Logs = tt.logs
			events := Decode(7, tx, "40")

			names := make([]string, 0, len(events))
			for _, ev := range events {
				names = append(names, ev.Name)
				require.Equal(t, model.AppID(7), ev.AppID)
				require.Equal(t, model.TxID("TXA"), ev.TxID)
				require.Equal(t, "release_funds", ev.Method)
				require.Equal(t, addr(1).String(), ev.Sender)
				require.Equal(t, model.Round(12), ev.ConfirmedRound)
				require.Equal(t, roundTime, ev.RoundTime)
				require.Equal(t, "40", ev.PageToken)
				require.Equal(t, uint64(3), ev.SchemeID)
			}
			if len(tt.names) == 0 {
				require.Empty(t, names)
				return
			}
			require.Equal(t, tt.names, names)
		})
	}
}

func TestDecode_Fields(t *testing.T) {
	tx := model.HistoryTransaction{
		ID: "TXB",
		Logs: [][]byte{
			[]byte(`{"event":"scheme_created","scheme_id":1,"subject":"ministry","amount":600000,"value":200000}`),
			[]byte(`{"event":"scheme_funded","scheme_id":1,"amount":600000}`),
		},
	}

	events := Decode(7, tx, "")
	require.Len(t, events, 2)
	require.Equal(t, uint16(0), events[0].LogIndex)
	require.Equal(t, "ministry", events[0].Subject)
	require.Equal(t, uint64(600000), events[0].Amount)
	require.Equal(t, uint64(200000), events[0].Value)
	require.Equal(t, uint16(1), events[1].LogIndex)
	require.Zero(t, events[1].Value)
}
