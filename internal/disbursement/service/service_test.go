package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/simnet"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubAccount struct {
	addr model.Address
}

func (a stubAccount) Address() model.Address { return a.addr }

func (a stubAccount) Sign(context.Context, []model.Operation, []int) ([][]byte, error) {
	return nil, errors.New("stub account cannot sign")
}

func newTestService(t *testing.T, f Factory, tk Tokens, clk clock.Clock) *Service {
	t.Helper()
	svc, err := New(Config{Factory: f, Tokens: tk, Clock: clk}, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestNew_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := NewMockFactory(ctrl)
	tk := NewMockTokens(ctrl)

	_, err := New(Config{Tokens: tk}, zap.NewNop())
	require.EqualError(t, err, "factory is required")
	_, err = New(Config{Factory: f}, zap.NewNop())
	require.EqualError(t, err, "tokens is required")
	_, err = New(Config{Factory: f, Tokens: tk}, nil)
	require.EqualError(t, err, "logger is required")
}

func TestService_CreateFullScheme_ValidationMakesNoCalls(t *testing.T) {
	valid := dmodel.SchemeConfig{Name: "Scheme", Budget: 100, Payout: 10, Deadline: now.Add(time.Hour)}
	long := make([]byte, dmodel.MaxSchemeNameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name   string
		mutate func(*dmodel.SchemeConfig)
	}{
		{name: "empty name", mutate: func(c *dmodel.SchemeConfig) { c.Name = "" }},
		{name: "name over 64 bytes", mutate: func(c *dmodel.SchemeConfig) { c.Name = string(long) }},
		{name: "payout above budget", mutate: func(c *dmodel.SchemeConfig) { c.Payout = 101 }},
		{name: "deadline now", mutate: func(c *dmodel.SchemeConfig) { c.Deadline = now }},
		{name: "deadline past", mutate: func(c *dmodel.SchemeConfig) { c.Deadline = now.Add(-time.Minute) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := newTestService(t, NewMockFactory(ctrl), NewMockTokens(ctrl), clock.NewManual(now))

			cfg := valid
			tt.mutate(&cfg)
			var steps []int
			res := svc.CreateFullScheme(context.Background(), stubAccount{}, cfg, func(p Progress) { steps = append(steps, p.Step) })
			require.False(t, res.Success)
			require.Equal(t, apperr.KindValidation, res.Kind)
			require.NotEmpty(t, res.Error)
			require.Equal(t, []int{1}, steps)
		})
	}
}

func TestService_CreateFullScheme(t *testing.T) {
	ctx := context.Background()
	authority := stubAccount{addr: simnet.NewAccount("authority")}
	cfg := dmodel.SchemeConfig{Name: "Free Cycle Yojana", Budget: 1000, Payout: 10, Deadline: now.Add(time.Hour)}

	tests := []struct {
		name    string
		token   bool
		prepare func(f *MockFactory, tk *MockTokens)
		want    CreateResult
		steps   []int
	}{
		{
			name: "without token",
			prepare: func(f *MockFactory, tk *MockTokens) {
				f.EXPECT().CreateScheme(ctx, authority, cfg).Return(uint64(7), []model.TxID{"a", "b"}, nil)
			},
			want:  CreateResult{Result: Result{Success: true, TxIDs: []model.TxID{"a", "b"}}, SchemeID: 7},
			steps: []int{1, 2, 4},
		},
		{
			name:  "with token",
			token: true,
			prepare: func(f *MockFactory, tk *MockTokens) {
				withToken := cfg
				withToken.TokenEnabled = true
				f.EXPECT().CreateScheme(ctx, authority, withToken).Return(uint64(7), []model.TxID{"a", "b"}, nil)
				tk.EXPECT().Create(ctx, authority, dmodel.TokenConfig{Name: "Free Cycle Yojana Token", UnitName: "FCY26", Total: dmodel.DefaultTokenSupply}).
					Return(model.AssetID(42), []model.TxID{"c"}, nil)
			},
			want:  CreateResult{Result: Result{Success: true, TxIDs: []model.TxID{"a", "b", "c"}}, SchemeID: 7, TokenAssetID: 42},
			steps: []int{1, 2, 3, 4},
		},
		{
			name:  "token failure keeps the scheme id",
			token: true,
			prepare: func(f *MockFactory, tk *MockTokens) {
				f.EXPECT().CreateScheme(ctx, authority, gomock.Any()).Return(uint64(7), []model.TxID{"a", "b"}, nil)
				tk.EXPECT().Create(ctx, authority, gomock.Any()).Return(model.AssetID(0), nil, signer.ErrDeclined)
			},
			want: CreateResult{
				Result:   Result{TxIDs: []model.TxID{"a", "b"}, Error: apperr.DeclinedMessage, Kind: apperr.KindUserDeclined},
				SchemeID: 7,
			},
			steps: []int{1, 2, 3},
		},
		{
			name: "create rejected",
			prepare: func(f *MockFactory, tk *MockTokens) {
				f.EXPECT().CreateScheme(ctx, authority, cfg).Return(uint64(0), nil, &ledger.RejectedError{Reason: "sender is not an authority"})
			},
			want: CreateResult{Result: Result{
				Error: (&ledger.RejectedError{Reason: "sender is not an authority"}).Error(),
				Kind:  apperr.KindAuthorization,
			}},
			steps: []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := NewMockFactory(ctrl)
			tk := NewMockTokens(ctrl)
			tt.prepare(f, tk)
			svc := newTestService(t, f, tk, clock.NewManual(now))

			c := cfg
			c.TokenEnabled = tt.token
			var steps []int
			got := svc.CreateFullScheme(ctx, authority, c, func(p Progress) {
				require.Equal(t, 4, p.Total)
				steps = append(steps, p.Step)
			})
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.steps, steps)
		})
	}
}

func TestService_CreateFullScheme_TokenSupply(t *testing.T) {
	ctx := context.Background()
	authority := stubAccount{addr: simnet.NewAccount("authority")}
	base := dmodel.SchemeConfig{Name: "Free Cycle Yojana", Budget: 1000, Payout: 10, Deadline: now.Add(time.Hour), TokenEnabled: true}
	capped := base
	capped.MaxBeneficiaries = 500

	tests := []struct {
		name   string
		supply uint64
		cfg    dmodel.SchemeConfig
		total  uint64
	}{
		{name: "configured supply", supply: 2_500, cfg: base, total: 2_500},
		{name: "built-in default", cfg: base, total: dmodel.DefaultTokenSupply},
		{name: "scheme ceiling wins", supply: 2_500, cfg: capped, total: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			f := NewMockFactory(ctrl)
			tk := NewMockTokens(ctrl)
			f.EXPECT().CreateScheme(ctx, authority, tt.cfg).Return(uint64(3), []model.TxID{"a"}, nil)
			tk.EXPECT().Create(ctx, authority, dmodel.TokenConfig{Name: "Free Cycle Yojana Token", UnitName: "FCY26", Total: tt.total}).
				Return(model.AssetID(9), []model.TxID{"b"}, nil)

			svc, err := New(Config{Factory: f, Tokens: tk, Clock: clock.NewManual(now), TokenSupply: tt.supply}, zap.NewNop())
			require.NoError(t, err)
			got := svc.CreateFullScheme(ctx, authority, tt.cfg, nil)
			require.True(t, got.Success, got.Error)
			require.Equal(t, model.AssetID(9), got.TokenAssetID)
		})
	}
}

func TestService_BatchMintChunks(t *testing.T) {
	ctx := context.Background()
	authority := stubAccount{addr: simnet.NewAccount("authority")}
	recipients := make([]dmodel.Recipient, 17)
	for i := range recipients {
		recipients[i] = dmodel.Recipient{Address: simnet.NewAccount(fmt.Sprintf("r%d", i)), Amount: 1}
	}
	ids := func(prefix string, n int) []model.TxID {
		out := make([]model.TxID, n)
		for i := range out {
			out[i] = model.TxID(fmt.Sprintf("%s%02d", prefix, i))
		}
		return out
	}

	t.Run("17 recipients become 16 and 1", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tk := NewMockTokens(ctrl)
		tk.EXPECT().MaxBatch().Return(16)
		gomock.InOrder(
			tk.EXPECT().BatchTransfer(ctx, authority, model.AssetID(9), recipients[:16]).Return(ids("a", 16), nil),
			tk.EXPECT().BatchTransfer(ctx, authority, model.AssetID(9), recipients[16:]).Return(ids("b", 1), nil),
		)
		svc := newTestService(t, NewMockFactory(ctrl), tk, clock.NewManual(now))

		res := svc.BatchMintBeneficiaryTokens(ctx, authority, 9, recipients)
		require.True(t, res.Success)
		require.Equal(t, append(ids("a", 16), ids("b", 1)...), res.TxIDs)
	})

	t.Run("second chunk fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tk := NewMockTokens(ctrl)
		tk.EXPECT().MaxBatch().Return(16)
		tk.EXPECT().BatchTransfer(ctx, authority, model.AssetID(9), recipients[:16]).Return(ids("a", 16), nil)
		tk.EXPECT().BatchTransfer(ctx, authority, model.AssetID(9), recipients[16:]).Return(nil, &ledger.TimeoutError{Rounds: 4})
		svc := newTestService(t, NewMockFactory(ctrl), tk, clock.NewManual(now))

		res := svc.BatchMintBeneficiaryTokens(ctx, authority, 9, recipients)
		require.False(t, res.Success)
		require.Equal(t, apperr.KindNetwork, res.Kind)
		require.Equal(t, ids("a", 16), res.TxIDs)
		require.Contains(t, res.Error, "chunk 16-16")
	})

	t.Run("zero amount is rejected before any call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := newTestService(t, NewMockFactory(ctrl), NewMockTokens(ctrl), clock.NewManual(now))
		bad := append([]dmodel.Recipient(nil), recipients...)
		bad[3].Amount = 0

		res := svc.BatchMintBeneficiaryTokens(ctx, authority, 9, bad)
		require.Equal(t, apperr.KindValidation, res.Kind)
		res = svc.BatchMintBeneficiaryTokens(ctx, authority, 9, nil)
		require.Equal(t, apperr.KindValidation, res.Kind)
	})
}

func TestService_CachedSchemes(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	f := NewMockFactory(ctrl)
	clk := clock.NewManual(now)
	svc := newTestService(t, f, NewMockTokens(ctrl), clk)

	first := []dmodel.Scheme{{ID: 1, Name: "one"}}
	second := []dmodel.Scheme{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}

	gomock.InOrder(
		f.EXPECT().Schemes(ctx).Return(first, nil),
		f.EXPECT().Schemes(ctx).Return(second, nil),
		f.EXPECT().Pause(ctx, gomock.Any(), uint64(1)).Return([]model.TxID{"p"}, nil),
		f.EXPECT().Schemes(ctx).Return(nil, errors.New("connection refused")),
		f.EXPECT().Schemes(ctx).Return(first, nil),
	)

	require.Equal(t, first, svc.CachedSchemes(ctx, false))
	clk.Advance(59 * time.Second)
	require.Equal(t, first, svc.CachedSchemes(ctx, false), "served from cache inside the TTL")

	sc, ok := svc.SchemeByID(ctx, 1)
	require.True(t, ok)
	require.Equal(t, "one", sc.Name)

	clk.Advance(time.Second)
	require.Equal(t, second, svc.CachedSchemes(ctx, false), "refreshed once the TTL expires")

	require.True(t, svc.PauseActiveScheme(ctx, stubAccount{}, 1).Success)
	require.Equal(t, second, svc.CachedSchemes(ctx, false), "failed refresh falls back to the stale list")

	require.Equal(t, first, svc.CachedSchemes(ctx, true))
}

func TestService_ReadsFailOpen(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	f := NewMockFactory(ctrl)
	addr := simnet.NewAccount("someone")
	svc := newTestService(t, f, NewMockTokens(ctrl), clock.NewManual(now))
	down := errors.New("dial tcp: connection refused")

	f.EXPECT().Stats(ctx).Return(dmodel.FactoryStats{}, down)
	f.EXPECT().Scheme(ctx, uint64(3)).Return(dmodel.Scheme{}, fmt.Errorf("read scheme 3: %w", ledger.ErrNotFound))
	f.EXPECT().Beneficiary(ctx, uint64(3), addr).Return(dmodel.Beneficiary{}, down)
	f.EXPECT().Beneficiaries(ctx, uint64(3)).Return(nil, down)
	f.EXPECT().IsAuthorizedAdmin(ctx, addr).Return(false, down)

	require.Equal(t, Statistics{}, svc.SchemeStatistics(ctx))
	_, ok := svc.SchemeByID(ctx, 3)
	require.False(t, ok)
	_, ok = svc.BeneficiarySchemeStatus(ctx, addr, 3)
	require.False(t, ok)
	require.Nil(t, svc.SchemeBeneficiaries(ctx, 3))
	require.False(t, svc.IsAuthorizedAdmin(ctx, addr))

	require.Equal(t, dmodel.StudentRecord{Address: addr}, svc.LookupStudent(ctx, addr))
	_, ok = svc.CitizenIdentity(ctx, addr)
	require.False(t, ok)

	res := svc.OptInStudent(ctx, stubAccount{addr: addr})
	require.False(t, res.Success)
	require.Equal(t, ErrTreasuryNotConfigured.Error(), res.Error)
}

func TestService_StudentReads(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tr := NewMockTreasury(ctrl)
	ids := NewMockIdentities(ctrl)
	addr := simnet.NewAccount("student")

	svc, err := New(Config{
		Factory:    NewMockFactory(ctrl),
		Tokens:     NewMockTokens(ctrl),
		Treasury:   tr,
		Identities: ids,
		Clock:      clock.NewManual(now),
	}, zap.NewNop())
	require.NoError(t, err)

	rec := dmodel.StudentRecord{Address: addr, OptedIn: true, Registered: true}
	tr.EXPECT().Student(ctx, addr).Return(rec, nil)
	require.Equal(t, rec, svc.LookupStudent(ctx, addr))

	tr.EXPECT().Student(ctx, addr).Return(dmodel.StudentRecord{}, errors.New("timeout"))
	require.Equal(t, dmodel.StudentRecord{Address: addr}, svc.LookupStudent(ctx, addr))

	ids.EXPECT().Stats(ctx).Return(dmodel.IdentityStats{TotalIdentities: 3, ActiveIdentities: 2, RevokedCount: 1}, nil)
	require.Equal(t, uint64(2), svc.IdentityStatistics(ctx).ActiveIdentities)

	tr.EXPECT().MarkMilestoneComplete(ctx, gomock.Any(), addr).Return(nil, signer.ErrDeclined)
	res := svc.CompleteStudentMilestone(ctx, stubAccount{}, addr)
	require.Equal(t, Result{Error: apperr.DeclinedMessage, Kind: apperr.KindUserDeclined}, res)
}
