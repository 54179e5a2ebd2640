package service

import (
	"context"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// OptInStudent allocates the student's local state in the treasury.
func (s *Service) OptInStudent(ctx context.Context, student contract.Account) Result {
	if s.treasury == nil {
		return s.write("opt in student", nil, ErrTreasuryNotConfigured)
	}
	ids, err := s.treasury.OptIn(ctx, student)
	return s.write("opt in student", ids, err)
}

// RegisterStudent registers the calling student.
func (s *Service) RegisterStudent(ctx context.Context, student contract.Account) Result {
	if s.treasury == nil {
		return s.write("register student", nil, ErrTreasuryNotConfigured)
	}
	ids, err := s.treasury.Register(ctx, student)
	return s.write("register student", ids, err)
}

// CompleteStudentMilestone records the student's milestone.
func (s *Service) CompleteStudentMilestone(ctx context.Context, authority contract.Account, student model.Address) Result {
	if s.treasury == nil {
		return s.write("complete milestone", nil, ErrTreasuryNotConfigured)
	}
	ids, err := s.treasury.MarkMilestoneComplete(ctx, authority, student)
	return s.write("complete milestone", ids, err)
}

// ReleaseStudentPayout pays a student whose milestone is complete.
func (s *Service) ReleaseStudentPayout(ctx context.Context, from contract.Account, student model.Address) Result {
	if s.treasury == nil {
		return s.write("release payout", nil, ErrTreasuryNotConfigured)
	}
	ids, err := s.treasury.ReleasePayout(ctx, from, student)
	return s.write("release payout", ids, err)
}

// LookupStudent returns the milestone record of addr. Unknown students and
// read failures yield an empty record.
func (s *Service) LookupStudent(ctx context.Context, addr model.Address) dmodel.StudentRecord {
	empty := dmodel.StudentRecord{Address: addr}
	if s.treasury == nil {
		return empty
	}
	rec, err := s.treasury.Student(ctx, addr)
	if err != nil {
		s.readFailed("read student", err)
		return empty
	}
	return rec
}

// TreasuryState reads the treasury globals.
func (s *Service) TreasuryState(ctx context.Context) (dmodel.TreasuryState, bool) {
	if s.treasury == nil {
		return dmodel.TreasuryState{}, false
	}
	st, err := s.treasury.State(ctx)
	if err != nil {
		s.readFailed("read treasury", err)
		return dmodel.TreasuryState{}, false
	}
	return st, true
}

// CitizenIdentity returns the identity of addr. ok is false when none was
// minted or the registry cannot be read.
func (s *Service) CitizenIdentity(ctx context.Context, addr model.Address) (dmodel.Identity, bool) {
	if s.identities == nil {
		return dmodel.Identity{}, false
	}
	id, err := s.identities.Identity(ctx, addr)
	if err != nil {
		s.readFailed("read identity", err)
		return dmodel.Identity{}, false
	}
	return id, true
}

// IdentityStatistics reads the registry counters.
func (s *Service) IdentityStatistics(ctx context.Context) dmodel.IdentityStats {
	if s.identities == nil {
		return dmodel.IdentityStats{}
	}
	st, err := s.identities.Stats(ctx)
	if err != nil {
		s.readFailed("read identity stats", err)
		return dmodel.IdentityStats{}
	}
	return st
}
