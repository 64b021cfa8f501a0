package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
	"github.com/madhuerpdirect-droid/gts-chits/internal/importer"
	"github.com/madhuerpdirect-droid/gts-chits/internal/registry"
)

// EnrollmentService admits members into groups, singly or in bulk.
type EnrollmentService struct {
	reg *registry.Registry
}

func NewEnrollmentService(reg *registry.Registry) *EnrollmentService {
	return &EnrollmentService{reg: reg}
}

// Enroll admits one member into the group, enforcing capacity.
func (s *EnrollmentService) Enroll(ctx context.Context, groupID string, m core.Member) (core.Member, error) {
	g, ok := core.FindGroup(s.reg.Groups(), groupID)
	if !ok {
		return core.Member{}, core.ErrGroupNotFound
	}

	m.GroupID = g.ID
	members, err := core.Enroll(s.reg.Members(), g, m)
	if err != nil {
		return core.Member{}, err
	}

	if err := s.reg.SetMembers(ctx, members); err != nil {
		return core.Member{}, fmt.Errorf("persist members: %w", err)
	}

	admitted := members[len(members)-1]
	slog.InfoContext(ctx, "Member enrolled",
		"member_id", admitted.ID, "group_id", g.ID, "name", admitted.Name)
	return admitted, nil
}

// BulkResult summarizes a bulk enrollment run.
type BulkResult struct {
	Accepted []core.Member
	Rejected []core.Rejection
}

// BulkEnroll reads candidate rows from the source and admits them in
// order, respecting group capacity. Rows that cannot be admitted are
// reported, never silently dropped.
func (s *EnrollmentService) BulkEnroll(ctx context.Context, src importer.RowSource, defaultGroup string) (BulkResult, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return BulkResult{}, fmt.Errorf("read rows: %w", err)
	}

	candidates := importer.Candidates(rows)
	accepted, rejected := core.AdmitCandidates(s.reg.Groups(), s.reg.Members(), candidates, defaultGroup)

	if len(accepted) > 0 {
		members := append(s.reg.Members(), accepted...)
		if err := s.reg.SetMembers(ctx, members); err != nil {
			return BulkResult{}, fmt.Errorf("persist members: %w", err)
		}
	}

	slog.InfoContext(ctx, "Bulk enrollment complete",
		"rows", len(rows), "accepted", len(accepted), "rejected", len(rejected))
	return BulkResult{Accepted: accepted, Rejected: rejected}, nil
}
