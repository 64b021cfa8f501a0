package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/madhuerpdirect-droid/gts-chits/internal/amqp"
	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
	"github.com/madhuerpdirect-droid/gts-chits/internal/notify"
	"github.com/madhuerpdirect-droid/gts-chits/internal/registry"
)

// AllotmentService marks members as prized and queues the congratulation.
type AllotmentService struct {
	reg        *registry.Registry
	amqpClient *amqp.Client
}

func NewAllotmentService(reg *registry.Registry, amqpClient *amqp.Client) *AllotmentService {
	return &AllotmentService{
		reg:        reg,
		amqpClient: amqpClient,
	}
}

// AllotPrize records that the member won the auction for the given month.
// A member can win at most once per group membership.
func (s *AllotmentService) AllotPrize(ctx context.Context, memberID string, month int) error {
	members, err := core.AllotPrize(s.reg.Members(), memberID, month)
	if err != nil {
		return err
	}

	if err := s.reg.SetMembers(ctx, members); err != nil {
		return fmt.Errorf("persist members: %w", err)
	}

	m, _ := core.FindMember(members, memberID)
	slog.InfoContext(ctx, "Prize allotted", "member_id", memberID, "month", month)

	if s.amqpClient != nil {
		if g, ok := core.FindGroup(s.reg.Groups(), m.GroupID); ok {
			msg := notify.NewMessage(notify.KindPrize, m.Phone, notify.Prize(m, g, month))
			if err := s.amqpClient.PublishNotification(ctx, msg); err != nil {
				slog.ErrorContext(ctx, "Failed to queue prize notification",
					"member_id", memberID, "error", err)
			}
		}
	}

	return nil
}
