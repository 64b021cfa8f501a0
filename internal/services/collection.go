// Package services orchestrates ledger operations across the registry
// and the optional AMQP notification queue.
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

// CollectionService records installment payments and queues receipts.
type CollectionService struct {
	reg        *registry.Registry
	amqpClient *amqp.Client
}

func NewCollectionService(reg *registry.Registry, amqpClient *amqp.Client) *CollectionService {
	return &CollectionService{
		reg:        reg,
		amqpClient: amqpClient,
	}
}

// RecordPayment settles one installment for a member and persists the
// updated ledger. The receipt notification is queued asynchronously and
// never fails the collection.
func (s *CollectionService) RecordPayment(ctx context.Context, memberID string, in core.PaymentInput) (core.Payment, error) {
	m, ok := core.FindMember(s.reg.Members(), memberID)
	if !ok {
		return core.Payment{}, core.ErrMemberNotFound
	}
	g, ok := core.FindGroup(s.reg.Groups(), m.GroupID)
	if !ok {
		return core.Payment{}, core.ErrGroupNotFound
	}

	payments, rec, err := core.RecordPayment(s.reg.Payments(), g, m, in)
	if err != nil {
		return core.Payment{}, err
	}

	if err := s.reg.SetPayments(ctx, payments); err != nil {
		return core.Payment{}, fmt.Errorf("persist payments: %w", err)
	}

	slog.InfoContext(ctx, "Payment recorded",
		"member_id", m.ID,
		"month", rec.MonthNumber,
		"amount", rec.AmountPaid.Rupees,
		"receipt", rec.ReceiptNumber)

	if err := s.publishReceipt(ctx, m, g, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to queue receipt notification",
			"receipt", rec.ReceiptNumber, "error", err)
	}

	return rec, nil
}

func (s *CollectionService) publishReceipt(ctx context.Context, m core.Member, g core.Group, p core.Payment) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping receipt notification")
		return nil
	}

	msg := notify.NewMessage(notify.KindReceipt, m.Phone, notify.Receipt(m, g, p))
	return s.amqpClient.PublishNotification(ctx, msg)
}

// PublishReminders queues a payment reminder for every member of the
// group whose installment for the month is still unsettled. Returns the
// number of reminders queued.
func (s *CollectionService) PublishReminders(ctx context.Context, groupID string, month int) (int, error) {
	if s.amqpClient == nil {
		return 0, fmt.Errorf("AMQP client not configured")
	}

	g, ok := core.FindGroup(s.reg.Groups(), groupID)
	if !ok {
		return 0, core.ErrGroupNotFound
	}

	payments := s.reg.Payments()
	queued := 0
	for _, m := range s.reg.Members() {
		if m.GroupID != g.ID || m.Status != core.MemberActive {
			continue
		}
		expected := core.ExpectedInstallment(g, m, month)
		if p, ok := core.FindPayment(payments, m.ID, month); ok && p.AmountPaid.Rupees >= expected.Rupees {
			continue
		}

		msg := notify.NewMessage(notify.KindReminder, m.Phone, notify.Reminder(m, g, month, expected))
		if err := s.amqpClient.PublishNotification(ctx, msg); err != nil {
			return queued, fmt.Errorf("queue reminder for %s: %w", m.ID, err)
		}
		queued++
	}

	slog.InfoContext(ctx, "Reminders queued", "group_id", g.ID, "month", month, "count", queued)
	return queued, nil
}
