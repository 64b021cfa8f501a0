// Package notify generates the operator-outbound message content: payment
// reminders, receipts, installment forecasts and prize notifications. The
// delivery transport lives outside the core; this package only renders text
// and deep links.
package notify

import (
	"fmt"
	"strings"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
)

const signature = "*GTS CHITS*"

// indianDate renders dates the way subscribers read them, e.g. 09 Mar 2025.
func indianDate(d core.Date) string {
	return d.Format("02 Jan 2006")
}

// Reminder is the monthly due notice for one member and installment month.
func Reminder(m core.Member, g core.Group, month int, amount core.Money) string {
	due := core.InstallmentDueDate(g.StartDate, month)
	var b strings.Builder
	b.WriteString("*GTS CHITS - PAYMENT REMINDER*\n\n")
	fmt.Fprintf(&b, "Dear *%s*,\n\n", m.Name)
	fmt.Fprintf(&b, "Monthly chit payment for Month %d is due.\n\n", month)
	fmt.Fprintf(&b, "*Group:* %s\n", g.Name)
	fmt.Fprintf(&b, "*Amount:* %s\n", amount)
	fmt.Fprintf(&b, "*Due Date:* %s\n\n", indianDate(due))
	b.WriteString("Kindly ignore if already paid.\n\n")
	b.WriteString("Thank you,\n")
	b.WriteString(signature)
	return b.String()
}

// Receipt acknowledges a recorded settlement.
func Receipt(m core.Member, g core.Group, p core.Payment) string {
	var b strings.Builder
	b.WriteString("*GTS CHITS - PAYMENT RECEIPT*\n\n")
	fmt.Fprintf(&b, "Dear *%s*,\n\n", m.Name)
	fmt.Fprintf(&b, "We have received your payment for *Month %d*.\n\n", p.MonthNumber)
	fmt.Fprintf(&b, "*Group:* %s\n", g.Name)
	fmt.Fprintf(&b, "*Amount:* %s\n", p.AmountPaid)
	fmt.Fprintf(&b, "*Date:* %s\n", p.PaymentDate)
	fmt.Fprintf(&b, "*Receipt #:* %s\n\n", p.ReceiptNumber)
	b.WriteString("Thank you for your prompt payment!\n\n")
	b.WriteString(signature)
	return b.String()
}

// Forecast lists the member's next three installments, capped at the group's
// duration.
func Forecast(m core.Member, g core.Group, currentMonth int) string {
	var b strings.Builder
	b.WriteString("*GTS CHITS - 3 MONTH FORECAST*\n\n")
	fmt.Fprintf(&b, "Subscriber: *%s*\n", m.Name)
	fmt.Fprintf(&b, "Group: %s\n\n", g.Name)
	b.WriteString("*Upcoming Installments:*")
	for _, ma := range core.Forecast(g, m, currentMonth, 3) {
		fmt.Fprintf(&b, "\nMonth %d: %s", ma.Month, ma.Amount)
	}
	b.WriteString("\n\n_Note: Forecast is based on current prize allotment status._\n\n")
	b.WriteString(signature)
	return b.String()
}

// Prize congratulates a winner after allotment.
func Prize(m core.Member, g core.Group, month int) string {
	var b strings.Builder
	b.WriteString("*GTS CHITS - PRIZE ALLOTMENT*\n\n")
	fmt.Fprintf(&b, "Congratulations *%s*!\n\n", m.Name)
	fmt.Fprintf(&b, "You have been allotted the prize for *Month %d*.\n\n", month)
	fmt.Fprintf(&b, "*Group:* %s\n", g.Name)
	fmt.Fprintf(&b, "*Chit Value:* %s\n", g.TotalValue)
	fmt.Fprintf(&b, "*From Month %d:* %s per month\n\n", month+1, g.PrizedInstallment)
	b.WriteString("Our team will contact you regarding disbursement.\n\n")
	b.WriteString(signature)
	return b.String()
}

// QuickPay accompanies an on-the-spot UPI collection request.
func QuickPay(m core.Member, month int, amount core.Money, vpa string) string {
	var b strings.Builder
	b.WriteString("*GTS CHITS - QUICK PAY*\n\n")
	fmt.Fprintf(&b, "Hello *%s*,\n\n", m.Name)
	fmt.Fprintf(&b, "Please pay *%s* for *Month %d* using the UPI details below:\n\n", amount, month)
	fmt.Fprintf(&b, "*VPA:* %s\n", vpa)
	fmt.Fprintf(&b, "*Amount:* %s\n\n", amount)
	b.WriteString("Thank you,\n")
	b.WriteString(signature)
	return b.String()
}
