package reports

import (
	"io"
	"strconv"
	"strings"
)

// WriteCSV writes rows with every field quoted and CRLF line endings,
// the format the original export tooling produced.
func WriteCSV(w io.Writer, headers []string, rows [][]string) error {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteString("\r\n")
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DueCSV renders a due report as CSV rows.
func DueCSV(w io.Writer, rep DueReport) error {
	headers := []string{"Subscriber", "Contact", "Month", "Outstanding"}
	rows := make([][]string, 0, len(rep.Entries))
	for _, e := range rep.Entries {
		rows = append(rows, []string{
			e.Member.Name,
			e.Member.Phone,
			strconv.Itoa(rep.Month),
			strconv.FormatInt(e.Expected.Rupees, 10),
		})
	}
	return WriteCSV(w, headers, rows)
}

// StatementCSV renders a member statement as CSV rows.
func StatementCSV(w io.Writer, st Statement) error {
	headers := []string{"Month", "Receipt", "Mode", "Settled"}
	rows := make([][]string, 0, len(st.Receipts))
	for _, p := range st.Receipts {
		rows = append(rows, []string{
			strconv.Itoa(p.MonthNumber),
			p.ReceiptNumber,
			string(p.PaymentMode),
			strconv.FormatInt(p.AmountPaid.Rupees, 10),
		})
	}
	return WriteCSV(w, headers, rows)
}

// ConsolidatedCSV renders the master audit as CSV rows.
func ConsolidatedCSV(w io.Writer, rep ConsolidatedReport) error {
	headers := []string{"Portfolio", "Subscribers", "Receipts", "Status"}
	rows := make([][]string, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rows = append(rows, []string{
			row.Group.Name,
			strconv.Itoa(row.Subscribers),
			strconv.FormatInt(row.Collected.Rupees, 10),
			string(row.Group.Status),
		})
	}
	return WriteCSV(w, headers, rows)
}
