// Package importer turns external candidate rows (CSV or spreadsheet) into
// enrollment candidates. Column headers are matched against a fixed synonym
// list; unrecognized columns are ignored.
package importer

import (
	"context"
	"strings"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
)

// Row is one imported record: column name to raw cell value.
type Row map[string]string

// RowSource is the inbound port a batch import reads from.
type RowSource interface {
	Rows(ctx context.Context) ([]Row, error)
}

// Column synonyms, first match wins. Headers are compared trimmed and
// case-insensitively.
var (
	nameAliases  = []string{"name", "subscriber", "subscriber name", "full name", "candidate"}
	phoneAliases = []string{"phone", "mobile", "contact", "phone number", "mobile number"}
	groupAliases = []string{"group", "group name", "chit group", "portfolio"}
	addrAliases  = []string{"address", "residential address"}
	emailAliases = []string{"email", "e-mail", "mail"}
)

// Field resolves a value from a row by alias list.
func Field(row Row, aliases []string) string {
	for _, alias := range aliases {
		for k, v := range row {
			if strings.EqualFold(strings.TrimSpace(k), alias) {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// Candidates maps raw rows onto enrollment candidates. Rows are not
// filtered here; the admission control decides what to reject.
func Candidates(rows []Row) []core.Candidate {
	out := make([]core.Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.Candidate{
			Name:      Field(row, nameAliases),
			Phone:     Field(row, phoneAliases),
			GroupName: Field(row, groupAliases),
			Address:   Field(row, addrAliases),
			Email:     Field(row, emailAliases),
		})
	}
	return out
}
