// Package csvfile reads bulk-import candidate rows from a local CSV file.
// The first record is the header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/madhuerpdirect-droid/gts-chits/internal/importer"
)

type Source struct {
	path string
}

var _ importer.RowSource = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Rows(_ context.Context) ([]importer.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are tolerated, missing cells read empty
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	rows := make([]importer.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(importer.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
