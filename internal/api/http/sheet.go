package http

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/studymitra/examprep-backend/internal/ingest"
)

// sheetRecords decodes the first worksheet of an uploaded xlsx into header
// keyed records. GetRows yields formatted string cells, so percentage and
// number formats survive as the author typed them.
func sheetRecords(r io.Reader) ([]ingest.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.New("file is not a readable spreadsheet")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("spreadsheet has no data rows")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	var out []ingest.Record
	for _, cells := range rows[1:] {
		rec := ingest.Record{}
		for i, cell := range cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				rec[header[i]] = v
			}
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}
