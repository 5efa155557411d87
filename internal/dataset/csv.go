package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"biaslens/internal/domain"
)

var (
	textColumns  = []string{"text", "article", "content", "body"}
	labelColumns = []string{"label", "bias", "leaning", "dimension"}
)

// ParseCSV reads every record from r. Quoted fields may contain commas, line
// breaks and doubled quotes; rows may end in \n or \r\n and may have ragged widths.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// locateColumns finds the text and label column indexes in a header row.
func locateColumns(header []string) (text, label int, ok bool) {
	text, label = -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if text < 0 && slices.Contains(textColumns, name) {
			text = i
		}
		if label < 0 && slices.Contains(labelColumns, name) {
			label = i
		}
	}
	return text, label, text >= 0 && label >= 0
}

// rowsFromRecords converts parsed records into labeled rows, skipping rows with
// empty text or an unrecognized label, and stopping after limit accepted rows.
func rowsFromRecords(source string, records [][]string, limit int) ([]domain.DatasetRow, int, error) {
	if len(records) == 0 {
		return nil, 0, &domain.ParseError{Source: source, Reason: "no header row"}
	}
	textIdx, labelIdx, ok := locateColumns(records[0])
	if !ok {
		return nil, 0, &domain.ParseError{Source: source, Reason: fmt.Sprintf("missing text/label columns in header %q", records[0])}
	}

	var rows []domain.DatasetRow
	skipped := 0
	for _, record := range records[1:] {
		if limit > 0 && len(rows) >= limit {
			break
		}
		if textIdx >= len(record) || labelIdx >= len(record) {
			skipped++
			continue
		}
		text := strings.TrimSpace(record[textIdx])
		label, ok := NormalizeLabel(record[labelIdx])
		if text == "" || !ok {
			skipped++
			continue
		}
		rows = append(rows, domain.DatasetRow{Text: text, Label: label})
	}
	return rows, skipped, nil
}
