package importer

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// RawRow maps canonical column keys to the raw cell values of one sheet row.
type RawRow map[string]string

// Sheet is the parsed but not yet normalized import file.
type Sheet struct {
	Headers []string
	Unknown []string // header labels that matched no declared column
	Rows    []RawRow
}

// SkipBOM strips a leading UTF-8 byte order mark, which spreadsheet exports
// routinely prepend.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(3)
	if err == nil && peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// ReadCSV parses a comma-separated export. The first record is treated as the
// header row when it resolves against the declared schema; otherwise rows are
// read by the fixed column order.
func ReadCSV(r io.Reader) (Sheet, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	first, err := reader.Read()
	if err != nil {
		return Sheet{}, fmt.Errorf("read header row: %w", err)
	}

	index, unknown, err := MapHeaders(first)
	if err != nil {
		// No usable header row: fall back to the fixed 25-column layout and
		// treat the first record as data.
		index = fixedIndex()
		unknown = nil
		if len(first) < len(Columns) {
			return Sheet{}, fmt.Errorf("row 1 has %d columns, want %d", len(first), len(Columns))
		}
		sheet := Sheet{Headers: headerLabels()}
		sheet.Rows = append(sheet.Rows, rowFromRecord(first, index))
		return readRecords(reader, sheet, index)
	}

	return readRecords(reader, Sheet{Headers: first, Unknown: unknown}, index)
}

// ReadCSVWindows1258 reads a CSV saved in the Windows Vietnamese code page,
// transcoding to UTF-8 first.
func ReadCSVWindows1258(r io.Reader) (Sheet, error) {
	return ReadCSV(transform.NewReader(r, charmap.Windows1258.NewDecoder()))
}

// ReadJSON parses an already-exported JSON array of row objects keyed by the
// free-text header labels.
func ReadJSON(r io.Reader) (Sheet, error) {
	var objects []map[string]any
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return Sheet{}, fmt.Errorf("decode row array: %w", err)
	}

	sheet := Sheet{Headers: headerLabels()}
	unknownSeen := map[string]bool{}
	for _, obj := range objects {
		row := RawRow{}
		for header, value := range obj {
			key, ok := headerToKey[strings.ToLower(strings.TrimSpace(header))]
			if !ok {
				if !unknownSeen[header] {
					unknownSeen[header] = true
					sheet.Unknown = append(sheet.Unknown, header)
				}
				continue
			}
			row[key] = cellString(value)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func readRecords(reader *csv.Reader, sheet Sheet, index map[int]string) (Sheet, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Sheet{}, fmt.Errorf("read row %d: %w", len(sheet.Rows)+2, err)
		}
		sheet.Rows = append(sheet.Rows, rowFromRecord(record, index))
	}
	return sheet, nil
}

func rowFromRecord(record []string, index map[int]string) RawRow {
	row := RawRow{}
	for i, key := range index {
		if i < len(record) {
			row[key] = record[i]
		}
	}
	return row
}

func fixedIndex() map[int]string {
	index := make(map[int]string, len(Columns))
	for i, c := range Columns {
		index[i] = c.Key
	}
	return index
}

func headerLabels() []string {
	labels := make([]string, len(Columns))
	for i, c := range Columns {
		labels[i] = c.Header
	}
	return labels
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
