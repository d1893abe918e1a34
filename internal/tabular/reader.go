package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrImport marks a source that could not be read in full: missing file,
// unknown encoding, empty input, a read failing mid-stream. Individual
// malformed rows never raise it; they are skipped.
var ErrImport = errors.New("import failed")

// ReadOptions controls delimited-text parsing. The zero value reads
// comma-separated UTF-8.
type ReadOptions struct {
	Delimiter rune   // field separator, ',' when zero
	Encoding  string // "", "utf-8", "latin1", "iso-8859-1", "windows-1252", "cp1252"
}

// ReadDelimited reads a delimited text file into a table. The first
// non-empty record becomes the header row. Rows with more fields than the
// header are skipped (the legacy exports this tolerates produce them when a
// field contains an unquoted separator); rows with fewer fields are padded
// with empty cells.
func ReadDelimited(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrImport, path, err)
	}
	defer f.Close()

	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}
	var src io.Reader = f
	if dec != nil {
		src = dec.Reader(f)
	}

	reader := csv.NewReader(src)
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", ErrImport, path, err)
	}

	table := New(header...)
	if err := readRows(reader, table); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrImport, path, err)
	}
	return table, nil
}

// readRows appends every remaining record to the table. Malformed lines are
// skipped; an I/O failure mid-stream is returned so a truncated source is
// never mistaken for a complete one.
func readRows(reader *csv.Reader, table *Table) error {
	header := table.Headers
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return err
		}
		if len(record) > len(header) {
			continue
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		table.Append(row)
	}
}

// WriteDelimited writes the table as delimited text, header row first.
func WriteDelimited(t *Table, path string, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if delimiter != 0 {
		w.Comma = delimiter
	}
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i, h := range t.Headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return nil, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrImport, name)
	}
}
