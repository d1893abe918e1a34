// Package tabular holds the in-memory table model shared by the importer,
// the normalizer and the file-backed stores: an ordered header list plus
// string-valued rows. Values stay strings at this stage; numeric coercion
// belongs to whoever consumes the table.
package tabular

// Row maps column name to cell value. Cells a source row did not provide
// are simply absent; Get treats absent and empty the same.
type Row map[string]string

// Table is an ordered-column table. Headers defines both the column set and
// the column order; Rows may carry keys outside Headers (e.g. right after a
// rename), but serialization only ever walks Headers.
type Table struct {
	Headers []string
	Rows    []Row
}

// New returns an empty table with the given column order.
func New(headers ...string) *Table {
	return &Table{Headers: append([]string(nil), headers...)}
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// HasColumn reports whether name is one of the table's headers.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Rename renames column from to column to, moving cell values along. It is
// a no-op when from is absent or to already exists.
func (t *Table) Rename(from, to string) {
	if from == to || !t.HasColumn(from) || t.HasColumn(to) {
		return
	}
	for i, h := range t.Headers {
		if h == from {
			t.Headers[i] = to
			break
		}
	}
	for _, row := range t.Rows {
		if v, ok := row[from]; ok {
			row[to] = v
			delete(row, from)
		}
	}
}

// Drop removes the column when present; absence is not an error.
func (t *Table) Drop(name string) {
	for i, h := range t.Headers {
		if h == name {
			t.Headers = append(t.Headers[:i], t.Headers[i+1:]...)
			break
		}
	}
	for _, row := range t.Rows {
		delete(row, name)
	}
}

// EnsureColumn appends the column with the given default value for every
// row when it is not already present.
func (t *Table) EnsureColumn(name, def string) {
	if t.HasColumn(name) {
		return
	}
	t.Headers = append(t.Headers, name)
	for _, row := range t.Rows {
		row[name] = def
	}
}

// Select returns a new table holding exactly the requested columns in the
// requested order. Missing columns come out empty.
func (t *Table) Select(headers []string) *Table {
	out := New(headers...)
	for _, row := range t.Rows {
		nr := make(Row, len(headers))
		for _, h := range headers {
			nr[h] = row[h]
		}
		out.Append(nr)
	}
	return out
}

// Clone deep-copies the table so callers can mutate the copy freely.
func (t *Table) Clone() *Table {
	out := New(t.Headers...)
	for _, row := range t.Rows {
		nr := make(Row, len(row))
		for k, v := range row {
			nr[k] = v
		}
		out.Append(nr)
	}
	return out
}
