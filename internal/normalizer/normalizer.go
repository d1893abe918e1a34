package normalizer

import (
	"strings"

	"github.com/VASCOSORO/soopbeta/internal/tabular"
)

// Normalize is the strict path used by the catalog importer: after it, the
// table has exactly the schema's target columns, in schema order. The whole
// pipeline is idempotent; normalizing an already-normalized table changes
// nothing.
func Normalize(t *tabular.Table, s Schema) *tabular.Table {
	out := t.Clone()
	trimHeaders(out)
	applyRenames(out, s.Renames)
	sanitizeIdentifiers(out, s.Identifiers)
	for _, name := range s.Drop {
		out.Drop(name)
	}
	for _, col := range s.Target {
		out.EnsureColumn(col.Name, col.Default)
	}
	return out.Select(s.TargetHeaders())
}

// Apply is the free-form path used by the ad hoc converter: header
// trimming, renames and identifier sanitization as on the strict path, then
// the caller's drop list and added columns. Every other source column is
// preserved verbatim, in its original position.
func Apply(t *tabular.Table, s Schema) *tabular.Table {
	out := t.Clone()
	trimHeaders(out)
	applyRenames(out, s.Renames)
	sanitizeIdentifiers(out, s.Identifiers)
	for _, name := range s.Drop {
		out.Drop(name)
	}
	for _, col := range s.Target {
		out.EnsureColumn(col.Name, col.Default)
	}
	return out
}

// trimHeaders strips surrounding whitespace from every header. Comparison
// elsewhere is exact and case-sensitive; only whitespace is forgiven.
func trimHeaders(t *tabular.Table) {
	for _, h := range t.Headers {
		trimmed := strings.TrimSpace(h)
		if trimmed != h {
			t.Rename(h, trimmed)
		}
	}
}

// sanitizeIdentifiers strips '.' from every cell of the named columns.
// Legacy spreadsheets render integer-like codes with thousand-separator
// dots ("1.234" for code 1234); stripping them makes identifiers compare
// equal regardless of source formatting. The digits themselves are never
// altered, and no other column is touched. Identifier names are target
// column names, so this must run after the renames.
func sanitizeIdentifiers(t *tabular.Table, identifiers []string) {
	for _, name := range identifiers {
		if !t.HasColumn(name) {
			continue
		}
		for _, row := range t.Rows {
			row[name] = strings.ReplaceAll(row[name], ".", "")
		}
	}
}

// applyRenames applies the rename list in declaration order. Table.Rename
// refuses to overwrite an existing column, which is what makes the policy
// first-declaration-wins: once a target exists, later mappings onto it are
// ignored.
func applyRenames(t *tabular.Table, renames []Rename) {
	for _, r := range renames {
		from := strings.TrimSpace(r.From)
		to := strings.TrimSpace(r.To)
		if from == "" || to == "" {
			continue
		}
		t.Rename(from, to)
	}
}
