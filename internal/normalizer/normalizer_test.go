package normalizer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/VASCOSORO/soopbeta/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogSchema() Schema {
	return DefaultCatalogSchema()
}

func supplierTable() *tabular.Table {
	t := tabular.New(" Codigo ", "Descripcion", "Precio", "Rubro", "Extra")
	t.Append(tabular.Row{" Codigo ": "1.234", "Descripcion": "Lamp", "Precio": "99.90", "Rubro": "Hogar", "Extra": "x"})
	t.Append(tabular.Row{" Codigo ": "88", "Descripcion": "Mug", "Precio": "", "Rubro": "Cocina", "Extra": "y"})
	return t
}

func TestNormalizeStrictColumnSet(t *testing.T) {
	out := Normalize(supplierTable(), catalogSchema())

	require.Equal(t, []string{"Code", "Name", "Price", "Stock", "ForcedMultiple", "ImageRef"}, out.Headers)
	require.Len(t, out.Rows, 2)
	for _, row := range out.Rows {
		require.Len(t, row, len(out.Headers))
		for _, h := range out.Headers {
			_, ok := row[h]
			assert.True(t, ok, "missing column %s", h)
		}
	}
}

func TestNormalizeRenameCarriesValues(t *testing.T) {
	out := Normalize(supplierTable(), catalogSchema())

	assert.Equal(t, "Lamp", out.Rows[0]["Name"])
	assert.Equal(t, "99.90", out.Rows[0]["Price"])
	// Source-only columns are gone.
	assert.False(t, out.HasColumn("Extra"))
	assert.False(t, out.HasColumn("Rubro"))
}

func TestNormalizeIdentifierSanitization(t *testing.T) {
	out := Normalize(supplierTable(), catalogSchema())

	assert.Equal(t, "1234", out.Rows[0]["Code"])
	assert.Equal(t, "88", out.Rows[1]["Code"])
	// Non-identifier columns keep their dots.
	assert.Equal(t, "99.90", out.Rows[0]["Price"])
}

func TestNormalizeSanitizesRenamedIdentifier(t *testing.T) {
	// Identifier columns are named by their target name; the source arrives
	// under the pre-rename header and must still be sanitized.
	src := tabular.New("Codigo", "Descripcion")
	src.Append(tabular.Row{"Codigo": "1.234", "Descripcion": "Lamp"})

	out := Normalize(src, catalogSchema())
	assert.Equal(t, "1234", out.Rows[0]["Code"])
}

func TestApplySanitizesRenamedIdentifier(t *testing.T) {
	schema := Schema{
		Renames:     []Rename{{From: "Ref", To: "Code"}},
		Identifiers: []string{"Code"},
	}
	src := tabular.New("Ref")
	src.Append(tabular.Row{"Ref": "9.876"})

	out := Apply(src, schema)
	assert.Equal(t, "9876", out.Rows[0]["Code"])
}

func TestNormalizeFillsDefaults(t *testing.T) {
	out := Normalize(supplierTable(), catalogSchema())

	for _, row := range out.Rows {
		assert.Equal(t, "", row["Stock"])
		assert.Equal(t, "", row["ForcedMultiple"])
		assert.Equal(t, "", row["ImageRef"])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	schema := catalogSchema()
	once := Normalize(supplierTable(), schema)
	twice := Normalize(once, schema)

	require.Equal(t, once.Headers, twice.Headers)
	require.True(t, reflect.DeepEqual(once.Rows, twice.Rows))
}

func TestRenameCollisionFirstDeclarationWins(t *testing.T) {
	schema := Schema{
		Target: []ColumnSpec{{Name: "Code"}},
		Renames: []Rename{
			{From: "Ref", To: "Code"},
			{From: "Articulo", To: "Code"},
		},
	}
	src := tabular.New("Ref", "Articulo")
	src.Append(tabular.Row{"Ref": "first", "Articulo": "second"})

	out := Normalize(src, schema)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "first", out.Rows[0]["Code"])
}

func TestRenameDoesNotOverwriteExistingColumn(t *testing.T) {
	schema := Schema{
		Target:  []ColumnSpec{{Name: "Code"}, {Name: "Name"}},
		Renames: []Rename{{From: "Ref", To: "Code"}},
	}
	src := tabular.New("Code", "Ref", "Name")
	src.Append(tabular.Row{"Code": "keep", "Ref": "ignore", "Name": "n"})

	out := Normalize(src, schema)
	assert.Equal(t, "keep", out.Rows[0]["Code"])
}

func TestApplyPreservesUntouchedColumns(t *testing.T) {
	schema := Schema{
		Renames: []Rename{{From: "Descripcion", To: "Name"}},
		Drop:    []string{"Rubro"},
		Target:  []ColumnSpec{{Name: "Notes", Default: "-"}},
	}
	out := Apply(supplierTable(), schema)

	require.Equal(t, []string{"Codigo", "Name", "Precio", "Extra", "Notes"}, out.Headers)
	assert.Equal(t, "x", out.Rows[0]["Extra"])
	assert.Equal(t, "-", out.Rows[0]["Notes"])
	// The free-form path does not sanitize unless asked to.
	assert.Equal(t, "1.234", out.Rows[0]["Codigo"])
}

func TestNormalizeCustomDefault(t *testing.T) {
	schema := Schema{
		Target: []ColumnSpec{{Name: "Code"}, {Name: "Stock", Default: "0"}},
	}
	src := tabular.New("Code")
	src.Append(tabular.Row{"Code": "a"})

	out := Normalize(src, schema)
	assert.Equal(t, "0", out.Rows[0]["Stock"])
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
target:
  - name: Code
  - name: Price
    default: "0"
renames:
  - from: Codigo
    to: Code
drop: [Rubro]
identifiers: [Code]
`), 0o644))

	s, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Code", "Price"}, s.TargetHeaders())
	assert.Equal(t, "0", s.Target[1].Default)
	assert.Equal(t, []Rename{{From: "Codigo", To: "Code"}}, s.Renames)
}

func TestLoadSchemaRejectsEmptyTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("renames: []\n"), 0o644))

	_, err := LoadSchema(path)
	assert.ErrorIs(t, err, ErrSchema)
}
