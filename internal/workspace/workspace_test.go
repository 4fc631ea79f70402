package workspace

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheatsheet-editor/internal/document"
)

func TestImportExportRoundTrip(t *testing.T) {
	doc := document.Document{Text: "# Notes\n\nsome **bold** text", Columns: 3, FontSize: 16}

	data, err := json.Marshal(Export(doc))
	require.NoError(t, err)

	got, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestExportShape(t *testing.T) {
	snap := Export(document.Document{Text: "x", Columns: 2, FontSize: 14})

	assert.Equal(t, "2.0", snap.Version)
	assert.Equal(t, "x", snap.Content)
	assert.WithinDuration(t, time.Now(), snap.Timestamp, time.Minute)
}

func TestImportCurrentVersionEmptyContent(t *testing.T) {
	doc, err := Import([]byte(`{"version":"2.0","columns":1,"fontSize":12,"content":""}`))
	require.NoError(t, err)

	assert.Equal(t, "", doc.Text)
	assert.Equal(t, 1, doc.Columns)
	assert.Equal(t, 12, doc.FontSize)
}

func TestImportLegacyMigration(t *testing.T) {
	doc, err := Import([]byte(`{"version":"1.0","columns":2,"columnContents":["A","B",""]}`))
	require.NoError(t, err)

	assert.Equal(t, "A\n\nB", doc.Text)
	assert.Equal(t, 2, doc.Columns)
	assert.Equal(t, 14, doc.FontSize)
}

func TestImportLegacyDefaults(t *testing.T) {
	doc, err := Import([]byte(`{"version":"1.0","columnContents":["only column"]}`))
	require.NoError(t, err)

	assert.Equal(t, "only column", doc.Text)
	assert.Equal(t, 2, doc.Columns)
	assert.Equal(t, 14, doc.FontSize)
}

func TestImportLegacyPreservesColumnOrder(t *testing.T) {
	doc, err := Import([]byte(`{"version":"1.0","columnContents":["first","","third"]}`))
	require.NoError(t, err)

	assert.Equal(t, "first\n\nthird", doc.Text)
}

func TestImportRejectsUnknownShape(t *testing.T) {
	cases := map[string]string{
		"missing everything":       `{}`,
		"unknown version no body":  `{"version":"9.9"}`,
		"current version no body":  `{"version":"2.0"}`,
		"not json":                 `not json at all`,
		"legacy version no fields": `{"version":"1.0","columns":2}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Import([]byte(payload))
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestImportClampsLayout(t *testing.T) {
	doc, err := Import([]byte(`{"version":"2.0","columns":9,"fontSize":99,"content":"x"}`))
	require.NoError(t, err)

	assert.Equal(t, document.MaxColumns, doc.Columns)
	assert.Equal(t, document.MaxFontSize, doc.FontSize)
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename(time.Now()))
	doc := document.Document{Text: "content", Columns: 1, FontSize: 10}

	require.NoError(t, WriteFile(path, doc))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
