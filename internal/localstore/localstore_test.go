package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheatsheet-editor/internal/document"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)

	doc := document.Document{Text: "# hi\n", Columns: 3, FontSize: 18}
	require.NoError(t, store.SaveDocument(doc))

	// Reopen to prove the write hit disk synchronously.
	reopened, err := Open(dir)
	require.NoError(t, err)

	got, ok := reopened.LoadDocument()
	assert.True(t, ok)
	assert.Equal(t, doc, got)
}

func TestLoadWithoutSavedContent(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	_, ok := store.LoadDocument()
	assert.False(t, ok)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyContent, "text"))
	require.NoError(t, store.Set(KeyColumns, "9"))
	require.NoError(t, store.Set(KeyFontSize, "99"))

	doc, ok := store.LoadDocument()
	assert.True(t, ok)
	assert.Equal(t, document.MaxColumns, doc.Columns)
	assert.Equal(t, document.MaxFontSize, doc.FontSize)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveDocument(document.Default()))
	require.NoError(t, store.Clear())

	reopened, err := Open(dir)
	require.NoError(t, err)
	_, ok := reopened.LoadDocument()
	assert.False(t, ok)
}
