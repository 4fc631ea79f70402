package engine

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheatsheet-editor/internal/blobstore"
	"cheatsheet-editor/internal/document"
	"cheatsheet-editor/internal/localstore"
	"cheatsheet-editor/internal/syncer"
	"cheatsheet-editor/internal/worker"
)

type stubClient struct {
	mu       sync.Mutex
	pushes   []syncer.Record
	fetchRec *syncer.Record
	fetchErr error
}

func (c *stubClient) FetchContent(ctx context.Context) (*syncer.Record, error) {
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.fetchRec, nil
}

func (c *stubClient) UpdateContent(ctx context.Context, rec syncer.Record) (*syncer.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushes = append(c.pushes, rec)
	return &rec, nil
}

func newTestEngine(t *testing.T, client syncer.Client) *Engine {
	t.Helper()
	local, err := localstore.Open(t.TempDir())
	require.NoError(t, err)

	s := syncer.New(client, 10*time.Millisecond)
	s.RetryInterval = time.Millisecond

	e := New(local, blobstore.NewMemoryStore(), s, worker.NewWorkerPool(1))
	t.Cleanup(e.Close)
	return e
}

func TestFirstUseLoadsDefaultContent(t *testing.T) {
	e := newTestEngine(t, &stubClient{})

	doc := e.Document()
	assert.Contains(t, doc.Text, "Quick Start")
	assert.Equal(t, 2, doc.Columns)
	assert.Equal(t, 14, doc.FontSize)
}

func TestEditsMirrorToLocalStoreSynchronously(t *testing.T) {
	dir := t.TempDir()
	local, err := localstore.Open(dir)
	require.NoError(t, err)
	s := syncer.New(&stubClient{}, time.Hour)
	e := New(local, blobstore.NewMemoryStore(), s, worker.NewWorkerPool(1))
	defer e.Close()

	require.NoError(t, e.SetText("# edited"))

	reopened, err := localstore.Open(dir)
	require.NoError(t, err)
	doc, ok := reopened.LoadDocument()
	require.True(t, ok)
	assert.Equal(t, "# edited", doc.Text)
}

func TestPasteImageScenario(t *testing.T) {
	client := &stubClient{}
	e := newTestEngine(t, client)
	require.NoError(t, e.SetText("# My cheatsheet"))

	snippet, err := e.PasteImage(context.Background(), []byte(pngPixel))
	require.NoError(t, err)

	// Exactly one new reference in the text.
	ids := blobstore.ReferencedIDs(e.Document().Text)
	require.Len(t, ids, 1)
	assert.Contains(t, snippet, blobstore.URI(ids[0]))

	// The preview shows the image inline, not the raw reference.
	result, err := e.Preview(context.Background())
	require.NoError(t, err)
	assert.Contains(t, result.HTML, pngPixel)
	assert.NotContains(t, result.HTML, "indexeddb://")
	assert.Empty(t, result.FailedIDs)
}

func TestImportFailureLeavesDocumentUntouched(t *testing.T) {
	e := newTestEngine(t, &stubClient{})
	require.NoError(t, e.SetText("precious"))

	err := e.ImportWorkspace([]byte(`{"version":"9.9"}`))
	require.Error(t, err)
	assert.Equal(t, "precious", e.Document().Text)
}

func TestWorkspaceRoundTripThroughFile(t *testing.T) {
	e := newTestEngine(t, &stubClient{})
	require.NoError(t, e.SetText("# exported"))
	require.NoError(t, e.SetColumns(3))

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, e.ExportWorkspaceFile(path))

	require.NoError(t, e.SetText("overwritten"))
	require.NoError(t, e.ImportWorkspaceFile(path))

	doc := e.Document()
	assert.Equal(t, "# exported", doc.Text)
	assert.Equal(t, 3, doc.Columns)
}

func TestNewWorkspaceClearsEverything(t *testing.T) {
	dir := t.TempDir()
	local, err := localstore.Open(dir)
	require.NoError(t, err)
	s := syncer.New(&stubClient{}, time.Hour)
	e := New(local, blobstore.NewMemoryStore(), s, worker.NewWorkerPool(1))
	defer e.Close()

	require.NoError(t, e.SetText("work in progress"))
	require.NoError(t, e.NewWorkspace())

	doc := e.Document()
	assert.Equal(t, "", doc.Text)
	assert.Equal(t, 2, doc.Columns)
	assert.Equal(t, 14, doc.FontSize)

	reopened, err := localstore.Open(dir)
	require.NoError(t, err)
	_, ok := reopened.LoadDocument()
	assert.False(t, ok)
}

func TestHydrateOverwritesLocalState(t *testing.T) {
	client := &stubClient{fetchRec: &syncer.Record{Content: "remote", Columns: 1, FontSize: 12}}
	e := newTestEngine(t, client)
	require.NoError(t, e.SetText("local draft"))

	e.Hydrate(context.Background())

	doc := e.Document()
	assert.Equal(t, "remote", doc.Text)
	assert.Equal(t, 1, doc.Columns)
}

func TestHydrateFailureKeepsEngineUsable(t *testing.T) {
	client := &stubClient{fetchErr: assert.AnError}
	e := newTestEngine(t, client)

	e.Hydrate(context.Background())

	assert.Equal(t, document.Default(), e.Document())
	require.NoError(t, e.SetText("still editable"))
	assert.Equal(t, "still editable", e.Document().Text)
}

func TestCleanupImagesSweepsUnreferenced(t *testing.T) {
	e := newTestEngine(t, &stubClient{})
	ctx := context.Background()

	_, err := e.PasteImage(ctx, []byte(pngPixel))
	require.NoError(t, err)

	stale := blobstore.NewID()
	require.NoError(t, e.blobs.Put(ctx, stale, []byte("orphan")))

	deleted, err := e.CleanupImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, ok, err := e.blobs.Get(ctx, stale)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScheduleCleanupRunsInBackground(t *testing.T) {
	e := newTestEngine(t, &stubClient{})
	ctx := context.Background()

	stale := blobstore.NewID()
	require.NoError(t, e.blobs.Put(ctx, stale, []byte("orphan")))

	e.ScheduleCleanup()

	assert.Eventually(t, func() bool {
		_, ok, _ := e.blobs.Get(ctx, stale)
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMarkdownSaveLoad(t *testing.T) {
	e := newTestEngine(t, &stubClient{})
	require.NoError(t, e.SetText("# plain markdown"))

	path := filepath.Join(t.TempDir(), "cheatsheet.md")
	require.NoError(t, e.SaveMarkdown(path))
	require.NoError(t, e.SetText(""))
	require.NoError(t, e.LoadMarkdown(path))

	assert.Equal(t, "# plain markdown", e.Document().Text)
}

const pngPixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="
