package engine

import (
	"context"
	"os"
	"sync"

	"cheatsheet-editor/internal/blobstore"
	"cheatsheet-editor/internal/document"
	"cheatsheet-editor/internal/localstore"
	"cheatsheet-editor/internal/preview"
	"cheatsheet-editor/internal/syncer"
	"cheatsheet-editor/internal/worker"
	"cheatsheet-editor/internal/workspace"
	"cheatsheet-editor/pkg/logger"
)

// Engine owns the single editable document and serializes every mutator.
// Each mutation mirrors to local persistence synchronously and notifies the
// sync engine; rendering and remote traffic never block an edit.
type Engine struct {
	mu       sync.Mutex
	doc      document.Document
	local    *localstore.Store
	blobs    blobstore.Store
	renderer *preview.Renderer
	remote   *syncer.Syncer
	pool     *worker.WorkerPool
}

// New restores the document from the local mirror, falling back to the
// built-in quick-start content on first anonymous use.
func New(local *localstore.Store, blobs blobstore.Store, remote *syncer.Syncer, pool *worker.WorkerPool) *Engine {
	doc, ok := local.LoadDocument()
	if !ok {
		doc = document.Default()
	}
	return &Engine{
		doc:      doc,
		local:    local,
		blobs:    blobs,
		renderer: preview.NewRenderer(blobs),
		remote:   remote,
		pool:     pool,
	}
}

// Document returns a copy of the current document.
func (e *Engine) Document() document.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

func (e *Engine) WordCount() int {
	return e.Document().WordCount()
}

func (e *Engine) SyncStatus() syncer.Status {
	return e.remote.Status()
}

// SetText replaces the document text: local save is synchronous with the
// edit, the remote push is debounced.
func (e *Engine) SetText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Text = text
	return e.commitLocked()
}

func (e *Engine) SetColumns(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Columns = n
	e.doc.Clamp()
	return e.commitLocked()
}

func (e *Engine) SetFontSize(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.FontSize = n
	e.doc.Clamp()
	return e.commitLocked()
}

func (e *Engine) commitLocked() error {
	if err := e.local.SaveDocument(e.doc); err != nil {
		return err
	}
	e.remote.NoteChange(e.doc)
	return nil
}

// Preview materializes the current document for display.
func (e *Engine) Preview(ctx context.Context) (preview.Result, error) {
	return e.renderer.Render(ctx, e.Document())
}

// PasteImage stores the pasted payload under a fresh id and appends its
// markdown reference to the text. Returns the inserted snippet.
func (e *Engine) PasteImage(ctx context.Context, payload []byte) (string, error) {
	id := blobstore.NewID()
	if err := e.blobs.Put(ctx, id, payload); err != nil {
		return "", err
	}

	snippet := "![pasted image](" + blobstore.URI(id) + ")"

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc.Text != "" {
		e.doc.Text += "\n"
	}
	e.doc.Text += snippet + "\n"
	if err := e.commitLocked(); err != nil {
		return "", err
	}
	return snippet, nil
}

// Hydrate replaces local state wholesale from the remote record on
// (re)authentication. Remote wins on load.
func (e *Engine) Hydrate(ctx context.Context) {
	doc := e.remote.Hydrate(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	if err := e.local.SaveDocument(doc); err != nil {
		logger.Sugar.Warnf("mirroring hydrated document: %v", err)
	}
}

// Logout flushes unsynced edits and stops remote pushes.
func (e *Engine) Logout(ctx context.Context) {
	e.remote.Flush(ctx)
	e.remote.SetAuthenticated(false)
}

// ExportWorkspace serializes the current document as a snapshot.
func (e *Engine) ExportWorkspace() workspace.Snapshot {
	return workspace.Export(e.Document())
}

// ExportWorkspaceFile writes the snapshot to disk.
func (e *Engine) ExportWorkspaceFile(path string) error {
	return workspace.WriteFile(path, e.Document())
}

// ImportWorkspace loads a snapshot payload. On a format error the in-memory
// document is left unmodified.
func (e *Engine) ImportWorkspace(data []byte) error {
	doc, err := workspace.Import(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = doc
	return e.commitLocked()
}

func (e *Engine) ImportWorkspaceFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.ImportWorkspace(data)
}

// NewWorkspace clears local persistence and resets the document to empty
// defaults. Destructive: confirmation is the caller's job.
func (e *Engine) NewWorkspace() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = document.New()
	if err := e.local.Clear(); err != nil {
		return err
	}
	e.remote.NoteChange(e.doc)
	return nil
}

// RestoreDefaults resets the document to the built-in quick-start content.
func (e *Engine) RestoreDefaults() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc = document.Default()
	return e.commitLocked()
}

// SaveMarkdown writes the raw text to a plain markdown file.
func (e *Engine) SaveMarkdown(path string) error {
	return os.WriteFile(path, []byte(e.Document().Text), 0o600)
}

// LoadMarkdown replaces the text from a plain markdown file.
func (e *Engine) LoadMarkdown(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return e.SetText(string(data))
}

// CleanupImages deletes every stored image the current text no longer
// references and reports how many were removed. Explicit action only; blobs
// are never collected automatically.
func (e *Engine) CleanupImages(ctx context.Context) (int, error) {
	live := blobstore.ReferencedIDs(e.Document().Text)
	return blobstore.Sweep(ctx, e.blobs, live)
}

// ScheduleCleanup runs the reachability sweep in the background so a slow
// store never stalls the editing surface.
func (e *Engine) ScheduleCleanup() {
	e.pool.Submit(func(ctx context.Context) error {
		deleted, err := e.CleanupImages(ctx)
		if err == nil && deleted > 0 {
			logger.Sugar.Infof("image cleanup removed %d unreferenced blobs", deleted)
		}
		return err
	})
}

// Close stops the sync engine and the worker pool.
func (e *Engine) Close() {
	e.remote.Close()
	e.pool.Shutdown()
}
