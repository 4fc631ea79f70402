package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"cheatsheet-editor/internal/document"
	"cheatsheet-editor/pkg/logger"
)

// State is the sync engine's lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePendingPush
	StatePushing
	StateHydrating
)

func (s State) String() string {
	switch s {
	case StatePendingPush:
		return "pending_push"
	case StatePushing:
		return "pushing"
	case StateHydrating:
		return "hydrating"
	default:
		return "idle"
	}
}

// Status is the non-blocking sync indicator surfaced to the UI.
type Status string

const (
	StatusOffline Status = "offline"
	StatusPending Status = "pending"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusError   Status = "error"
)

// Syncer debounces local edits into full-document pushes and hydrates local
// state from the remote store when authentication becomes true. Conflicts
// resolve last-writer-wins: remote wins on load, local wins on write.
type Syncer struct {
	client   Client
	debounce time.Duration

	// MaxAttempts bounds push retries; RetryInterval seeds the exponential
	// backoff between attempts. Adjust before first use.
	MaxAttempts   int
	RetryInterval time.Duration

	mu            sync.Mutex
	state         State
	status        Status
	authenticated bool
	timer         *time.Timer
	latest        document.Document
	dirty         bool
	issuedSeq     uint64
	lastPushed    document.Document
	lastPushedOK  bool
	lastSyncedAt  time.Time

	wg sync.WaitGroup
}

func New(client Client, debounce time.Duration) *Syncer {
	return &Syncer{
		client:        client,
		debounce:      debounce,
		MaxAttempts:   5,
		RetryInterval: 500 * time.Millisecond,
		state:         StateIdle,
		status:        StatusOffline,
	}
}

func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastPushed returns the document carried by the most recent push whose
// response was applied, and whether any push has completed yet.
func (s *Syncer) LastPushed() (document.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPushed, s.lastPushedOK
}

// SetAuthenticated flips the authenticated flag. Turning it off cancels any
// armed debounce; edits made while unauthenticated never reach the remote.
func (s *Syncer) SetAuthenticated(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = ok
	if !ok {
		s.cancelTimerLocked()
		s.state = StateIdle
		s.status = StatusOffline
	}
}

// Hydrate fetches the remote record and returns the document local state
// must be replaced with (remote wins on load). On fetch failure it falls
// back to the built-in default so the UI is never blocked.
func (s *Syncer) Hydrate(ctx context.Context) document.Document {
	s.mu.Lock()
	s.state = StateHydrating
	s.status = StatusSyncing
	s.authenticated = true
	s.mu.Unlock()

	var doc document.Document
	status := StatusSynced

	rec, err := s.client.FetchContent(ctx)
	if err != nil {
		logger.Sugar.Warnf("hydrate failed, falling back to default content: %v", err)
		doc = document.Default()
		status = StatusOffline
	} else {
		doc = document.Document{
			Text:     rec.Content,
			Columns:  rec.Columns,
			FontSize: rec.FontSize,
		}
		doc.Clamp()
	}

	s.mu.Lock()
	s.latest = doc
	s.dirty = false
	s.state = StateIdle
	s.status = status
	s.mu.Unlock()

	return doc
}

// NoteChange records a local mutation. While authenticated it cancels and
// rearms the debounce timer; one push fires once edits go quiet for the
// full debounce interval.
func (s *Syncer) NoteChange(doc document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = doc
	s.dirty = true

	if !s.authenticated {
		return
	}

	s.cancelTimerLocked()
	s.timer = time.AfterFunc(s.debounce, s.firePush)
	s.state = StatePendingPush
	s.status = StatusPending
}

// Flush pushes immediately when there are unsynced edits. Used on logout
// and shutdown.
func (s *Syncer) Flush(ctx context.Context) {
	s.mu.Lock()
	s.cancelTimerLocked()
	if !s.dirty || !s.authenticated {
		s.mu.Unlock()
		return
	}
	seq, doc := s.beginPushLocked()
	s.mu.Unlock()

	s.push(ctx, seq, doc)
}

// Close cancels any pending push and waits for in-flight ones.
func (s *Syncer) Close() {
	s.mu.Lock()
	s.cancelTimerLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Syncer) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Syncer) beginPushLocked() (uint64, document.Document) {
	s.issuedSeq++
	s.dirty = false
	s.state = StatePushing
	s.status = StatusSyncing
	return s.issuedSeq, s.latest
}

func (s *Syncer) firePush() {
	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.Lock()
	s.timer = nil
	if !s.dirty || !s.authenticated {
		s.state = StateIdle
		s.mu.Unlock()
		return
	}
	seq, doc := s.beginPushLocked()
	s.mu.Unlock()

	s.push(context.Background(), seq, doc)
}

// push sends the full current document, retrying with exponential backoff up
// to MaxAttempts. Out-of-order completions are harmless because every push
// carries the whole document, but a stale response is still discarded when a
// newer push has been issued since.
func (s *Syncer) push(ctx context.Context, seq uint64, doc document.Document) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.RetryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(s.MaxAttempts-1)), ctx)

	err := backoff.Retry(func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		_, err := s.client.UpdateContent(attemptCtx, Record{
			Content:  doc.Text,
			Columns:  doc.Columns,
			FontSize: doc.FontSize,
		})
		return err
	}, policy)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.issuedSeq {
		// A newer push superseded this one while it was in flight.
		return
	}

	if err != nil {
		logger.Sugar.Warnf("push failed after %d attempts: %v", s.MaxAttempts, err)
		s.status = StatusError
	} else {
		s.lastPushed = doc
		s.lastPushedOK = true
		s.lastSyncedAt = time.Now()
		s.status = StatusSynced
	}

	// Only settle to idle when no new debounce was armed mid-push.
	if s.state == StatePushing {
		s.state = StateIdle
	}
}
