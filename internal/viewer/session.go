package viewer

import (
	"errors"
	"sync"
	"time"

	"chat-sentry/internal/pagination"
	"chat-sentry/internal/storage"
)

var (
	// ErrEmptyResult refuses to open a viewer over zero records.
	ErrEmptyResult = errors.New("viewer: no records to show")
	// ErrNotRequester rejects events from anyone but the session opener.
	ErrNotRequester = errors.New("viewer: caller did not open this session")
	// ErrBadIndex rejects a selection outside the result set.
	ErrBadIndex = errors.New("viewer: selection index out of range")
	// ErrClosed rejects events against a closed session.
	ErrClosed = errors.New("viewer: session is closed")
)

// EventKind is the closed set of actions a requester can drive a viewer
// with. Platform event shapes are mapped to these at the transport
// boundary; the session never sees raw UI payloads.
type EventKind int

const (
	Prev EventKind = iota
	Next
	Select
	Close
)

// Event is one requester action. Index is only meaningful for Select
// and addresses the full result set, not the current page.
type Event struct {
	Kind  EventKind
	Index int
}

// Result is what an accepted event produced: the re-rendered page, and
// for Select also the chosen record.
type Result struct {
	Page   pagination.Page
	Detail *storage.Record
}

// Session is one open, access-controlled browse over a user's message
// history. All state transitions happen under mu, so events against the
// same session are handled strictly one at a time, in arrival order.
type Session struct {
	ID        string
	Requester int64
	Target    string

	mu        sync.Mutex
	records   []storage.Record
	pageSize  int
	pageIndex int
	createdAt time.Time
	expiresAt time.Time
	open      bool
	timer     *time.Timer
	onClose   func(*Session)
}

// Handle applies one event. A rejected event never mutates the session;
// an accepted Prev/Next recomputes the page and both navigation flags in
// the same critical section, so rendered controls are never stale.
func (s *Session) Handle(caller int64, ev Event) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.Requester {
		return Result{}, ErrNotRequester
	}
	if !s.open {
		return Result{}, ErrClosed
	}

	switch ev.Kind {
	case Prev:
		if s.pageIndex > 0 {
			s.pageIndex--
		}
	case Next:
		if last := s.pageCountLocked() - 1; s.pageIndex < last {
			s.pageIndex++
		}
	case Select:
		if ev.Index < 0 || ev.Index >= len(s.records) {
			return Result{}, ErrBadIndex
		}
		page, err := s.renderLocked()
		if err != nil {
			return Result{}, err
		}
		rec := s.records[ev.Index]
		return Result{Page: page, Detail: &rec}, nil
	case Close:
		s.closeLocked()
		return Result{}, nil
	}

	page, err := s.renderLocked()
	if err != nil {
		return Result{}, err
	}
	return Result{Page: page}, nil
}

// Render recomputes the current page without mutating anything.
func (s *Session) Render() (pagination.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

// IsOpen reports whether the session still accepts events.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// ExpiresAt reports the deadline fixed when the session was opened.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// expire is the timer callback. It is a no-op on an already closed
// session, so an explicit Close racing the timer closes exactly once.
func (s *Session) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	s.closeLocked()
}

// closeLocked flips open before anything else can observe the session,
// cancels the pending expiry timer and detaches from the manager.
func (s *Session) closeLocked() {
	s.open = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.onClose != nil {
		s.onClose(s)
		s.onClose = nil
	}
}

func (s *Session) pageCountLocked() int {
	return (len(s.records) + s.pageSize - 1) / s.pageSize
}

func (s *Session) renderLocked() (pagination.Page, error) {
	return pagination.Paginate(s.records, s.pageSize, s.pageIndex)
}
