package engine

import (
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/prestige/internal/expect"
)

// Session holds the mutable expectation tree for one test. The tree starts
// Empty, grows by registration, shrinks on every successful dispatch, and
// is checked once at teardown.
//
// A single exclusive lock serializes tree access: at most one dispatch is
// matched at any instant. The matched response runs after the residual
// tree has been committed and the lock released, so a response body may
// re-enter the session to register further expectations or dispatch
// nested calls before the outer Dispatch returns.
type Session struct {
	mu     sync.Mutex
	tree   expect.Node
	logger *slog.Logger
}

// NewSession creates a session with an empty tree. A nil logger discards
// all log output.
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{tree: expect.Empty{}, logger: logger}
}

// Register builds a leaf expectation and merges it into the tree.
// Priority and cardinality are fixed from here on; only dispatch may
// decrement the cardinality.
func (s *Session) Register(p expect.Priority, c expect.Cardinality, step *expect.Step) {
	s.Add(expect.NewSingle(p, c, step))
}

// Add merges an arbitrary registered fragment (a leaf, a sequence, or a
// group) into the tree. Registration never fails.
func (s *Session) Add(fragment expect.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = expect.Combine(s.tree, fragment)
	s.logger.Debug("expectation registered", "tree", expect.Format(s.tree, 0))
}

// Dispatch verifies one observed call. On success the residual tree is
// committed and the winning expectation's response is performed against
// the call; the response's return value is passed through. On any
// dispatch error the tree is unchanged and the session remains usable.
func (s *Session) Dispatch(call expect.Call) (any, error) {
	s.mu.Lock()
	match, err := Dispatch(s.tree, call)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("dispatch failed", "call", call.Description(), "error", err)
		return nil, err
	}
	s.tree = match.Residual
	s.mu.Unlock()

	s.logger.Debug("dispatch matched", "call", call.Description(), "expectation", match.Description)

	// The committed residual is the visible state while the response
	// runs; nested registrations compose with it as usual.
	return match.Response.Perform(call)
}

// Finish checks for mandatory residue at teardown. The tree is left in
// place, so a caller that catches the error may continue the session.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := Finish(s.tree); err != nil {
		s.logger.Debug("teardown failed", "error", err)
		return err
	}
	return nil
}

// Tree returns the current tree. The tree is immutable once built, so the
// snapshot stays valid after further session activity.
func (s *Session) Tree() expect.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}
