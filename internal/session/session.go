// Package session is the single owner of a learner's in-memory state: the
// question catalog, the knowledge graph and the attempt history of the
// active user scope. The presentation layer talks only to Session.
//
// A Session is not safe for concurrent use; one session serves one user at
// a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/quizpath/internal/catalog"
	"github.com/abhisek/quizpath/internal/diag"
	"github.com/abhisek/quizpath/internal/history"
	"github.com/abhisek/quizpath/internal/knowledge"
	"github.com/abhisek/quizpath/internal/store"
)

var (
	// ErrNoCatalog is returned by operations that need a loaded catalog.
	ErrNoCatalog = errors.New("catalog not loaded")
	// ErrGraphUnavailable is returned by review operations when no
	// knowledge graph is loaded.
	ErrGraphUnavailable = errors.New("knowledge graph not loaded")
	// ErrUnknownQuestion is returned for a question id absent from the catalog.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrNoWrongQuestions is returned when the wrong set has no question
	// present in the catalog.
	ErrNoWrongQuestions = errors.New("no wrong questions")
)

// Options configures a Session.
type Options struct {
	Backend store.Backend
	Logger  *slog.Logger
	Now     func() time.Time
	Rand    *rand.Rand
}

// Session ties the catalog, graph and history together.
type Session struct {
	backend store.Backend
	logger  *slog.Logger
	now     func() time.Time
	rng     *rand.Rand

	catalog      *catalog.Catalog
	catalogDiags []diag.Diagnostic
	graph        *knowledge.Graph
	graphDiags   []diag.Diagnostic

	user    string
	history *history.Store
}

// New creates a session in the default user scope with no history loaded.
// Call SwitchUser to load a scope.
func New(opts Options) *Session {
	s := &Session{
		backend: opts.Backend,
		logger:  opts.Logger,
		now:     opts.Now,
		rng:     opts.Rand,
		history: history.New(nil),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return s
}

// LoadCatalog replaces the catalog with the questions in path. A non-nil
// error means the session cannot continue: the file is unreadable or holds
// no valid question.
func (s *Session) LoadCatalog(path string) error {
	c, diags, err := catalog.Load(path)
	s.catalogDiags = diags
	s.logDiagnostics("catalog row skipped", path, diags)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", path, err)
	}
	s.catalog = c
	s.logger.Info("catalog loaded", "path", path, "questions", c.Len(), "skipped", len(diags))
	return nil
}

// SetCatalog installs an already-built catalog.
func (s *Session) SetCatalog(c *catalog.Catalog) {
	s.catalog = c
	s.catalogDiags = nil
}

// CatalogDiagnostics returns the row diagnostics of the last catalog load.
func (s *Session) CatalogDiagnostics() []diag.Diagnostic {
	return s.catalogDiags
}

// LoadKnowledgeGraph replaces the knowledge graph. On error the previous
// graph is dropped and review operations return ErrGraphUnavailable; all
// other operations keep working.
func (s *Session) LoadKnowledgeGraph(path string) error {
	s.graph = nil
	g, diags, err := knowledge.Load(path)
	s.graphDiags = diags
	s.logDiagnostics("knowledge graph line skipped", path, diags)
	if err != nil {
		s.logger.Warn("review path unavailable", "path", path, "error", err)
		return fmt.Errorf("load knowledge graph %s: %w", path, err)
	}
	return s.installGraph(g, path)
}

// SetKnowledgeGraph installs an already-built graph.
func (s *Session) SetKnowledgeGraph(g *knowledge.Graph) error {
	s.graphDiags = nil
	return s.installGraph(g, "")
}

func (s *Session) installGraph(g *knowledge.Graph, path string) error {
	if g.Len() == 0 {
		s.graph = nil
		s.logger.Warn("review path unavailable", "path", path, "error", "graph has no topics")
		return fmt.Errorf("knowledge graph %s: %w", path, ErrGraphUnavailable)
	}
	if err := g.Validate(); err != nil {
		// Review still works for topics whose prerequisites are acyclic.
		s.logger.Warn("knowledge graph is not acyclic", "path", path, "error", err)
	}
	s.graph = g
	s.logger.Info("knowledge graph loaded", "path", path, "topics", g.Len())
	return nil
}

// GraphDiagnostics returns the line diagnostics of the last graph load.
func (s *Session) GraphDiagnostics() []diag.Diagnostic {
	return s.graphDiags
}

// HasKnowledgeGraph reports whether review operations are available.
func (s *Session) HasKnowledgeGraph() bool {
	return s.graph != nil
}

// SwitchUser drops all history and loads the scope of user. The empty id
// is the default scope. On error the session is left empty in the new
// scope, never holding data from two users.
func (s *Session) SwitchUser(ctx context.Context, user string) error {
	s.user = user
	s.history = history.New(nil)

	if s.backend == nil {
		return nil
	}
	log, err := s.backend.Scope(user)
	if err != nil {
		return fmt.Errorf("open scope %q: %w", user, err)
	}
	s.history = history.New(log)
	return s.Reload(ctx)
}

// Reload rebuilds the history of the current scope from durable storage.
func (s *Session) Reload(ctx context.Context) error {
	if err := s.history.Reload(ctx); err != nil {
		return fmt.Errorf("reload user %q: %w", s.user, err)
	}
	s.logger.Info("history loaded", "user", s.user, "attempts", s.history.Len(), "wrong", len(s.history.WrongIDs()))
	return nil
}

// User returns the active user id.
func (s *Session) User() string {
	return s.user
}

// Catalog returns the loaded catalog, or nil.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Question returns a catalog question by id.
func (s *Session) Question(id int) (catalog.Question, bool) {
	if s.catalog == nil {
		return catalog.Question{}, false
	}
	return s.catalog.Get(id)
}

func (s *Session) logDiagnostics(msg, path string, diags []diag.Diagnostic) {
	for _, d := range diags {
		s.logger.Warn(msg, "path", path, "line", d.Line, "reason", d.Reason)
	}
}
