package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonrepair"

	"github.com/leofalp/brain/providers/history"
	"github.com/leofalp/brain/providers/observability"
)

// DefaultMaxTurns caps thread length when no explicit cap is configured.
const DefaultMaxTurns = 50

// Store persists each thread as a JSON file (<thread>.json) under a root
// directory. Appends to the same thread are serialized through a per-thread
// mutex; different threads need no coordination. FIFO eviction down to the
// configured cap happens inside Append, so a thread on disk never exceeds it.
type Store struct {
	dir      string
	maxTurns int

	mu    sync.Mutex // guards locks
	locks map[string]*sync.Mutex
}

// Ensure Store implements history.Store at compile time.
var _ history.Store = (*Store)(nil)

// New returns a file-backed [Store] rooted at dir, creating the directory if
// needed. maxTurns bounds thread length; values <= 0 fall back to
// [DefaultMaxTurns].
func New(dir string, maxTurns int) (*Store, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
	}
	return &Store{
		dir:      dir,
		maxTurns: maxTurns,
		locks:    map[string]*sync.Mutex{},
	}, nil
}

// threadLock returns the mutex dedicated to a thread name, creating it on
// first use. Lock granularity is per thread: concurrent appends to different
// threads proceed in parallel.
func (s *Store) threadLock(thread string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[thread]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[thread] = lock
	}
	return lock
}

// path maps a thread name to its backing file. Path separators in the name
// are flattened so a thread can never escape the root directory.
func (s *Store) path(thread string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, thread)
	return filepath.Join(s.dir, safe+".json")
}

// Append implements [history.Store]. The turn is added at the end of the
// thread and the oldest turns are evicted when the cap is exceeded, all under
// the thread's lock so the on-disk file always satisfies the bound.
func (s *Store) Append(ctx context.Context, thread string, turn history.Turn) error {
	observer := observability.ObserverFromContext(ctx)

	lock := s.threadLock(thread)
	lock.Lock()
	defer lock.Unlock()

	turns, err := s.load(thread)
	if err != nil {
		return err
	}

	turns = append(turns, turn)

	evicted := 0
	if len(turns) > s.maxTurns {
		evicted = len(turns) - s.maxTurns
		turns = turns[evicted:]
	}

	if err := s.save(thread, turns); err != nil {
		return err
	}

	if observer != nil {
		observer.Debug(ctx, "History turn appended",
			observability.String(observability.AttrThread, thread),
			observability.Int(observability.AttrHistoryTurns, len(turns)),
			observability.Int(observability.AttrHistoryEvicted, evicted),
		)
	}

	return nil
}

// Read implements [history.Store]. A missing thread file yields an empty
// slice, never an error.
func (s *Store) Read(_ context.Context, thread string) ([]history.Turn, error) {
	lock := s.threadLock(thread)
	lock.Lock()
	defer lock.Unlock()

	return s.load(thread)
}

// LastTurns implements [history.Store]. It returns up to n of the most recent
// turns in append order; an empty, non-nil slice when n <= 0 or the thread is
// empty.
func (s *Store) LastTurns(ctx context.Context, thread string, n int) ([]history.Turn, error) {
	if n <= 0 {
		return []history.Turn{}, nil
	}

	turns, err := s.Read(ctx, thread)
	if err != nil {
		return nil, err
	}
	if n > len(turns) {
		n = len(turns)
	}
	return turns[len(turns)-n:], nil
}

// Threads lists the thread names present on disk, in lexical order.
func (s *Store) Threads() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list history directory %s: %w", s.dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

// load reads and decodes a thread file. The caller must hold the thread lock.
// A corrupted file (e.g. a write truncated by a crash) is passed through
// jsonrepair before the error is surfaced, so a damaged thread does not become
// permanently unreadable.
func (s *Store) load(thread string) ([]history.Turn, error) {
	data, err := os.ReadFile(s.path(thread))
	if err != nil {
		if os.IsNotExist(err) {
			return []history.Turn{}, nil
		}
		return nil, fmt.Errorf("failed to read thread %q: %w", thread, err)
	}

	var turns []history.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("thread %q is corrupted: %w", thread, err)
		}
		if err := json.Unmarshal([]byte(repaired), &turns); err != nil {
			return nil, fmt.Errorf("thread %q is corrupted beyond repair: %w", thread, err)
		}
	}
	if turns == nil {
		turns = []history.Turn{}
	}
	return turns, nil
}

// save encodes and atomically replaces a thread file. The caller must hold the
// thread lock. Write-then-rename keeps readers from ever observing a torn file.
func (s *Store) save(thread string, turns []history.Turn) error {
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode thread %q: %w", thread, err)
	}

	path := s.path(thread)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write thread %q: %w", thread, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace thread %q: %w", thread, err)
	}
	return nil
}
