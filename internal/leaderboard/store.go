package leaderboard

import (
	"encoding/json"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultBadgeKey is the durable key holding the names that minted a badge.
const DefaultBadgeKey = "mcm_badges_v1"

// KV is a durable string key/value store.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}

// MemoryKV is an in-process KV, used when no durable storage is available.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Store is the leaderboard backed by a KV.
//
// Storage errors never reach the caller. A failed write leaves the store
// "dirty": the in-memory table stays authoritative and is rewritten whole on
// the next commit, so a transient failure does not lose the update.
type Store struct {
	mu       sync.Mutex
	kv       KV
	key      string
	badgeKey string
	capacity int
	logger   *log.Logger

	cache      []Entry
	dirty      bool
	badges     map[string]bool
	badgeDirty bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the durable key of the table.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithBadgeKey overrides the durable key of the badge flags.
func WithBadgeKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.badgeKey = key
		}
	}
}

// WithCapacity overrides the maximum number of entries.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithLogger sets the logger used for swallowed storage errors.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a leaderboard over kv.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		key:      DefaultKey,
		badgeKey: DefaultBadgeKey,
		capacity: DefaultCapacity,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capacity returns the maximum number of entries kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Load returns the current table, best first.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.load())
}

// Commit records score for name and persists the whole table. It returns
// the updated table.
func (s *Store) Commit(name string, score int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Apply(s.load(), name, score, s.capacity)
	s.cache = next
	s.persist()
	return clone(next)
}

// Best returns name's best score, or 0 if name has no entry.
func (s *Store) Best(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.load() {
		if e.Name == name {
			return e.BestScore
		}
	}
	return 0
}

// HasBadge reports whether name already minted a badge.
func (s *Store) HasBadge(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadBadges()[name]
}

// MarkBadge records that name minted a badge.
func (s *Store) MarkBadge(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	badges := s.loadBadges()
	badges[name] = true
	s.badges = badges

	names := make([]string, 0, len(badges))
	for n := range badges {
		names = append(names, n)
	}
	sort.Strings(names)
	data, err := json.Marshal(names)
	if err != nil {
		s.badgeDirty = true
		return
	}
	if err := s.kv.Put(s.badgeKey, string(data)); err != nil {
		s.logger.Debug("badge write failed", "key", s.badgeKey, "err", err)
		s.badgeDirty = true
		return
	}
	s.badgeDirty = false
}

// load reads the table, preferring unsaved changes over storage.
func (s *Store) load() []Entry {
	if s.dirty {
		return s.cache
	}
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Debug("leaderboard read failed", "key", s.key, "err", err)
		if s.cache != nil {
			return s.cache
		}
		return []Entry{}
	}
	if !ok {
		s.cache = []Entry{}
		return s.cache
	}
	s.cache = Decode(raw, s.capacity)
	return s.cache
}

func (s *Store) persist() {
	raw, err := Encode(s.cache)
	if err != nil {
		s.dirty = true
		return
	}
	if err := s.kv.Put(s.key, raw); err != nil {
		s.logger.Debug("leaderboard write failed", "key", s.key, "err", err)
		s.dirty = true
		return
	}
	s.dirty = false
}

func (s *Store) loadBadges() map[string]bool {
	if s.badgeDirty {
		return s.badges
	}
	badges := make(map[string]bool)
	raw, ok, err := s.kv.Get(s.badgeKey)
	if err != nil {
		s.logger.Debug("badge read failed", "key", s.badgeKey, "err", err)
		if s.badges != nil {
			return s.badges
		}
		return badges
	}
	if ok {
		var names []string
		if json.Unmarshal([]byte(raw), &names) == nil {
			for _, n := range names {
				badges[n] = true
			}
		}
	}
	s.badges = badges
	return badges
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
