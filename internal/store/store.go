// Package store provides the conversation session store: persistence keyed
// by conversation id, a documented degraded mode that runs against a
// process-local table when the database is unreachable, and an in-process
// cache that spares a round trip on every turn of an already-active session.
//
// The mode switch is explicit: connectivity is probed once at construction
// and exposed through Degraded(), never decided silently per call.
package store

import (
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eventpulse/feedback-backend/internal/domain"
	"github.com/eventpulse/feedback-backend/internal/repo"
)

// ErrNotFound is returned by Get when no session exists for a conversation id.
var ErrNotFound = errors.New("session not found")

// DefaultCacheTTL is the idle window after which cached sessions are evicted.
const DefaultCacheTTL = time.Hour

// sweepEvery bounds how often the cache is scanned for idle entries:
// opportunistically, after this many lookups.
const sweepEvery = 256

// SessionStore is the persistence contract the conversation engine depends on.
type SessionStore interface {
	// Get returns the session for a conversation id, or ErrNotFound.
	Get(ctx context.Context, conversationID string) (*domain.FeedbackSession, error)
	// Create persists a new session and returns it with generated fields set.
	Create(ctx context.Context, s *domain.FeedbackSession) (*domain.FeedbackSession, error)
	// Save persists the session's current state.
	Save(ctx context.Context, s *domain.FeedbackSession) error
}

type cacheEntry struct {
	session  *domain.FeedbackSession
	lastSeen time.Time
}

// Store implements SessionStore over GORM with an in-memory fallback table.
//
// The cache is shared mutable state across concurrent turns and is guarded by
// its own mutex; callers are expected to serialize turns per conversation id
// (the conversation engine holds a keyed lock), so the cached session pointer
// itself is never mutated concurrently.
type Store struct {
	db       *gorm.DB
	degraded bool
	ttl      time.Duration

	memMu sync.RWMutex
	mem   map[string]*domain.FeedbackSession

	cacheMu sync.Mutex
	cache   map[string]*cacheEntry
	lookups uint64

	now func() time.Time
}

// New builds a Store over db with the given cache idle TTL (DefaultCacheTTL
// when ttl <= 0). Connectivity is probed once: a nil handle or a failing ping
// puts the store into degraded mode, where all operations run against a
// process-local table with identical semantics except durability and
// cross-process visibility.
func New(db *gorm.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	s := &Store{
		db:    db,
		ttl:   ttl,
		mem:   make(map[string]*domain.FeedbackSession),
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
	}
	s.degraded = !probe(db)
	if s.degraded {
		log.Warn().Msg("store: database unreachable, running in-memory (non-durable)")
	}
	return s
}

func probe(db *gorm.DB) bool {
	if db == nil {
		return false
	}
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// Degraded reports whether the store runs against the process-local table
// instead of the database.
func (s *Store) Degraded() bool { return s.degraded }

// Get returns the session for a conversation id, consulting the cache first.
func (s *Store) Get(ctx context.Context, conversationID string) (*domain.FeedbackSession, error) {
	if sess, ok := s.cacheGet(conversationID); ok {
		return sess, nil
	}

	if s.degraded {
		s.memMu.RLock()
		stored, ok := s.mem[conversationID]
		s.memMu.RUnlock()
		if !ok {
			return nil, ErrNotFound
		}
		// Hand out a copy: the caller mutates the session across a turn while
		// analytics readers scan the table.
		sess := cloneSession(stored)
		s.cachePut(conversationID, sess)
		return sess, nil
	}

	sess, err := repo.GetSessionByConversationID(ctx, s.db, conversationID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.cachePut(conversationID, sess)
	return sess, nil
}

// Create persists a new session and seeds the cache with it.
func (s *Store) Create(ctx context.Context, sess *domain.FeedbackSession) (*domain.FeedbackSession, error) {
	if s.degraded {
		now := s.now().UTC()
		sess.CreatedAt = now
		sess.UpdatedAt = now
		s.memMu.Lock()
		s.mem[sess.ConversationID] = cloneSession(sess)
		s.memMu.Unlock()
	} else {
		created, err := repo.CreateSession(ctx, s.db, sess)
		if err != nil {
			return nil, err
		}
		sess = created
	}
	s.cachePut(sess.ConversationID, sess)
	return sess, nil
}

// Save persists the session's current state and refreshes the cache entry.
func (s *Store) Save(ctx context.Context, sess *domain.FeedbackSession) error {
	if s.degraded {
		sess.UpdatedAt = s.now().UTC()
		s.memMu.Lock()
		s.mem[sess.ConversationID] = cloneSession(sess)
		s.memMu.Unlock()
	} else if err := repo.SaveSession(ctx, s.db, sess); err != nil {
		return err
	}
	s.cachePut(sess.ConversationID, sess)
	return nil
}

// ListCompleted returns all completed sessions for an event, oldest first.
// In degraded mode the process-local table is scanned; its entries are
// immutable snapshots, so the scan needs no coordination with in-flight
// turns. Ordering matches the database path so downstream tallies
// (first-seen topic order) are stable.
func (s *Store) ListCompleted(ctx context.Context, eventID string) ([]domain.FeedbackSession, error) {
	if s.degraded {
		s.memMu.RLock()
		out := make([]domain.FeedbackSession, 0)
		for _, sess := range s.mem {
			if sess.EventID == eventID && sess.Completed {
				out = append(out, *sess)
			}
		}
		s.memMu.RUnlock()
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return out, nil
	}
	return repo.ListCompletedSessions(ctx, s.db, eventID)
}

// CompletedStats returns the number of completed sessions for an event and
// the latest UpdatedAt among them (nil when there are none). Cheap aggregate
// used for conditional responses on the analytics endpoint.
func (s *Store) CompletedStats(ctx context.Context, eventID string) (int64, *time.Time, error) {
	if s.degraded {
		var count int64
		var maxTS *time.Time
		s.memMu.RLock()
		for _, sess := range s.mem {
			if sess.EventID != eventID || !sess.Completed {
				continue
			}
			count++
			ts := sess.UpdatedAt
			if maxTS == nil || ts.After(*maxTS) {
				maxTS = &ts
			}
		}
		s.memMu.RUnlock()
		return count, maxTS, nil
	}
	return repo.CompletedSessionStats(ctx, s.db, eventID)
}

// cacheGet returns a cached session and refreshes its idle timer. It also
// performs the opportunistic idle sweep so stale entries are dropped even on
// cache-miss-heavy workloads. Eviction never loses data: Save always persists
// before caching.
func (s *Store) cacheGet(key string) (*domain.FeedbackSession, bool) {
	now := s.now()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.lookups++
	if s.lookups >= sweepEvery {
		for k, e := range s.cache {
			if now.Sub(e.lastSeen) >= s.ttl {
				delete(s.cache, k)
			}
		}
		s.lookups = 0
	}

	e, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if now.Sub(e.lastSeen) >= s.ttl {
		delete(s.cache, key)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

func (s *Store) cachePut(key string, sess *domain.FeedbackSession) {
	s.cacheMu.Lock()
	s.cache[key] = &cacheEntry{session: sess, lastSeen: s.now()}
	s.cacheMu.Unlock()
}

// cloneSession deep-copies a session. The in-memory table holds only such
// snapshots, replaced wholesale on Save, so table scans (ListCompleted,
// CompletedStats) never alias a session a live turn is mutating.
func cloneSession(sess *domain.FeedbackSession) *domain.FeedbackSession {
	c := *sess
	c.Messages = append([]domain.ChatMessage(nil), sess.Messages...)
	c.Answers = maps.Clone(sess.Answers)
	c.Sentiments = maps.Clone(sess.Sentiments)
	if sess.CompletedAt != nil {
		ts := *sess.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}
