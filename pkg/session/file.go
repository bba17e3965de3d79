package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/caseflow/caseflow/internal/model"
)

// FileStore keeps sessions in memory, mirrored to a JSON file. Writes
// are atomic (tmp file then rename); a background goroutine flushes
// dirty state and sweeps expired sessions.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	sessions map[string]*Session
	dirty    bool
	stop     chan struct{}
	done     chan struct{}
}

// saveInterval is how often dirty state is flushed to disk.
const saveInterval = 30 * time.Second

// NewFileStore opens (or creates) the store at filePath, loading any
// previously saved sessions.
func NewFileStore(filePath string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	s := &FileStore{
		filePath: filePath,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	go s.background()
	return s, nil
}

// Create implements Store.
func (s *FileStore) Create(ctx context.Context, dataset string, result *model.AnalysisResult, ttl time.Duration) (*Session, error) {
	sess := newSession(dataset, result, ttl, time.Now())

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.dirty = true
	s.mu.Unlock()

	return sess, nil
}

// Get implements Store. Expired sessions read as absent.
func (s *FileStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || sess.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return sess, nil
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]*Session, error) {
	now := time.Now()

	s.mu.RLock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if !sess.Expired(now) {
			out = append(out, sess)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		s.dirty = true
	}
	s.mu.Unlock()
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *FileStore) Sweep() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			removed++
			s.dirty = true
		}
	}
	return removed
}

// Save flushes dirty state to disk.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *FileStore) saveLocked() error {
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	s.dirty = false
	return nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return json.Unmarshal(data, &s.sessions)
}

func (s *FileStore) background() {
	defer close(s.done)

	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
			s.Save()
		case <-s.stop:
			return
		}
	}
}

// Close stops the background flusher and saves pending state.
func (s *FileStore) Close() error {
	select {
	case <-s.stop:
	default:
		close(s.stop)
		<-s.done
	}
	return s.Save()
}
