package service

import (
	"sync"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/google/uuid"
)

// ReportSet is the ordered, append-only list of records of one session.
type ReportSet struct {
	mu      sync.Mutex
	records []dto.ReportRecord
}

// Append adds records at the end, in order, and returns the new length.
func (s *ReportSet) Append(records ...dto.ReportRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return len(s.records)
}

// Reset empties the set.
func (s *ReportSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Records returns a copy of the records in insertion order.
func (s *ReportSet) Records() []dto.ReportRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]dto.ReportRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *ReportSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SessionStore holds one ReportSet per session id.
type SessionStore struct {
	mu   sync.RWMutex
	sets map[string]*ReportSet
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sets: make(map[string]*ReportSet)}
}

// Create opens a new empty session and returns its id.
func (s *SessionStore) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sets[id] = &ReportSet{}
	s.mu.Unlock()
	return id
}

// Get returns the set of session id.
func (s *SessionStore) Get(id string) (*ReportSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[id]
	if !ok {
		return nil, dto.ErrSessionNotFound
	}
	return set, nil
}

// Delete forgets a session. Unknown ids are ignored.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sets, id)
	s.mu.Unlock()
}
