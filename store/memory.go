package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"spotfix-admin/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process IssueStore for local development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	issues map[primitive.ObjectID]models.Issue
	now    func() time.Time
}

func NewMemoryStore(issues ...models.Issue) *MemoryStore {
	s := &MemoryStore{
		issues: make(map[primitive.ObjectID]models.Issue, len(issues)),
		now:    time.Now,
	}
	for _, issue := range issues {
		s.Insert(issue)
	}
	return s
}

// LoadMemoryStore seeds a MemoryStore from a JSON array of issues.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var issues []models.Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return NewMemoryStore(issues...), nil
}

// Insert adds or replaces an issue, assigning an id when it has none.
func (s *MemoryStore) Insert(issue models.Issue) primitive.ObjectID {
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	s.issues[issue.ID] = issue
	s.mu.Unlock()
	return issue.ID
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RetrievalError{Err: err}
	}

	s.mu.RLock()
	issues := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		issues = append(issues, issue)
	}
	s.mu.RUnlock()

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
	return issues, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Issue, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RetrievalError{ID: id, Err: err}
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &RetrievalError{ID: id, Err: ErrNotFound}
	}

	s.mu.RLock()
	issue, ok := s.issues[objectID]
	s.mu.RUnlock()
	if !ok {
		return nil, &RetrievalError{ID: id, Err: ErrNotFound}
	}
	return &issue, nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if err := ctx.Err(); err != nil {
		return &UpdateError{ID: id, Status: status, Err: err}
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &UpdateError{ID: id, Status: status, Err: ErrNotFound}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[objectID]
	if !ok {
		return &UpdateError{ID: id, Status: status, Err: ErrNotFound}
	}
	issue.Status = string(status)
	issue.UpdatedAt = s.now()
	s.issues[objectID] = issue
	return nil
}
