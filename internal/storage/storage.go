package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-lambda-go/events"

	"github.com/travelease/inquiry-pipeline/internal/domain"
	"github.com/travelease/inquiry-pipeline/internal/pkg/logger"
	"github.com/travelease/inquiry-pipeline/internal/stream"
)

// ErrDuplicateID is returned when a submission id has already been written.
var ErrDuplicateID = errors.New("submission id already exists")

// Subscriber receives change-feed batches from a MemoryStore.
type Subscriber func(ctx context.Context, event events.DynamoDBEvent)

// MemoryStore keeps submissions in process and emulates the table's change
// feed: every successful Put is published as an INSERT batch to all
// subscribers. Each subscriber runs on its own goroutine, so Put returns
// before notifications finish and subscribers are not ordered.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string]domain.Submission
	subscribers []Subscriber
	wg          sync.WaitGroup
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]domain.Submission)}
}

// Subscribe registers a change-feed consumer.
func (s *MemoryStore) Subscribe(sub Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, sub)
	s.mu.Unlock()
}

// Put stores the submission and fans the INSERT event out to subscribers.
func (s *MemoryStore) Put(ctx context.Context, sub domain.Submission) error {
	event, err := stream.InsertEvent(sub)
	if err != nil {
		return fmt.Errorf("building change event: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.items[sub.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("putting submission %s: %w", sub.ID, ErrDuplicateID)
	}
	s.items[sub.ID] = sub
	subscribers := append([]Subscriber(nil), s.subscribers...)
	s.mu.Unlock()

	// The request context ends with the HTTP response; deliveries outlive it.
	deliveryCtx := context.WithoutCancel(ctx)
	for _, fn := range subscribers {
		s.wg.Add(1)
		go func(fn Subscriber) {
			defer s.wg.Done()
			fn(deliveryCtx, event)
		}(fn)
	}

	logger.Debug("memory store put", "submission_id", sub.ID, "subscribers", len(subscribers))
	return nil
}

// Get returns a stored submission.
func (s *MemoryStore) Get(id string) (domain.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.items[id]
	return sub, ok
}

// Len returns the number of stored submissions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close waits for in-flight change-feed deliveries.
func (s *MemoryStore) Close() {
	s.wg.Wait()
}
