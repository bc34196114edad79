package mock

import (
	"sync"

	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/types"
)

// AssignmentStore is an in-memory store that records every save.
type AssignmentStore struct {
	Assignments []*types.CubeAssignment
	ListErr     error
	SaveErr     error

	mu        sync.Mutex
	saved     []*types.CubeAssignment
	listCalls int
	closed    bool
}

func (s *AssignmentStore) ListAssignments(ctx rcontext.RequestContext) ([]*types.CubeAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Assignments, nil
}

func (s *AssignmentStore) SaveAssignment(ctx rcontext.RequestContext, assignment *types.CubeAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, assignment)
	return s.SaveErr
}

func (s *AssignmentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *AssignmentStore) Saved() []*types.CubeAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*types.CubeAssignment(nil), s.saved...)
}

func (s *AssignmentStore) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func (s *AssignmentStore) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
