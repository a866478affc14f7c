package core

import (
	"context"
	"errors"
	"fmt"
)

// ErrPersistence marks a failure to read or write signatures. The web layer
// answers it with the generic error page.
var ErrPersistence = errors.New("persistence fault")

// Service provides the signature operations used by the web layer.
type Service struct {
	store Store
	steps map[Stage]stepFunc
}

// NewService creates a Service backed by store.
func NewService(store Store) *Service {
	s := &Service{store: store}
	s.steps = map[Stage]stepFunc{
		StageValidating: s.validate,
		StageSanitizing: s.sanitize,
		StagePersisting: s.persist,
	}
	return s
}

// List returns every signature ordered by id.
func (s *Service) List(ctx context.Context) ([]Signature, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list signatures: %w", ErrPersistence, err)
	}
	return list, nil
}
