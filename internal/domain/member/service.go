package member

import "context"

// Service is the public surface for registering and looking up members.
type Service interface {
	Join(ctx context.Context, m Member) error
	FindMember(ctx context.Context, id ID) (Member, error)
}

var _ Service = (*DefaultService)(nil)

// DefaultService implements Service on top of a single Store.
type DefaultService struct {
	store Store
}

// NewService creates a DefaultService backed by store.
func NewService(store Store) *DefaultService {
	return &DefaultService{store: store}
}

// Join saves m in the store.
func (s *DefaultService) Join(ctx context.Context, m Member) error {
	return s.store.Save(ctx, m)
}

// FindMember returns the member stored under id. Store errors, including
// ErrNotFound, are returned as is.
func (s *DefaultService) FindMember(ctx context.Context, id ID) (Member, error) {
	return s.store.FindByID(ctx, id)
}

// Store returns the store the service was built with.
func (s *DefaultService) Store() Store {
	return s.store
}
