// Package memory provides volatile, process-local storage implementations.
package memory

import (
	"context"

	"github.com/xenking/member-pricing/internal/domain/member"
)

var _ member.Store = (*MemberStore)(nil)

// MemberStore implements member.Store with a plain map. Contents do not
// survive the process.
//
// MemberStore is not safe for concurrent use. Callers sharing one instance
// across goroutines must serialize Save and FindByID themselves.
type MemberStore struct {
	byID map[member.ID]member.Member
}

// NewMemberStore returns an empty MemberStore.
func NewMemberStore() *MemberStore {
	return &MemberStore{byID: make(map[member.ID]member.Member)}
}

// Save stores m under m.ID, replacing any previous member with that ID.
// It never fails.
func (s *MemberStore) Save(_ context.Context, m member.Member) error {
	s.byID[m.ID] = m
	return nil
}

// FindByID returns the member stored under id, or a *member.NotFoundError.
func (s *MemberStore) FindByID(_ context.Context, id member.ID) (member.Member, error) {
	m, ok := s.byID[id]
	if !ok {
		return member.Member{}, &member.NotFoundError{ID: id}
	}
	return m, nil
}

// Len reports how many members are stored.
func (s *MemberStore) Len() int {
	return len(s.byID)
}
