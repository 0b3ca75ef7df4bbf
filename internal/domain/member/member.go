package member

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap/zapcore"
)

// ErrNotFound is returned when no member is stored under the requested ID.
var ErrNotFound = errors.New("member not found")

// NotFoundError indicates a lookup for an ID that was never saved.
type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("member %d not found", e.ID)
}

// Is reports ErrNotFound as matching so callers can use errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ID is a caller-assigned member identifier.
type ID int64

// Grade enumerates member tiers that discount policies key on.
type Grade string

const (
	// GradeStandard receives no discount.
	GradeStandard Grade = "standard"
	// GradePriority is eligible for discounts.
	GradePriority Grade = "priority"
)

// Member is a registered customer.
type Member struct {
	ID    ID
	Name  string
	Grade Grade
}

// New returns a Member with the given fields.
func New(id ID, name string, grade Grade) Member {
	return Member{ID: id, Name: name, Grade: grade}
}

// IsPriority reports whether m holds the priority grade.
func (m Member) IsPriority() bool {
	return m.Grade == GradePriority
}

func (m Member) String() string {
	return fmt.Sprintf("Member{id=%d, name=%s, grade=%s}", m.ID, m.Name, m.Grade)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (m Member) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("id", int64(m.ID))
	enc.AddString("name", m.Name)
	enc.AddString("grade", string(m.Grade))
	return nil
}

// Store keeps members keyed by ID. Save overwrites any member already stored
// under the same ID.
type Store interface {
	Save(ctx context.Context, m Member) error
	FindByID(ctx context.Context, id ID) (Member, error)
}
