// Package viewstate holds the in-memory state and operations behind each
// screen section of the PG client, independent of how it is rendered.
//
// Methods block for one network round trip and take a context. State is
// guarded per view-state and the lock is never held across a call, so when
// calls overlap their results are applied in arrival order: the last
// response applied wins, not the last request sent.
package viewstate

import (
	"context"

	"github.com/venky2135/pg-management-system/internal/model"
)

// Dialog is the blocking user-interaction surface the view-states rely on.
type Dialog interface {
	// Confirm asks a yes/no question and reports whether the user agreed.
	Confirm(prompt string) bool
	// Notify shows a message the user must acknowledge.
	Notify(message string)
}

// DialogFuncs adapts a pair of functions to Dialog. Nil fields decline
// confirmations and drop notifications.
type DialogFuncs struct {
	ConfirmFunc func(prompt string) bool
	NotifyFunc  func(message string)
}

func (d DialogFuncs) Confirm(prompt string) bool {
	if d.ConfirmFunc == nil {
		return false
	}
	return d.ConfirmFunc(prompt)
}

func (d DialogFuncs) Notify(message string) {
	if d.NotifyFunc != nil {
		d.NotifyFunc(message)
	}
}

// StudentService is the slice of the student client the view-states use.
type StudentService interface {
	List(ctx context.Context) ([]model.Student, error)
	Create(ctx context.Context, draft model.Student) (*model.Student, error)
	Update(ctx context.Context, id int64, s model.Student) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

// FeeCreator records new payments.
type FeeCreator interface {
	Create(ctx context.Context, draft model.Fee) (*model.Fee, error)
}

// FeeLedger reads and deletes a student's payments.
type FeeLedger interface {
	ListByStudent(ctx context.Context, studentID int64) ([]model.Fee, error)
	TotalPaidByStudent(ctx context.Context, studentID int64) (*model.TotalPaid, error)
	Delete(ctx context.Context, id int64) error
}

// FeeService is everything a student card needs from the fee client.
type FeeService interface {
	FeeCreator
	FeeLedger
}
