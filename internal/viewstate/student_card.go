package viewstate

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/model"
)

// StudentCard pairs a student with their fee form and fee history. A
// recorded payment reloads the history and is forwarded to the parent.
type StudentCard struct {
	Student model.Student
	Form    *FeeForm
	History *FeeHistory
}

// NewStudentCard wires the card's children together. onFeeSaved may be nil.
func NewStudentCard(
	student model.Student,
	fees FeeService,
	dialog Dialog,
	log zerolog.Logger,
	onFeeSaved func(studentID int64),
	opts ...FeeFormOption,
) *StudentCard {
	history := NewFeeHistory(student.ID, fees, dialog, log)
	form := NewFeeForm(student.ID, fees, dialog, log, func(ctx context.Context) {
		history.Reload(ctx)
		if onFeeSaved != nil {
			onFeeSaved(student.ID)
		}
	}, opts...)

	return &StudentCard{
		Student: student,
		Form:    form,
		History: history,
	}
}

// Init loads the card's fee history.
func (c *StudentCard) Init(ctx context.Context) {
	c.History.Init(ctx)
}

// CardSet keeps one card per displayed student.
type CardSet struct {
	fees       FeeService
	dialog     Dialog
	log        zerolog.Logger
	onFeeSaved func(studentID int64)
	opts       []FeeFormOption

	mu    sync.Mutex
	cards map[int64]*StudentCard
}

func NewCardSet(fees FeeService, dialog Dialog, log zerolog.Logger, onFeeSaved func(studentID int64), opts ...FeeFormOption) *CardSet {
	return &CardSet{
		fees:       fees,
		dialog:     dialog,
		log:        log,
		onFeeSaved: onFeeSaved,
		opts:       opts,
		cards:      map[int64]*StudentCard{},
	}
}

// Get returns the card for student, creating and loading it on first use.
// An existing card gets the latest student details.
func (s *CardSet) Get(ctx context.Context, student model.Student) *StudentCard {
	s.mu.Lock()
	card, ok := s.cards[student.ID]
	if ok {
		card.Student = student
		s.mu.Unlock()
		return card
	}
	card = NewStudentCard(student, s.fees, s.dialog, s.log, s.onFeeSaved, s.opts...)
	s.cards[student.ID] = card
	s.mu.Unlock()

	card.Init(ctx)
	return card
}

// Lookup returns the card held for a student id, if any.
func (s *CardSet) Lookup(studentID int64) (*StudentCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[studentID]
	return card, ok
}

// Sync drops the cards of students no longer present.
func (s *CardSet) Sync(students []model.Student) {
	keep := make(map[int64]struct{}, len(students))
	for _, st := range students {
		keep[st.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.cards {
		if _, ok := keep[id]; !ok {
			delete(s.cards, id)
		}
	}
}

// Len reports how many cards are held.
func (s *CardSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}
