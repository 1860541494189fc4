package viewstate

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/apierror"
	"github.com/venky2135/pg-management-system/internal/message"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/validator"
)

// studentFieldOrder is the order validation messages are reported in.
var studentFieldOrder = []string{"name", "email", "phone", "roomNo"}

// StudentForm backs the add and edit student forms.
type StudentForm struct {
	students    StudentService
	dialog      Dialog
	log         zerolog.Logger
	onSaved     func(ctx context.Context)
	onCancelled func()

	mu           sync.RWMutex
	draft        model.Student
	isEdit       bool
	isLoading    bool
	errorMessage string
}

// StudentFormState is a copy of the form's state for rendering.
type StudentFormState struct {
	Draft        model.Student
	IsEdit       bool
	IsLoading    bool
	ErrorMessage string
}

// NewStudentForm creates a form. A non-nil existing student puts the form in
// edit mode over a copy of it. Either callback may be nil.
func NewStudentForm(
	students StudentService,
	dialog Dialog,
	log zerolog.Logger,
	existing *model.Student,
	onSaved func(ctx context.Context),
	onCancelled func(),
) *StudentForm {
	f := &StudentForm{
		students:    students,
		dialog:      dialog,
		log:         log.With().Str("component", "student_form").Logger(),
		onSaved:     onSaved,
		onCancelled: onCancelled,
	}
	if existing != nil {
		f.draft = *existing
		f.isEdit = true
	}
	return f
}

// Snapshot returns a copy of the current state.
func (f *StudentForm) Snapshot() StudentFormState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return StudentFormState{
		Draft:        f.draft,
		IsEdit:       f.isEdit,
		IsLoading:    f.isLoading,
		ErrorMessage: f.errorMessage,
	}
}

// Change applies edit to the draft. The draft's id cannot be changed.
func (f *StudentForm) Change(edit func(s *model.Student)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.draft.ID
	edit(&f.draft)
	f.draft.ID = id
}

// Save validates the draft and creates or updates it on the server.
// It reports whether the student was saved.
func (f *StudentForm) Save(ctx context.Context) bool {
	f.mu.Lock()
	draft, isEdit := f.draft, f.isEdit
	if fields := validator.Struct(&draft); fields != nil {
		f.errorMessage = validator.First(fields, studentFieldOrder...)
		f.mu.Unlock()
		return false
	}
	f.isLoading = true
	f.errorMessage = ""
	f.mu.Unlock()

	var err error
	if isEdit {
		_, err = f.students.Update(ctx, draft.ID, draft)
	} else {
		_, err = f.students.Create(ctx, draft)
	}

	f.mu.Lock()
	f.isLoading = false
	if err != nil {
		f.errorMessage = apierror.Normalize(err)
		f.mu.Unlock()
		f.log.Warn().Err(err).Bool("edit", isEdit).Msg("Save student failed")
		return false
	}
	f.reset()
	f.mu.Unlock()

	if isEdit {
		f.dialog.Notify(message.Text(message.StudentUpdated))
	} else {
		f.dialog.Notify(message.Text(message.StudentAdded))
	}
	if f.onSaved != nil {
		f.onSaved(ctx)
	}
	return true
}

// Cancel discards the draft and signals the parent.
func (f *StudentForm) Cancel() {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()

	if f.onCancelled != nil {
		f.onCancelled()
	}
}

// reset must be called with mu held.
func (f *StudentForm) reset() {
	f.draft = model.Student{}
	f.isEdit = false
	f.errorMessage = ""
}
