package viewstate

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/apierror"
	"github.com/venky2135/pg-management-system/internal/message"
	"github.com/venky2135/pg-management-system/internal/model"
)

// StudentList backs the student management screen.
type StudentList struct {
	students StudentService
	dialog   Dialog
	root     zerolog.Logger
	log      zerolog.Logger

	mu           sync.RWMutex
	all          []model.Student
	filtered     []model.Student
	searchTerm   string
	mode         ViewMode
	isLoading    bool
	errorMessage string
}

// StudentListState is a copy of the list's state for rendering.
type StudentListState struct {
	Students         []model.Student
	FilteredStudents []model.Student
	SearchTerm       string
	Mode             ViewMode
	IsLoading        bool
	ErrorMessage     string
}

// NewStudentList creates an empty, idle StudentList.
func NewStudentList(students StudentService, dialog Dialog, log zerolog.Logger) *StudentList {
	return &StudentList{
		students: students,
		dialog:   dialog,
		root:     log,
		log:      log.With().Str("component", "student_list").Logger(),
		all:      []model.Student{},
		filtered: []model.Student{},
		mode:     idleMode(),
	}
}

// Snapshot returns a copy of the current state.
func (l *StudentList) Snapshot() StudentListState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return StudentListState{
		Students:         cloneStudents(l.all),
		FilteredStudents: cloneStudents(l.filtered),
		SearchTerm:       l.searchTerm,
		Mode:             l.mode,
		IsLoading:        l.isLoading,
		ErrorMessage:     l.errorMessage,
	}
}

// LoadStudents replaces the collection with the server's. The displayed list
// is reset to everything; an active search term is kept but not reapplied.
func (l *StudentList) LoadStudents(ctx context.Context) {
	l.mu.Lock()
	l.isLoading = true
	l.errorMessage = ""
	l.mu.Unlock()

	students, err := l.students.List(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.isLoading = false
	if err != nil {
		l.errorMessage = apierror.Normalize(err)
		l.log.Warn().Err(err).Msg("Load students failed")
		return
	}
	l.all = students
	l.filtered = students
	l.log.Debug().Int("count", len(students)).Msg("Students loaded")
}

func cloneStudents(in []model.Student) []model.Student {
	out := make([]model.Student, len(in))
	copy(out, in)
	return out
}

// SetSearchTerm stores the term typed by the user without filtering.
func (l *StudentList) SetSearchTerm(term string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchTerm = term
}

// SearchStudents filters the loaded students by the current search term.
// It never calls the server.
func (l *StudentList) SearchStudents() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filtered = FilterStudents(l.all, l.searchTerm)
}

// ClearSearch drops the search term and shows every loaded student.
func (l *StudentList) ClearSearch() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchTerm = ""
	l.filtered = l.all
}

// FilterStudents returns the students whose name, email or room number
// contains term, ignoring case. A blank term matches everyone.
func FilterStudents(students []model.Student, term string) []model.Student {
	if strings.TrimSpace(term) == "" {
		return students
	}
	needle := strings.ToLower(term)
	out := []model.Student{}
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.Email), needle) ||
			strings.Contains(strings.ToLower(s.RoomNo), needle) {
			out = append(out, s)
		}
	}
	return out
}

// ToggleAddForm opens the add form, or closes it when already open.
// Opening it while editing abandons the edit.
func (l *StudentList) ToggleAddForm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mode.kind == Adding {
		l.mode = idleMode()
		return
	}
	l.mode = addingMode()
}

// EditStudent opens the edit form on a copy of s.
func (l *StudentList) EditStudent(s model.Student) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = editingMode(s)
}

// DeleteStudent removes s after the user confirms, then reloads.
// Outcomes are reported through the dialog rather than ErrorMessage.
func (l *StudentList) DeleteStudent(ctx context.Context, s model.Student) {
	if !l.dialog.Confirm(message.Format(message.StudentDeleteConfirm, s.Name)) {
		return
	}

	if err := l.students.Delete(ctx, s.ID); err != nil {
		l.log.Warn().Err(err).Int64("student_id", s.ID).Msg("Delete student failed")
		l.dialog.Notify(message.Format(message.StudentDeleteFailed, apierror.Normalize(err)))
		return
	}

	l.dialog.Notify(message.Text(message.StudentDeleted))
	l.LoadStudents(ctx)
}

// OnStudentSaved closes any open form and reloads from the server.
func (l *StudentList) OnStudentSaved(ctx context.Context) {
	l.mu.Lock()
	l.mode = idleMode()
	l.mu.Unlock()

	l.LoadStudents(ctx)
}

// OnFormCancelled closes the add form.
func (l *StudentList) OnFormCancelled() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mode.kind == Adding {
		l.mode = idleMode()
	}
}

// OnEditCancelled closes the edit form and forgets the selection.
func (l *StudentList) OnEditCancelled() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mode.kind == Editing {
		l.mode = idleMode()
	}
}

// OnFeeSaved is signalled by a student card after a payment is recorded.
func (l *StudentList) OnFeeSaved(studentID int64) {
	l.log.Debug().Int64("student_id", studentID).Msg("Fee saved")
}

// NewAddForm returns a blank student form wired to this list.
func (l *StudentList) NewAddForm() *StudentForm {
	return NewStudentForm(l.students, l.dialog, l.root, nil, l.OnStudentSaved, l.OnFormCancelled)
}

// NewEditForm returns a form over the selected student, or nil when the
// list is not editing.
func (l *StudentList) NewEditForm() *StudentForm {
	l.mu.RLock()
	selected, ok := l.mode.Selected()
	l.mu.RUnlock()
	if !ok {
		return nil
	}
	return NewStudentForm(l.students, l.dialog, l.root, &selected, l.OnStudentSaved, l.OnEditCancelled)
}
