package viewstate

import "github.com/venky2135/pg-management-system/internal/model"

// ModeKind names which student form, if any, is open.
type ModeKind int

const (
	Idle ModeKind = iota
	Adding
	Editing
)

func (k ModeKind) String() string {
	switch k {
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// ViewMode is Idle, Adding, or Editing a selected student.
// The add and edit forms can never be open at the same time.
type ViewMode struct {
	kind     ModeKind
	selected model.Student
}

func idleMode() ViewMode   { return ViewMode{kind: Idle} }
func addingMode() ViewMode { return ViewMode{kind: Adding} }

func editingMode(s model.Student) ViewMode {
	return ViewMode{kind: Editing, selected: s}
}

func (m ViewMode) Kind() ModeKind { return m.kind }

// Selected returns the student under edit, if any.
func (m ViewMode) Selected() (model.Student, bool) {
	if m.kind != Editing {
		return model.Student{}, false
	}
	return m.selected, true
}

func (m ViewMode) ShowAddForm() bool  { return m.kind == Adding }
func (m ViewMode) ShowEditForm() bool { return m.kind == Editing }
