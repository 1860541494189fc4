package viewstate

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venky2135/pg-management-system/internal/model"
)

var (
	asha  = model.Student{Name: "Asha Rao", Email: "asha@pg.in", Phone: "9876543210", RoomNo: "A101"}
	bilal = model.Student{Name: "Bilal Khan", Email: "bilal@pg.in", Phone: "9876543211", RoomNo: "B202"}
	chen  = model.Student{Name: "Chen Li", Email: "chen@mail.com", Phone: "9876543212", RoomNo: "a103"}
)

func TestFilterStudents(t *testing.T) {
	all := []model.Student{asha, bilal, chen}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term", "", []string{"Asha Rao", "Bilal Khan", "Chen Li"}},
		{"whitespace term", "   ", []string{"Asha Rao", "Bilal Khan", "Chen Li"}},
		{"name any case", "BILAL", []string{"Bilal Khan"}},
		{"email", "mail.com", []string{"Chen Li"}},
		{"room any case", "A10", []string{"Asha Rao", "Chen Li"}},
		{"no match", "zzz", []string{}},
		{"inner space kept", "rao ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterStudents(all, tt.term)
			names := []string{}
			for _, s := range got {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestStudentListLoadAndSearch(t *testing.T) {
	f := newFixture(t, true)
	f.srv.SeedStudent(asha)
	f.srv.SeedStudent(bilal)
	ctx := context.Background()

	list := NewStudentList(f.students, f.dialog, zerolog.Nop())
	st := list.Snapshot()
	assert.NotNil(t, st.Students)
	assert.Empty(t, st.Students)
	assert.Equal(t, Idle, st.Mode.Kind())

	list.LoadStudents(ctx)
	st = list.Snapshot()
	require.Len(t, st.Students, 2)
	assert.Equal(t, st.Students, st.FilteredStudents)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.ErrorMessage)

	list.SetSearchTerm("khan")
	assert.Len(t, list.Snapshot().FilteredStudents, 2, "setting the term alone must not filter")

	list.SearchStudents()
	st = list.Snapshot()
	require.Len(t, st.FilteredStudents, 1)
	assert.Equal(t, "Bilal Khan", st.FilteredStudents[0].Name)

	// A reload shows everything again but keeps the typed term.
	list.LoadStudents(ctx)
	st = list.Snapshot()
	assert.Len(t, st.FilteredStudents, 2)
	assert.Equal(t, "khan", st.SearchTerm)

	list.SearchStudents()
	list.ClearSearch()
	first := list.Snapshot()
	list.ClearSearch()
	assert.Equal(t, first, list.Snapshot())
	assert.Empty(t, first.SearchTerm)
	assert.Equal(t, first.Students, first.FilteredStudents)

	assert.Equal(t, 2, f.srv.Count(http.MethodGet, "/api/students"))
}

func TestStudentListLoadFailure(t *testing.T) {
	f := newFixture(t, true)
	f.srv.SeedStudent(asha)
	ctx := context.Background()

	list := NewStudentList(f.students, f.dialog, zerolog.Nop())
	list.LoadStudents(ctx)
	require.Len(t, list.Snapshot().Students, 1)

	f.srv.FailNext(http.MethodGet, "/api/students", http.StatusInternalServerError, map[string]string{"message": "db down"})
	list.LoadStudents(ctx)
	st := list.Snapshot()
	assert.Equal(t, "db down", st.ErrorMessage)
	assert.False(t, st.IsLoading)
	assert.Len(t, st.Students, 1, "a failed load keeps the previous students")

	list.LoadStudents(ctx)
	assert.Empty(t, list.Snapshot().ErrorMessage)
}

func TestStudentListViewMode(t *testing.T) {
	list := NewStudentList(nil, &recorder{}, zerolog.Nop())

	list.ToggleAddForm()
	assert.True(t, list.Snapshot().Mode.ShowAddForm())
	list.ToggleAddForm()
	assert.Equal(t, Idle, list.Snapshot().Mode.Kind())

	list.ToggleAddForm()
	list.OnEditCancelled()
	assert.Equal(t, Adding, list.Snapshot().Mode.Kind(), "edit cancel ignored while adding")
	list.OnFormCancelled()
	assert.Equal(t, Idle, list.Snapshot().Mode.Kind())

	s := asha
	s.ID = 3
	list.EditStudent(s)
	s.Name = "changed"
	mode := list.Snapshot().Mode
	assert.True(t, mode.ShowEditForm())
	assert.False(t, mode.ShowAddForm())
	selected, ok := mode.Selected()
	require.True(t, ok)
	assert.Equal(t, "Asha Rao", selected.Name, "edit keeps a copy")

	list.OnFormCancelled()
	assert.Equal(t, Editing, list.Snapshot().Mode.Kind(), "add cancel ignored while editing")

	list.ToggleAddForm()
	assert.Equal(t, Adding, list.Snapshot().Mode.Kind())
	_, ok = list.Snapshot().Mode.Selected()
	assert.False(t, ok)

	list.EditStudent(s)
	list.OnEditCancelled()
	assert.Equal(t, Idle, list.Snapshot().Mode.Kind())
	assert.Nil(t, list.NewEditForm())
}

func TestStudentListAddFlow(t *testing.T) {
	f := newFixture(t, true)
	f.srv.SetNextStudentID(7)
	ctx := context.Background()

	list := NewStudentList(f.students, f.dialog, zerolog.Nop())
	list.LoadStudents(ctx)
	list.ToggleAddForm()

	form := list.NewAddForm()
	form.Change(func(s *model.Student) {
		s.Name = "Jo"
		s.Email = "jo@x.com"
		s.Phone = "9876543210"
		s.RoomNo = "A101"
	})
	require.True(t, form.Save(ctx))

	st := list.Snapshot()
	assert.Equal(t, Idle, st.Mode.Kind())
	require.Len(t, st.Students, 1)
	assert.Equal(t, int64(7), st.Students[0].ID)
	assert.Equal(t, "Jo", st.Students[0].Name)
	assert.Equal(t, []string{"Student added successfully!"}, f.dialog.Messages())
}

func TestStudentListEditFlow(t *testing.T) {
	f := newFixture(t, true)
	seeded := f.srv.SeedStudent(asha)
	ctx := context.Background()

	list := NewStudentList(f.students, f.dialog, zerolog.Nop())
	list.LoadStudents(ctx)
	list.EditStudent(seeded)

	form := list.NewEditForm()
	require.NotNil(t, form)
	form.Change(func(s *model.Student) {
		s.ID = 999
		s.RoomNo = "C303"
	})
	require.True(t, form.Save(ctx))

	st := list.Snapshot()
	assert.Equal(t, Idle, st.Mode.Kind())
	require.Len(t, st.Students, 1)
	assert.Equal(t, seeded.ID, st.Students[0].ID)
	assert.Equal(t, "C303", st.Students[0].RoomNo)
	assert.Equal(t, []string{"Student updated successfully!"}, f.dialog.Messages())
}

func TestStudentListDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		f := newFixture(t, false)
		s := f.srv.SeedStudent(asha)
		list := NewStudentList(f.students, f.dialog, zerolog.Nop())

		list.DeleteStudent(context.Background(), s)

		assert.Equal(t, []string{"Are you sure you want to delete Asha Rao?"}, f.dialog.Prompts())
		assert.Empty(t, f.dialog.Messages())
		assert.Zero(t, f.srv.Count(http.MethodDelete, "/api/students/1"))
		assert.Len(t, f.srv.Students(), 1)
	})

	t.Run("confirmed", func(t *testing.T) {
		f := newFixture(t, true)
		s := f.srv.SeedStudent(asha)
		f.srv.SeedStudent(bilal)
		ctx := context.Background()
		list := NewStudentList(f.students, f.dialog, zerolog.Nop())
		list.LoadStudents(ctx)

		list.DeleteStudent(ctx, s)

		assert.Equal(t, []string{"Student deleted successfully!"}, f.dialog.Messages())
		st := list.Snapshot()
		require.Len(t, st.Students, 1)
		assert.Equal(t, "Bilal Khan", st.Students[0].Name)
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(t, true)
		s := f.srv.SeedStudent(asha)
		ctx := context.Background()
		list := NewStudentList(f.students, f.dialog, zerolog.Nop())
		list.LoadStudents(ctx)
		f.srv.FailNext(http.MethodDelete, "/api/students/1", http.StatusConflict, map[string]string{"error": "Student has fees"})

		list.DeleteStudent(ctx, s)

		assert.Equal(t, []string{"Error deleting student: Student has fees"}, f.dialog.Messages())
		assert.Empty(t, list.Snapshot().ErrorMessage)
		assert.Equal(t, 1, f.srv.Count(http.MethodGet, "/api/students"), "no reload after a failed delete")
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, true)
		list := NewStudentList(f.students, f.dialog, zerolog.Nop())

		list.DeleteStudent(context.Background(), model.Student{ID: 42, Name: "Ghost"})

		assert.Equal(t, []string{"Error deleting student: Error Code: 404\nMessage: Not Found"}, f.dialog.Messages())
	})
}
