package shell

import (
	"fmt"
	"text/tabwriter"

	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/viewstate"
)

func (s *Shell) table() *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
}

func (s *Shell) renderList() {
	snap := s.list.Snapshot()
	if snap.SearchTerm != "" {
		fmt.Fprintf(s.out, "Showing %d of %d students (search %q)\n",
			len(snap.FilteredStudents), len(snap.Students), snap.SearchTerm)
	}
	s.renderStudents(snap.FilteredStudents)
}

func (s *Shell) renderStudents(students []model.Student) {
	if len(students) == 0 {
		fmt.Fprintln(s.out, "No students found.")
		return
	}
	w := s.table()
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tROOM")
	for _, st := range students {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", st.ID, st.Name, st.Email, st.Phone, st.RoomNo)
	}
	w.Flush()
}

func (s *Shell) renderStudent(st model.Student) {
	w := s.table()
	fmt.Fprintf(w, "ID:\t%d\n", st.ID)
	fmt.Fprintf(w, "Name:\t%s\n", st.Name)
	fmt.Fprintf(w, "Email:\t%s\n", st.Email)
	fmt.Fprintf(w, "Phone:\t%s\n", st.Phone)
	fmt.Fprintf(w, "Room No:\t%s\n", st.RoomNo)
	w.Flush()
}

func (s *Shell) renderHistory(st model.Student, h viewstate.FeeHistoryState) {
	fmt.Fprintf(s.out, "Payments for %s (room %s)\n", st.Name, st.RoomNo)
	if h.ErrorMessage != "" {
		fmt.Fprintf(s.out, "Error: %s\n", h.ErrorMessage)
	}
	if len(h.Fees) == 0 {
		fmt.Fprintln(s.out, "No payment records found.")
	} else {
		w := s.table()
		fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tMODE\tSTATUS")
		for _, f := range h.Fees {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				f.ID, viewstate.FormatDate(f.PaymentDate), viewstate.FormatAmount(f.Amount), f.Mode, f.Status)
		}
		w.Flush()
	}
	fmt.Fprintf(s.out, "Total paid: %s\n", viewstate.FormatAmount(h.TotalPaid))
}

func (s *Shell) renderHelp() {
	w := s.table()
	for _, c := range s.commands {
		fmt.Fprintf(w, "  %s\t%s\n", c.usage, c.help)
	}
	fmt.Fprintf(w, "  %s\t%s\n", "quit", "leave the shell")
	w.Flush()
}
