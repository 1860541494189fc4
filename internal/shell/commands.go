package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/venky2135/pg-management-system/internal/apierror"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/sheet"
	"github.com/venky2135/pg-management-system/internal/viewstate"
)

var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	help  string
	run   func(ctx context.Context, args string) error
}

func (s *Shell) registry() []command {
	return []command{
		{"list", "list", "reload and show all students", s.cmdList},
		{"search", "search <term>", "filter loaded students by name, email or room", s.cmdSearch},
		{"clear", "clear", "clear the search filter", s.cmdClear},
		{"add", "add", "add a student", s.cmdAdd},
		{"edit", "edit <id>", "edit a student", s.cmdEdit},
		{"delete", "delete <id>", "delete a student", s.cmdDelete},
		{"show", "show <id>", "show one student from the server", s.cmdShow},
		{"find", "find email|room <value>", "search the server by email or room number", s.cmdFind},
		{"fees", "fees <id>", "show a student's payments", s.cmdFees},
		{"pay", "pay <id> <amount> [date] [mode]", "record a payment (mode: Cash, UPI, Card, Bank Transfer)", s.cmdPay},
		{"rmfee", "rmfee <studentId> <feeId>", "delete a payment record", s.cmdRemoveFee},
		{"import", "import <file.xlsx>", "create students from a workbook", s.cmdImport},
		{"export", "export <file.xlsx>", "write students and payments to a workbook", s.cmdExport},
		{"help", "help", "show this help", s.cmdHelp},
	}
}

func (s *Shell) usageOf(name string) error {
	for _, c := range s.commands {
		if c.name == name {
			return fmt.Errorf("%w: %s", errUsage, c.usage)
		}
	}
	return errUsage
}

func (s *Shell) cmdHelp(context.Context, string) error {
	s.renderHelp()
	return nil
}

func (s *Shell) cmdList(ctx context.Context, _ string) error {
	s.list.LoadStudents(ctx)
	s.syncCards()
	s.printLoadError()
	s.renderList()
	return nil
}

func (s *Shell) cmdSearch(_ context.Context, term string) error {
	s.list.SetSearchTerm(term)
	s.list.SearchStudents()
	s.renderList()
	return nil
}

func (s *Shell) cmdClear(context.Context, string) error {
	s.list.ClearSearch()
	s.renderList()
	return nil
}

func (s *Shell) cmdAdd(ctx context.Context, _ string) error {
	s.list.ToggleAddForm()
	form := s.list.NewAddForm()

	var draft model.Student
	s.fill(&draft)
	form.Change(func(st *model.Student) { *st = draft })

	if !form.Save(ctx) {
		msg := form.Snapshot().ErrorMessage
		form.Cancel()
		return errors.New(msg)
	}
	s.syncCards()
	return nil
}

func (s *Shell) cmdEdit(ctx context.Context, args string) error {
	st, err := s.student(ctx, args, "edit")
	if err != nil {
		return err
	}
	s.list.EditStudent(st)
	form := s.list.NewEditForm()

	draft := form.Snapshot().Draft
	s.fill(&draft)
	form.Change(func(st *model.Student) { *st = draft })

	if !form.Save(ctx) {
		msg := form.Snapshot().ErrorMessage
		form.Cancel()
		return errors.New(msg)
	}
	s.syncCards()
	return nil
}

func (s *Shell) fill(st *model.Student) {
	st.Name = s.ask("Name", st.Name)
	st.Email = s.ask("Email", st.Email)
	st.Phone = s.ask("Phone", st.Phone)
	st.RoomNo = s.ask("Room No", st.RoomNo)
}

func (s *Shell) cmdDelete(ctx context.Context, args string) error {
	st, err := s.student(ctx, args, "delete")
	if err != nil {
		return err
	}
	s.list.DeleteStudent(ctx, st)
	s.syncCards()
	return nil
}

func (s *Shell) cmdShow(ctx context.Context, args string) error {
	id, err := parseID(args)
	if err != nil {
		return s.usageOf("show")
	}
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return lookupError(id, err)
	}
	s.renderStudent(*st)
	return nil
}

func (s *Shell) cmdFind(ctx context.Context, args string) error {
	by, value, _ := strings.Cut(args, " ")
	value = strings.TrimSpace(value)
	if value == "" {
		return s.usageOf("find")
	}

	var (
		found []model.Student
		err   error
	)
	switch strings.ToLower(by) {
	case "email":
		found, err = s.students.SearchByEmail(ctx, value)
	case "room":
		found, err = s.students.SearchByRoom(ctx, value)
	default:
		return s.usageOf("find")
	}
	if err != nil {
		return err
	}
	s.renderStudents(found)
	return nil
}

func (s *Shell) cmdFees(ctx context.Context, args string) error {
	st, err := s.student(ctx, args, "fees")
	if err != nil {
		return err
	}
	card, ok := s.cards.Lookup(st.ID)
	if ok {
		card.History.Reload(ctx)
	} else {
		card = s.cards.Get(ctx, st)
	}
	s.renderHistory(st, card.History.Snapshot())
	return nil
}

func (s *Shell) cmdPay(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return s.usageOf("pay")
	}
	st, err := s.student(ctx, fields[0], "pay")
	if err != nil {
		return err
	}
	card := s.cards.Get(ctx, st)

	// Unparseable amounts are left to the form's own amount check.
	amount, _ := strconv.ParseFloat(fields[1], 64)
	card.Form.SetAmount(amount)
	if len(fields) > 2 {
		card.Form.SetPaymentDate(fields[2])
	}
	if len(fields) > 3 {
		card.Form.SetMode(paymentMode(strings.Join(fields[3:], " ")))
	}

	if !card.Form.Save(ctx) {
		return errors.New(card.Form.Snapshot().ErrorMessage)
	}
	s.renderHistory(st, card.History.Snapshot())
	return nil
}

// paymentMode matches in against the known modes ignoring case. Unknown
// values are passed through for the form to reject.
func paymentMode(in string) model.PaymentMode {
	for _, m := range model.PaymentModes {
		if strings.EqualFold(string(m), in) {
			return m
		}
	}
	return model.PaymentMode(in)
}

func (s *Shell) cmdRemoveFee(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return s.usageOf("rmfee")
	}
	feeID, err := parseID(fields[1])
	if err != nil {
		return s.usageOf("rmfee")
	}
	st, err := s.student(ctx, fields[0], "rmfee")
	if err != nil {
		return err
	}
	card := s.cards.Get(ctx, st)

	fee := model.Fee{ID: feeID, StudentID: st.ID}
	for _, f := range card.History.Snapshot().Fees {
		if f.ID == feeID {
			fee = f
			break
		}
	}
	card.History.DeleteFee(ctx, fee)
	s.renderHistory(st, card.History.Snapshot())
	return nil
}

func (s *Shell) cmdImport(ctx context.Context, path string) error {
	if path == "" {
		return s.usageOf("import")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := sheet.ReadStudents(f)
	if err != nil {
		return err
	}
	res, err := sheet.Import(ctx, s.students, rows, s.log)
	if err != nil {
		return err
	}
	for _, failed := range res.Failed {
		fmt.Fprintf(s.out, "Row %d: %s\n", failed.Line, failed.Message)
	}
	fmt.Fprintf(s.out, "Imported %d of %d students.\n", len(res.Created), len(rows))

	s.list.LoadStudents(ctx)
	s.syncCards()
	s.printLoadError()
	return nil
}

func (s *Shell) cmdExport(ctx context.Context, path string) error {
	if path == "" {
		return s.usageOf("export")
	}
	s.list.LoadStudents(ctx)
	snap := s.list.Snapshot()
	if snap.ErrorMessage != "" {
		return errors.New(snap.ErrorMessage)
	}
	fees, err := s.fees.List(ctx)
	if err != nil {
		return err
	}
	viewstate.SortFeesByDateDesc(fees)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sheet.WriteLedger(f, snap.Students, fees); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported %d students and %d payments to %s\n", len(snap.Students), len(fees), path)
	return nil
}

// student resolves an id argument against the loaded students, falling back
// to the server.
func (s *Shell) student(ctx context.Context, arg, cmd string) (model.Student, error) {
	id, err := parseID(arg)
	if err != nil {
		return model.Student{}, s.usageOf(cmd)
	}
	for _, st := range s.list.Snapshot().Students {
		if st.ID == id {
			return st, nil
		}
	}
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return model.Student{}, lookupError(id, err)
	}
	return *st, nil
}

func lookupError(id int64, err error) error {
	if errors.Is(err, apierror.ErrNotFound) {
		return fmt.Errorf("no student with id %d", id)
	}
	return err
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

func (s *Shell) syncCards() {
	s.cards.Sync(s.list.Snapshot().Students)
}
