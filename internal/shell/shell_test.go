package shell

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venky2135/pg-management-system/internal/apitest"
	"github.com/venky2135/pg-management-system/internal/client"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/viewstate"
)

var asha = model.Student{Name: "Asha Rao", Email: "asha@pg.in", Phone: "9876543210", RoomNo: "A101"}

func today() time.Time { return time.Date(2026, time.October, 17, 8, 0, 0, 0, time.UTC) }

// run feeds script to a fresh shell and returns everything it printed.
func run(t *testing.T, srv *apitest.Server, script string) string {
	t.Helper()
	cfg := srv.Config()
	students := client.NewStudentClient(cfg, srv.Client(), zerolog.Nop())
	fees := client.NewFeeClient(cfg, srv.Client(), zerolog.Nop())

	var out bytes.Buffer
	sh := New(strings.NewReader(script), &out, students, fees, zerolog.Nop(), Options{
		FeeForm: []viewstate.FeeFormOption{viewstate.WithClock(today)},
	})
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestListAndSearch(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedStudent(asha)
	srv.SeedStudent(model.Student{Name: "Bilal Khan", Email: "bilal@pg.in", Phone: "9876543211", RoomNo: "B202"})

	out := run(t, srv, "list\nsearch khan\nclear\nquit\nlist\n")

	assert.Contains(t, out, "Asha Rao")
	assert.Contains(t, out, `Showing 1 of 2 students (search "khan")`)
	assert.Equal(t, 2, strings.Count(out, "asha@pg.in"), "list and clear show Asha, search does not")
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/students"), "startup load plus list; nothing after quit")
}

func TestAdd(t *testing.T) {
	srv := apitest.New(t)
	srv.SetNextStudentID(7)

	out := run(t, srv, "add\nJo\njo@x.com\n9876543210\nA101\nlist\n")

	assert.Contains(t, out, "Student added successfully!")
	assert.Regexp(t, `7\s+Jo\s+jo@x.com`, out)
	require.Len(t, srv.Students(), 1)
	assert.Equal(t, int64(7), srv.Students()[0].ID)
}

func TestAddInvalid(t *testing.T) {
	srv := apitest.New(t)

	out := run(t, srv, "add\nJ\njo@x.com\n9876543210\nA101\n")

	assert.Contains(t, out, "Error: name must be at least 2 characters in length")
	assert.Zero(t, srv.Count(http.MethodPost, "/api/students"))
}

func TestEditKeepsBlankFields(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedStudent(asha)

	out := run(t, srv, "edit 1\n\n\n\nB202\n")

	assert.Contains(t, out, "Student updated successfully!")
	got := srv.Students()[0]
	assert.Equal(t, "Asha Rao", got.Name)
	assert.Equal(t, "B202", got.RoomNo)
}

func TestDelete(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		srv := apitest.New(t)
		srv.SeedStudent(asha)

		out := run(t, srv, "delete 1\nn\n")

		assert.Contains(t, out, "Are you sure you want to delete Asha Rao? [y/N]: ")
		assert.Zero(t, srv.Count(http.MethodDelete, "/api/students/1"))
	})

	t.Run("confirmed", func(t *testing.T) {
		srv := apitest.New(t)
		srv.SeedStudent(asha)

		out := run(t, srv, "delete 1\nyes\n")

		assert.Contains(t, out, "Student deleted successfully!")
		assert.Empty(t, srv.Students())
	})

	t.Run("end of input declines", func(t *testing.T) {
		srv := apitest.New(t)
		srv.SeedStudent(asha)

		run(t, srv, "delete 1\n")

		assert.Len(t, srv.Students(), 1)
	})
}

func TestShowAndFind(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedStudent(asha)

	out := run(t, srv, "show 1\nshow 42\nshow x\nfind email asha@pg.in\nfind room Z9\nfind phone 1\n")

	assert.Regexp(t, `Room No:\s+A101`, out)
	assert.Contains(t, out, "Error: no student with id 42")
	assert.Contains(t, out, "Error: usage: show <id>")
	assert.Contains(t, out, "No students found.")
	assert.Contains(t, out, "Error: usage: find email|room <value>")
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/api/students/search"))
}

func TestPayAndFees(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedStudent(asha)
	srv.SeedFee(model.Fee{StudentID: 1, Amount: 150000, PaymentDate: "2026-09-01", Mode: model.PaymentModeUPI})

	out := run(t, srv, "pay 1 4500 2026-10-01 bank transfer\npay 1 abc\nfees 1\n")

	assert.Contains(t, out, "Fee payment recorded successfully!")
	assert.Contains(t, out, "Error: Please enter a valid amount greater than 0")
	assert.Contains(t, out, "1 Oct 2026")
	assert.Contains(t, out, "₹1,50,000.00")
	assert.Contains(t, out, "Total paid: ₹1,54,500.00")

	fees := srv.Fees()
	require.Len(t, fees, 2)
	assert.Equal(t, model.PaymentModeBankTransfer, fees[1].Mode)
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/api/fees"))
}

func TestPayDefaultsToTodayAndCash(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedStudent(asha)

	run(t, srv, "pay 1 800\n")

	fees := srv.Fees()
	require.Len(t, fees, 1)
	assert.Equal(t, "2026-10-17", fees[0].PaymentDate)
	assert.Equal(t, model.PaymentModeCash, fees[0].Mode)
}

func TestRemoveFee(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedStudent(asha)
	srv.SeedFee(model.Fee{ID: 5, StudentID: 1, Amount: 700, PaymentDate: "2026-09-01", Mode: model.PaymentModeCash})

	out := run(t, srv, "rmfee 1 5\nn\nrmfee 1 5\ny\nrmfee 1\n")

	assert.Equal(t, 1, srv.Count(http.MethodDelete, "/api/fees/5"))
	assert.Contains(t, out, "Are you sure you want to delete this payment record? [y/N]: ")
	assert.Contains(t, out, "Payment record deleted successfully!")
	assert.Contains(t, out, "No payment records found.")
	assert.Contains(t, out, "Error: usage: rmfee <studentId> <feeId>")
	assert.Empty(t, srv.Fees())
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.xlsx")

	src := apitest.New(t)
	src.SeedStudent(asha)
	src.SeedFee(model.Fee{StudentID: 1, Amount: 700, PaymentDate: "2026-09-01", Mode: model.PaymentModeCash})
	out := run(t, src, "export "+path+"\n")
	assert.Contains(t, out, "Exported 1 students and 1 payments to "+path)

	dst := apitest.New(t)
	out = run(t, dst, "import "+path+"\nimport "+path+"\n")
	assert.Contains(t, out, "Imported 1 of 1 students.")
	assert.Contains(t, out, "Row 2: Error Code: 400\nMessage: Bad Request")
	assert.Contains(t, out, "Imported 0 of 1 students.")
	require.Len(t, dst.Students(), 1)
	assert.Equal(t, "asha@pg.in", dst.Students()[0].Email)
}

func TestHelpAndUnknown(t *testing.T) {
	srv := apitest.New(t)

	out := run(t, srv, "help\nfrobnicate\n")

	assert.Contains(t, out, "pay <id> <amount> [date] [mode]")
	assert.Contains(t, out, "quit")
	assert.Contains(t, out, `Error: unknown command "frobnicate", type 'help'`)
}

func TestStartupLoadError(t *testing.T) {
	srv := apitest.New(t)
	srv.FailNext(http.MethodGet, "/api/students", http.StatusInternalServerError, nil)

	out := run(t, srv, "")

	assert.Contains(t, out, "Error: Error Code: 500\nMessage: Internal Server Error")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	srv := apitest.New(t)
	cfg := srv.Config()
	sh := New(strings.NewReader("list\n"), &bytes.Buffer{},
		client.NewStudentClient(cfg, srv.Client(), zerolog.Nop()),
		client.NewFeeClient(cfg, srv.Client(), zerolog.Nop()),
		zerolog.Nop(), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sh.Run(ctx), context.Canceled)
}

func TestInteractivePrompts(t *testing.T) {
	srv := apitest.New(t)
	cfg := srv.Config()
	var out bytes.Buffer
	sh := New(strings.NewReader("add\n"), &out,
		client.NewStudentClient(cfg, srv.Client(), zerolog.Nop()),
		client.NewFeeClient(cfg, srv.Client(), zerolog.Nop()),
		zerolog.Nop(), Options{Interactive: true})

	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "Type 'help' for commands.")
	assert.Contains(t, out.String(), "pg> Name: Email: Phone: Room No: ")
	assert.Contains(t, out.String(), "Error: name is a required field")
}
