package sheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, writeRows(f, f.GetSheetName(0), rows))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadStudents(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Room No", "Name", "Notes", "Phone", "Email"},
		{"A101", "Asha Rao", "corner bed", "9876543210", "asha@pg.in"},
		{},
		{"B202", " Bilal Khan ", "", "9876543211", "bilal@pg.in"},
		{"C303", "Chen"},
	})

	rows, err := ReadStudents(buf)
	require.NoError(t, err)

	assert.Equal(t, []Row{
		{Line: 2, Student: model.Student{Name: "Asha Rao", Email: "asha@pg.in", Phone: "9876543210", RoomNo: "A101"}},
		{Line: 4, Student: model.Student{Name: "Bilal Khan", Email: "bilal@pg.in", Phone: "9876543211", RoomNo: "B202"}},
		{Line: 5, Student: model.Student{Name: "Chen", RoomNo: "C303"}},
	}, rows)
}

func TestReadStudentsMissingColumn(t *testing.T) {
	buf := workbook(t, [][]interface{}{{"Name", "Email", "Phone"}})

	_, err := ReadStudents(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "roomno")
}

func TestReadStudentsNotAWorkbook(t *testing.T) {
	_, err := ReadStudents(bytes.NewBufferString("name,email\n"))
	assert.Error(t, err)
}

func TestWriteLedger(t *testing.T) {
	students := []model.Student{
		{ID: 1, Name: "Asha Rao", Email: "asha@pg.in", Phone: "9876543210", RoomNo: "A101"},
		{ID: 2, Name: "Bilal Khan", Email: "bilal@pg.in", Phone: "9876543211", RoomNo: "B202"},
	}
	fees := []model.Fee{
		{ID: 10, StudentID: 2, Amount: 4500.5, PaymentDate: "2026-10-01", Mode: model.PaymentModeBankTransfer, Status: model.FeeStatusPaid},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, students, fees))
	raw := buf.Bytes()

	rows, err := ReadStudents(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Bilal Khan", rows[1].Student.Name)
	assert.Equal(t, "9876543211", rows[1].Student.Phone)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{StudentsSheet, FeesSheet}, f.GetSheetList())
	feeRows, err := f.GetRows(FeesSheet)
	require.NoError(t, err)
	require.Len(t, feeRows, 2)
	assert.Equal(t, []string{"Fee ID", "Student ID", "Student", "Amount", "Payment Date", "Mode", "Status"}, feeRows[0])
	assert.Equal(t, []string{"10", "2", "Bilal Khan", "4500.5", "2026-10-01", "Bank Transfer", "PAID"}, feeRows[1])
}
