// Package sheet moves students and fee payments in and out of Excel
// workbooks.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	StudentsSheet = "Students"
	FeesSheet     = "Fees"
)

var (
	// ErrNoSheets is returned for a workbook without any sheet.
	ErrNoSheets = errors.New("workbook does not contain any sheets")
	// ErrMissingColumn is returned when the header row lacks a student column.
	ErrMissingColumn = errors.New("missing column")
)

var (
	studentHeader = []interface{}{"ID", "Name", "Email", "Phone", "Room No"}
	feeHeader     = []interface{}{"Fee ID", "Student ID", "Student", "Amount", "Payment Date", "Mode", "Status"}
)

// Row is a student read from a workbook along with its 1-based row number.
type Row struct {
	Line    int
	Student model.Student
}

// ReadStudents reads the first sheet of an .xlsx workbook. The first row is
// a header naming the Name, Email, Phone and Room No columns in any order;
// other columns are ignored. Empty rows are skipped. Values are not
// validated.
func ReadStudents(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return []Row{}, nil
	}

	cols, err := columns(rows[0])
	if err != nil {
		return nil, err
	}

	out := []Row{}
	for i, row := range rows[1:] {
		s := model.Student{
			Name:   cell(row, cols["name"]),
			Email:  cell(row, cols["email"]),
			Phone:  cell(row, cols["phone"]),
			RoomNo: cell(row, cols["roomno"]),
		}
		if s == (model.Student{}) {
			continue
		}
		out = append(out, Row{Line: i + 2, Student: s})
	}
	return out, nil
}

// columns maps the normalised header names to their column index.
func columns(header []string) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
		if _, seen := cols[key]; !seen {
			cols[key] = i
		}
	}
	for _, want := range []string{"name", "email", "phone", "roomno"} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, want)
		}
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// WriteLedger writes students and fees as two sheets of an .xlsx workbook.
// The Students sheet can be read back with ReadStudents.
func WriteLedger(w io.Writer, students []model.Student, fees []model.Fee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), StudentsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(FeesSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", FeesSheet, err)
	}

	names := make(map[int64]string, len(students))
	studentRows := [][]interface{}{studentHeader}
	for _, s := range students {
		names[s.ID] = s.Name
		studentRows = append(studentRows, []interface{}{s.ID, s.Name, s.Email, s.Phone, s.RoomNo})
	}
	if err := writeRows(f, StudentsSheet, studentRows); err != nil {
		return err
	}

	feeRows := [][]interface{}{feeHeader}
	for _, fee := range fees {
		feeRows = append(feeRows, []interface{}{
			fee.ID, fee.StudentID, names[fee.StudentID], fee.Amount, fee.PaymentDate, string(fee.Mode), fee.Status,
		})
	}
	if err := writeRows(f, FeesSheet, feeRows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
