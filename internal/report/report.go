// Package report renders HR records as downloadable PDF documents.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/target/hr-console/internal/domain/model"
)

// Download file names.
const (
	ContractsFilename  = "contracts_report.pdf"
	AttendanceFilename = "attendance_report.pdf"
	HRFilename         = "hr_report.pdf"
)

// Placeholder fills empty table cells.
const Placeholder = "-"

const noRemarks = "None"

// Column is a table header with its width in millimetres.
type Column struct {
	Header string
	Width  float64
}

var contractColumns = []Column{
	{"#", 12},
	{"Employee Name", 48},
	{"Contract Type", 32},
	{"Start Date", 30},
	{"End Date", 30},
	{"Status", 38},
}

var attendanceColumns = []Column{
	{"#", 12},
	{"Employee Name", 52},
	{"Date", 30},
	{"Status", 30},
	{"Remarks", 66},
}

// ContractRows builds the table body for contracts, keyed by contract id.
func ContractRows(contracts []model.Contract) [][]string {
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, contractRow(c.ID.String(), c))
	}
	return rows
}

// ActiveContractRows builds the numbered table of active contracts used on the HR report.
func ActiveContractRows(contracts []model.Contract) [][]string {
	active := model.ActiveContracts(contracts)
	rows := make([][]string, 0, len(active))
	for i, c := range active {
		rows = append(rows, contractRow(fmt.Sprint(i+1), c))
	}
	return rows
}

func contractRow(num string, c model.Contract) []string {
	return []string{
		orPlaceholder(num),
		orPlaceholder(c.EmployeeName),
		orPlaceholder(string(c.ContractType)),
		orPlaceholder(c.StartDate),
		orPlaceholder(c.EndDate),
		orPlaceholder(string(c.Status)),
	}
}

// AttendanceRows builds the table body for attendance records.
func AttendanceRows(records []model.AttendanceRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			orPlaceholder(r.ID.String()),
			orPlaceholder(r.EmployeeName),
			orPlaceholder(r.Date),
			orPlaceholder(string(r.Status)),
			orPlaceholder(r.Remarks),
		})
	}
	return rows
}

// Field is one labelled line of a single-record report.
type Field struct {
	Label string
	Value string
}

// RecordFields lists the lines printed for a single attendance record.
func RecordFields(r model.AttendanceRecord) []Field {
	remarks := strings.TrimSpace(r.Remarks)
	if remarks == "" {
		remarks = noRemarks
	}
	return []Field{
		{"Employee", r.EmployeeName},
		{"Date", r.Date},
		{"Status", string(r.Status)},
		{"Remarks", remarks},
	}
}

// RecordFilename names the download for a single record, e.g. "Alice_Smith_attendance.pdf".
func RecordFilename(r model.AttendanceRecord) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(r.EmployeeName) {
		switch {
		case unicode.IsLetter(ch), unicode.IsDigit(ch), ch == '-', ch == '_', ch == '.':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "._")
	if name == "" {
		name = "employee"
	}
	return name + "_attendance.pdf"
}

// WriteContracts renders the contracts report.
func WriteContracts(w io.Writer, contracts []model.Contract) error {
	d := newDocument("Contracts Report")
	d.heading("Contracts Report")
	d.table(contractColumns, ContractRows(contracts))
	return d.write(w)
}

// WriteAttendance renders the attendance report.
func WriteAttendance(w io.Writer, records []model.AttendanceRecord) error {
	d := newDocument("Attendance Report")
	d.heading("Attendance Report")
	d.table(attendanceColumns, AttendanceRows(records))
	return d.write(w)
}

// WriteAttendanceRecord renders a single attendance record.
func WriteAttendanceRecord(w io.Writer, r model.AttendanceRecord) error {
	d := newDocument("Attendance Record")
	d.heading("Attendance Record")
	for _, f := range RecordFields(r) {
		d.field(f)
	}
	return d.write(w)
}

// WriteHR renders the combined HR report: active contracts, then all attendance.
func WriteHR(w io.Writer, contracts []model.Contract, records []model.AttendanceRecord) error {
	d := newDocument("HR Report")
	d.heading("HR Report")
	d.section("Active Contracts")
	d.table(contractColumns, ActiveContractRows(contracts))
	d.pdf.Ln(6)
	d.section("Attendance Records")
	d.table(attendanceColumns, AttendanceRows(records))
	return d.write(w)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
