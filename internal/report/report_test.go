package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/hr-console/internal/domain/model"
)

func sampleContracts() []model.Contract {
	return []model.Contract{
		{ID: "1", EmployeeName: "Alice Uwase", ContractType: model.ContractFullTime, StartDate: "2024-01-01", Status: model.ContractActive},
		{ID: "2", EmployeeName: "Bob Mugisha", ContractType: model.ContractTemporary, StartDate: "2023-03-01", EndDate: "2023-09-01", Status: model.ContractExpired},
		{ID: "7", EmployeeName: "Claire Ingabire", ContractType: model.ContractPartTime, StartDate: "2024-05-01", EndDate: "2025-05-01", Status: model.ContractActive},
	}
}

func sampleAttendance() []model.AttendanceRecord {
	return []model.AttendanceRecord{
		{ID: "11", EmployeeName: "Alice Uwase", Date: "2024-06-03", Status: model.AttendancePresent},
		{ID: "12", EmployeeName: "Bob Mugisha", Date: "2024-06-03", Status: model.AttendanceLate, Remarks: "Traffic"},
	}
}

func TestContractRows(t *testing.T) {
	rows := ContractRows(sampleContracts())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Alice Uwase", "Full-Time", "2024-01-01", "-", "Active"}, rows[0])
	assert.Equal(t, []string{"2", "Bob Mugisha", "Temporary", "2023-03-01", "2023-09-01", "Expired"}, rows[1])
}

func TestActiveContractRows_NumbersActiveOnly(t *testing.T) {
	rows := ActiveContractRows(sampleContracts())
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "Alice Uwase", rows[0][1])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "Claire Ingabire", rows[1][1])
}

func TestAttendanceRows_Placeholders(t *testing.T) {
	rows := AttendanceRows(append(sampleAttendance(), model.AttendanceRecord{EmployeeName: "Dan"}))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"11", "Alice Uwase", "2024-06-03", "Present", "-"}, rows[0])
	assert.Equal(t, "Traffic", rows[1][4])
	assert.Equal(t, []string{"-", "Dan", "-", "-", "-"}, rows[2])
}

func TestRecordFields(t *testing.T) {
	fields := RecordFields(model.AttendanceRecord{EmployeeName: "Alice", Date: "2024-06-03", Status: model.AttendanceAbsent, Remarks: "  "})
	assert.Equal(t, []Field{
		{"Employee", "Alice"},
		{"Date", "2024-06-03"},
		{"Status", "Absent"},
		{"Remarks", "None"},
	}, fields)
}

func TestRecordFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Alice", "Alice_attendance.pdf"},
		{"spaces", "Alice Uwase", "Alice_Uwase_attendance.pdf"},
		{"path separators", "../etc/passwd", "etc_passwd_attendance.pdf"},
		{"blank", "   ", "employee_attendance.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecordFilename(model.AttendanceRecord{EmployeeName: tt.in}))
		})
	}
}

func TestWriters_ProducePDF(t *testing.T) {
	tests := []struct {
		title string
		write func(*bytes.Buffer) error
	}{
		{"Contracts Report", func(b *bytes.Buffer) error { return WriteContracts(b, sampleContracts()) }},
		{"Attendance Report", func(b *bytes.Buffer) error { return WriteAttendance(b, sampleAttendance()) }},
		{"Attendance Record", func(b *bytes.Buffer) error { return WriteAttendanceRecord(b, sampleAttendance()[1]) }},
		{"HR Report", func(b *bytes.Buffer) error { return WriteHR(b, sampleContracts(), sampleAttendance()) }},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.write(&buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Contains(t, buf.String(), fmt.Sprintf("/Title (%s)", tt.title))
		})
	}
}

func TestWriters_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContracts(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, WriteHR(&buf, nil, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteAttendance_ManyRowsSpansPages(t *testing.T) {
	records := make([]model.AttendanceRecord, 0, 120)
	for i := range 120 {
		records = append(records, model.AttendanceRecord{
			ID:           model.ID(fmt.Sprint(i)),
			EmployeeName: "Employee " + strings.Repeat("x", i%40),
			Date:         "2024-06-03",
			Status:       model.AttendancePresent,
		})
	}
	var buf bytes.Buffer
	require.NoError(t, WriteAttendance(&buf, records))
	assert.Greater(t, strings.Count(buf.String(), "/Type /Page\n"), 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteContracts_PropagatesWriteError(t *testing.T) {
	err := WriteContracts(failingWriter{}, sampleContracts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write pdf")
}

func TestFit_KeepsAccentedTextWhenTruncating(t *testing.T) {
	d := newDocument("Contracts Report")
	d.pdf.SetFont("Helvetica", "", 10)

	got := d.fit("Émilie Uwimana-Ngabonziza Nshimiyimana Mukamana", 40)
	assert.True(t, strings.HasPrefix(got, "\xc9milie"), "got %q", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.NotContains(t, got, "\xef\xbf\xbd")
	assert.Less(t, len(got), len("Émilie Uwimana-Ngabonziza Nshimiyimana Mukamana"))

	assert.Equal(t, "\xc9milie", d.fit("Émilie", 40))
}
