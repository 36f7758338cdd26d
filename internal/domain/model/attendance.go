package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/target/hr-console/internal/errors"
)

const maxRemarksLen = 500

// AttendanceStatus is the outcome recorded for an employee on a day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceOnLeave AttendanceStatus = "On Leave"
	AttendanceLate    AttendanceStatus = "Late"
)

// AttendanceStatuses lists the selectable statuses in display order.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceOnLeave, AttendanceLate}

// Valid reports whether the status is supported.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceOnLeave, AttendanceLate:
		return true
	default:
		return false
	}
}

// ParseAttendanceStatus matches value case-insensitively against the known statuses.
func ParseAttendanceStatus(value string) (AttendanceStatus, bool) {
	v := strings.TrimSpace(value)
	for _, s := range AttendanceStatuses {
		if strings.EqualFold(v, string(s)) {
			return s, true
		}
	}
	return "", false
}

// AttendanceRecord is one day's attendance for an employee.
type AttendanceRecord struct {
	ID           ID               `json:"id"`
	EmployeeID   ID               `json:"employeeId,omitempty"`
	EmployeeName string           `json:"employeeName"`
	Date         string           `json:"date"`
	Status       AttendanceStatus `json:"status"`
	Remarks      string           `json:"remarks,omitempty"`
}

// AttendanceRequest is the payload for creating or updating an attendance record.
type AttendanceRequest struct {
	EmployeeID   ID               `json:"employeeId,omitempty"`
	EmployeeName string           `json:"employeeName"`
	Date         string           `json:"date"`
	Status       AttendanceStatus `json:"status"`
	Remarks      string           `json:"remarks,omitempty"`
}

// AttendanceRequestFrom copies the editable fields of r.
func AttendanceRequestFrom(r AttendanceRecord) AttendanceRequest {
	return AttendanceRequest{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date,
		Status:       r.Status,
		Remarks:      r.Remarks,
	}
}

// Validate checks required fields and status membership. Status defaults to Present.
func (r *AttendanceRequest) Validate() error {
	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	r.Date = strings.TrimSpace(r.Date)
	r.Remarks = strings.TrimSpace(r.Remarks)

	if r.EmployeeName == "" && r.EmployeeID.IsZero() {
		return apperrors.ValidationField("employeeName", "Employee is required.")
	}
	if r.Date == "" {
		return apperrors.ValidationField("date", "Date is required.")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return apperrors.ValidationField("date", "Date must be a valid date.")
	}
	if strings.TrimSpace(string(r.Status)) == "" {
		r.Status = AttendancePresent
	}
	st, ok := ParseAttendanceStatus(string(r.Status))
	if !ok {
		return apperrors.ValidationField("status", "Status must be one of: Present, Absent, On Leave, Late.")
	}
	r.Status = st
	if utf8.RuneCountInString(r.Remarks) > maxRemarksLen {
		return apperrors.ValidationField("remarks", "Remarks cannot exceed 500 characters.")
	}
	return nil
}
