package model

import (
	"strings"
	"time"

	apperrors "github.com/target/hr-console/internal/errors"
)

// DateLayout is the wire and form format for calendar dates.
const DateLayout = "2006-01-02"

// ContractType is the kind of employment agreement.
type ContractType string

const (
	ContractFullTime   ContractType = "Full-Time"
	ContractPartTime   ContractType = "Part-Time"
	ContractTemporary  ContractType = "Temporary"
	ContractInternship ContractType = "Internship"
)

// ContractTypes lists the selectable contract types in display order.
var ContractTypes = []ContractType{ContractFullTime, ContractPartTime, ContractTemporary, ContractInternship}

// Valid reports whether the contract type is supported.
func (t ContractType) Valid() bool {
	switch t {
	case ContractFullTime, ContractPartTime, ContractTemporary, ContractInternship:
		return true
	default:
		return false
	}
}

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractActive     ContractStatus = "Active"
	ContractExpired    ContractStatus = "Expired"
	ContractTerminated ContractStatus = "Terminated"
)

// ContractStatuses lists the selectable statuses in display order.
var ContractStatuses = []ContractStatus{ContractActive, ContractExpired, ContractTerminated}

// Valid reports whether the status is supported.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractExpired, ContractTerminated:
		return true
	default:
		return false
	}
}

// ParseContractType matches value case-insensitively against the known types.
func ParseContractType(value string) (ContractType, bool) {
	v := strings.TrimSpace(value)
	for _, t := range ContractTypes {
		if strings.EqualFold(v, string(t)) {
			return t, true
		}
	}
	return "", false
}

// ParseContractStatus matches value case-insensitively against the known statuses.
func ParseContractStatus(value string) (ContractStatus, bool) {
	v := strings.TrimSpace(value)
	for _, s := range ContractStatuses {
		if strings.EqualFold(v, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Contract is an employment agreement tracked by the HR service.
type Contract struct {
	ID           ID             `json:"id"`
	EmployeeID   ID             `json:"employeeId,omitempty"`
	EmployeeName string         `json:"employeeName"`
	ContractType ContractType   `json:"contractType"`
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate,omitempty"`
	Status       ContractStatus `json:"status"`
}

// IsActive reports whether the contract counts as active.
func (c Contract) IsActive() bool { return c.Status == ContractActive }

// ContractRequest is the payload for creating or updating a contract.
type ContractRequest struct {
	EmployeeID   ID             `json:"employeeId,omitempty"`
	EmployeeName string         `json:"employeeName"`
	ContractType ContractType   `json:"contractType"`
	StartDate    string         `json:"startDate"`
	EndDate      string         `json:"endDate,omitempty"`
	Status       ContractStatus `json:"status"`
}

// ContractRequestFrom copies the editable fields of c.
func ContractRequestFrom(c Contract) ContractRequest {
	return ContractRequest{
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		ContractType: c.ContractType,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Status:       c.Status,
	}
}

// Validate checks required fields, enum membership and date order.
// Status defaults to Active and ContractType to Full-Time when blank.
func (r *ContractRequest) Validate() error {
	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)

	if r.EmployeeName == "" && r.EmployeeID.IsZero() {
		return apperrors.ValidationField("employeeName", "Employee is required.")
	}

	if strings.TrimSpace(string(r.ContractType)) == "" {
		r.ContractType = ContractFullTime
	}
	ct, ok := ParseContractType(string(r.ContractType))
	if !ok {
		return apperrors.ValidationField("contractType", "Contract type must be one of: Full-Time, Part-Time, Temporary, Internship.")
	}
	r.ContractType = ct

	if strings.TrimSpace(string(r.Status)) == "" {
		r.Status = ContractActive
	}
	st, ok := ParseContractStatus(string(r.Status))
	if !ok {
		return apperrors.ValidationField("status", "Status must be one of: Active, Expired, Terminated.")
	}
	r.Status = st

	if r.StartDate == "" {
		return apperrors.ValidationField("startDate", "Start date is required.")
	}
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return apperrors.ValidationField("startDate", "Start date must be a valid date.")
	}
	if r.EndDate != "" {
		end, err := time.Parse(DateLayout, r.EndDate)
		if err != nil {
			return apperrors.ValidationField("endDate", "End date must be a valid date.")
		}
		if end.Before(start) {
			return apperrors.ValidationField("endDate", "End date cannot be before the start date.")
		}
	}
	return nil
}
