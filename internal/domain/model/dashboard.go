package model

// DashboardSummary holds the counters shown on the dashboard.
type DashboardSummary struct {
	TotalEmployees    int `json:"totalEmployees"`
	ActiveContracts   int `json:"activeContracts"`
	InactiveContracts int `json:"inactiveContracts"`
	Present           int `json:"present"`
	Absent            int `json:"absent"`
	Late              int `json:"late"`
	OnLeave           int `json:"onLeave"`
	AttendanceRecords int `json:"attendanceRecords"`
}

// SummarizeRecords computes a summary from full lists.
func SummarizeRecords(employees []Employee, contracts []Contract, attendance []AttendanceRecord) DashboardSummary {
	s := DashboardSummary{
		TotalEmployees:    len(employees),
		AttendanceRecords: len(attendance),
	}
	for _, c := range contracts {
		if c.IsActive() {
			s.ActiveContracts++
		} else {
			s.InactiveContracts++
		}
	}
	for _, a := range attendance {
		switch a.Status {
		case AttendancePresent:
			s.Present++
		case AttendanceAbsent:
			s.Absent++
		case AttendanceLate:
			s.Late++
		case AttendanceOnLeave:
			s.OnLeave++
		}
	}
	return s
}

// ActiveContracts filters contracts to those with Active status.
func ActiveContracts(contracts []Contract) []Contract {
	out := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	return out
}
