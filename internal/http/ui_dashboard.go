package httpx

import (
	"context"
	"net/http"

	"github.com/target/hr-console/internal/domain/model"
)

// Index serves the dashboard: summary counters plus quick contract and attendance forms.
// GET /.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Dashboard", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["ContractForm"] = newContractForm()
			data["AttendanceForm"] = h.newAttendanceForm()
			data["ContractTypes"] = model.ContractTypes
			data["ContractStatuses"] = model.ContractStatuses
			data["AttendanceStatuses"] = model.AttendanceStatuses
			data["ReturnTo"] = "/"
			data["EmployeeOptions"] = h.employeeOptions(ctx)

			summary, err := h.Dashboard.Summary(ctx)
			data["Summary"] = summary
			return err
		},
	})
}

// ReportPreview shows the HR report on screen with a link to the PDF.
// GET /report.
func (h *UIHandlers) ReportPreview(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "HR Report", CurrentPage: PageReport},
		Fetch: func(ctx context.Context, data map[string]any) error {
			snap, err := h.Dashboard.Snapshot(ctx)
			if err != nil {
				data["ActiveContracts"] = []model.Contract{}
				data["Records"] = []model.AttendanceRecord{}
				return err
			}
			data["ActiveContracts"] = model.ActiveContracts(snap.Contracts)
			data["Records"] = snap.Attendance
			data["Summary"] = model.SummarizeRecords(snap.Employees, snap.Contracts, snap.Attendance)
			return nil
		},
	})
}
