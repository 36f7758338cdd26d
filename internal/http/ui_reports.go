package httpx

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/target/hr-console/internal/report"
)

// ContractsReport downloads every contract as a PDF.
// GET /contracts/report.pdf.
func (h *UIHandlers) ContractsReport(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.ContractSvc.List(r.Context())
	if err != nil {
		h.failAndRedirect(w, r, "/contracts", err)
		return
	}
	h.sendPDF(w, r, report.ContractsFilename, "/contracts", func(out io.Writer) error {
		return report.WriteContracts(out, contracts)
	})
}

// AttendanceReport downloads the attendance log as a PDF.
// GET /attendance-records/report.pdf.
func (h *UIHandlers) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	records, err := h.AttendanceSvc.List(r.Context())
	if err != nil {
		h.failAndRedirect(w, r, "/attendance-records", err)
		return
	}
	h.sendPDF(w, r, report.AttendanceFilename, "/attendance-records", func(out io.Writer) error {
		return report.WriteAttendance(out, records)
	})
}

// AttendanceRecordReport downloads one attendance record as a PDF named after the employee.
// GET /attendance-records/{id}/report.pdf.
func (h *UIHandlers) AttendanceRecordReport(w http.ResponseWriter, r *http.Request) {
	rec, err := h.AttendanceSvc.Get(r.Context(), pathID(r))
	if err != nil {
		h.failAndRedirect(w, r, "/attendance-records", err)
		return
	}
	h.sendPDF(w, r, report.RecordFilename(rec), "/attendance-records", func(out io.Writer) error {
		return report.WriteAttendanceRecord(out, rec)
	})
}

// HRReport downloads the combined report of active contracts and attendance.
// GET /report.pdf.
func (h *UIHandlers) HRReport(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Dashboard.Snapshot(r.Context())
	if err != nil {
		h.failAndRedirect(w, r, "/report", err)
		return
	}
	h.sendPDF(w, r, report.HRFilename, "/report", func(out io.Writer) error {
		return report.WriteHR(out, snap.Contracts, snap.Attendance)
	})
}

// sendPDF renders into a buffer so a failed render never leaves a truncated download.
func (h *UIHandlers) sendPDF(w http.ResponseWriter, r *http.Request, filename, back string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.logger().ErrorContext(r.Context(), "pdf render failed", "file", filename, "error", err)
		h.failAndRedirect(w, r, back, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().WarnContext(r.Context(), "pdf write failed", "file", filename, "error", err)
	}
}
