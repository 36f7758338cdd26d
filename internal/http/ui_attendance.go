package httpx

import (
	"net/http"
	"strings"

	"github.com/target/hr-console/internal/domain/model"
)

func attendanceMeta(mode FormMode) PageMeta {
	meta := PageMeta{Title: "Attendance Records", CurrentPage: PageAttendance}
	if mode == FormModeEdit {
		meta.Title = "Edit Attendance Record"
	}
	return meta
}

func (h *UIHandlers) newAttendanceForm() model.AttendanceRequest {
	return model.AttendanceRequest{
		Date:   h.now().Format(model.DateLayout),
		Status: model.AttendancePresent,
	}
}

// Attendance renders the attendance log with the record form. ?date= filters the list.
// GET /attendance-records (alias /attendance).
func (h *UIHandlers) Attendance(w http.ResponseWriter, r *http.Request) {
	data := h.NewTemplateData(r, attendanceMeta(FormModeCreate)).
		With("Mode", string(FormModeCreate)).
		With("FormData", h.newAttendanceForm()).
		Build()
	h.renderAttendancePage(w, r, data)
}

// AttendanceView renders one attendance record.
// GET /attendance-records/{id}.
func (h *UIHandlers) AttendanceView(w http.ResponseWriter, r *http.Request) {
	rec, err := h.AttendanceSvc.Get(r.Context(), pathID(r))
	if err != nil {
		h.failAndRedirect(w, r, "/attendance-records", err)
		return
	}
	data := h.NewTemplateData(r, PageMeta{Title: "Attendance Record", CurrentPage: PageAttendanceEntry}).
		With("Record", rec).
		Build()
	h.render(w, r, data)
}

// AttendanceEdit renders the log with the form prefilled for one record.
// GET /attendance-records/{id}/edit.
func (h *UIHandlers) AttendanceEdit(w http.ResponseWriter, r *http.Request) {
	rec, err := h.AttendanceSvc.Get(r.Context(), pathID(r))
	if err != nil {
		h.failAndRedirect(w, r, "/attendance-records", err)
		return
	}
	data := h.NewTemplateData(r, attendanceMeta(FormModeEdit)).
		With("Mode", string(FormModeEdit)).
		With("EditID", rec.ID).
		With("FormData", model.AttendanceRequestFrom(rec)).
		Build()
	h.renderAttendancePage(w, r, data)
}

// AttendanceCreate records attendance. The dashboard quick form posts here too.
// POST /attendance-records.
func (h *UIHandlers) AttendanceCreate(w http.ResponseWriter, r *http.Request) {
	h.submitAttendance(w, r, FormModeCreate)
}

// AttendanceUpdate saves changes to a record.
// POST /attendance-records/{id}.
func (h *UIHandlers) AttendanceUpdate(w http.ResponseWriter, r *http.Request) {
	h.submitAttendance(w, r, FormModeEdit)
}

func (h *UIHandlers) submitAttendance(w http.ResponseWriter, r *http.Request, mode FormMode) {
	message := "Attendance recorded successfully."
	if mode == FormModeEdit {
		message = "Attendance record updated successfully."
	}
	HandleForm(FormHandlerOpts[model.AttendanceRequest]{
		UI:     h,
		W:      w,
		R:      r,
		Mode:   mode,
		Parser: h.parseAttendanceForm,
		Service: FormFuncs[model.AttendanceRequest, model.AttendanceRecord]{
			CreateFunc: h.AttendanceSvc.Create,
			UpdateFunc: h.AttendanceSvc.Update,
		},
		Renderer:       h.renderAttendancePage,
		SuccessURL:     returnPath(r, "/attendance-records"),
		SuccessMessage: message,
		PageMeta:       attendanceMeta(mode),
	})
}

// AttendanceDelete removes a record.
// POST /attendance-records/{id}/delete.
func (h *UIHandlers) AttendanceDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AttendanceSvc.Delete(r.Context(), pathID(r)); err != nil {
		h.failAndRedirect(w, r, "/attendance-records", err)
		return
	}
	h.notifyAndRedirect(w, r, "/attendance-records", "Attendance record deleted.")
}

func (h *UIHandlers) parseAttendanceForm(r *http.Request) (model.AttendanceRequest, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return h.newAttendanceForm(), map[string]string{"form": "The form could not be read."}
	}
	req := model.AttendanceRequest{
		EmployeeID:   model.ID(strings.TrimSpace(r.PostFormValue("employeeId"))),
		EmployeeName: r.PostFormValue("employeeName"),
		Date:         r.PostFormValue("date"),
		Status:       model.AttendanceStatus(r.PostFormValue("status")),
		Remarks:      r.PostFormValue("remarks"),
	}
	if strings.TrimSpace(req.EmployeeName) == "" {
		req.EmployeeName = h.employeeName(r.Context(), req.EmployeeID)
	}
	return req, validationErrors(req.Validate())
}

// renderAttendancePage re-fetches the log and the employee select options, then renders.
func (h *UIHandlers) renderAttendancePage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	records, err := h.AttendanceSvc.List(r.Context())
	if err != nil {
		if h.handleServiceError(w, r, err) {
			return
		}
		markPageError(data, err)
	}
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		records = filterAttendanceByDate(records, date)
		data["DateFilter"] = date
	}
	data["Records"] = records
	data["AttendanceStatuses"] = model.AttendanceStatuses
	data["EmployeeOptions"] = h.employeeOptions(r.Context())
	h.render(w, r, data)
}

func filterAttendanceByDate(in []model.AttendanceRecord, date string) []model.AttendanceRecord {
	out := make([]model.AttendanceRecord, 0, len(in))
	for _, rec := range in {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out
}
