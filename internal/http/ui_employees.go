package httpx

import (
	"net/http"

	"github.com/target/hr-console/internal/domain/model"
)

func employeesMeta(mode FormMode) PageMeta {
	meta := PageMeta{Title: "Employee Registration", CurrentPage: PageEmployees}
	if mode == FormModeEdit {
		meta.Title = "Edit Employee"
	}
	return meta
}

// Employees renders the registration form and the employee list.
// GET /register.
func (h *UIHandlers) Employees(w http.ResponseWriter, r *http.Request) {
	data := h.NewTemplateData(r, employeesMeta(FormModeCreate)).
		With("Mode", string(FormModeCreate)).
		With("FormData", model.EmployeeRequest{}).
		Build()
	h.renderEmployeesPage(w, r, data)
}

// EmployeeEdit renders the list with the form prefilled for one employee.
// GET /register/{id}/edit.
func (h *UIHandlers) EmployeeEdit(w http.ResponseWriter, r *http.Request) {
	emp, err := h.EmployeeSvc.Find(r.Context(), pathID(r))
	if err != nil {
		h.failAndRedirect(w, r, "/register", err)
		return
	}
	data := h.NewTemplateData(r, employeesMeta(FormModeEdit)).
		With("Mode", string(FormModeEdit)).
		With("EditID", emp.ID).
		With("FormData", model.EmployeeRequestFrom(emp)).
		Build()
	h.renderEmployeesPage(w, r, data)
}

// EmployeeCreate registers a new employee.
// POST /register.
func (h *UIHandlers) EmployeeCreate(w http.ResponseWriter, r *http.Request) {
	h.submitEmployee(w, r, FormModeCreate)
}

// EmployeeUpdate saves changes to an employee.
// POST /register/{id}.
func (h *UIHandlers) EmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	h.submitEmployee(w, r, FormModeEdit)
}

func (h *UIHandlers) submitEmployee(w http.ResponseWriter, r *http.Request, mode FormMode) {
	message := "Employee registered successfully."
	if mode == FormModeEdit {
		message = "Employee updated successfully."
	}
	HandleForm(FormHandlerOpts[model.EmployeeRequest]{
		UI:     h,
		W:      w,
		R:      r,
		Mode:   mode,
		Parser: parseEmployeeForm,
		Service: FormFuncs[model.EmployeeRequest, model.Employee]{
			CreateFunc: h.EmployeeSvc.Create,
			UpdateFunc: h.EmployeeSvc.Update,
		},
		Renderer:       h.renderEmployeesPage,
		SuccessURL:     "/register",
		SuccessMessage: message,
		PageMeta:       employeesMeta(mode),
	})
}

// EmployeeDelete removes an employee.
// POST /register/{id}/delete.
func (h *UIHandlers) EmployeeDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.EmployeeSvc.Delete(r.Context(), pathID(r)); err != nil {
		h.failAndRedirect(w, r, "/register", err)
		return
	}
	h.notifyAndRedirect(w, r, "/register", "Employee deleted.")
}

func parseEmployeeForm(r *http.Request) (model.EmployeeRequest, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return model.EmployeeRequest{}, map[string]string{"form": "The form could not be read."}
	}
	req := model.EmployeeRequest{
		FirstName:  r.PostFormValue("firstName"),
		LastName:   r.PostFormValue("lastName"),
		Department: r.PostFormValue("department"),
		Position:   r.PostFormValue("position"),
		Email:      r.PostFormValue("email"),
	}
	return req, validationErrors(req.Validate())
}

// renderEmployeesPage re-fetches the employee list and departments, then renders.
func (h *UIHandlers) renderEmployeesPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	employees, err := h.EmployeeSvc.List(r.Context())
	if err != nil {
		if h.handleServiceError(w, r, err) {
			return
		}
		markPageError(data, err)
	}
	data["Employees"] = employees

	// Departments only feed the select; without them the field is free text.
	if h.Departments != nil {
		depts, derr := h.Departments.List(r.Context())
		if derr != nil {
			h.logger().DebugContext(r.Context(), "departments unavailable", "error", derr)
		}
		data["Departments"] = depts
	}
	h.render(w, r, data)
}
