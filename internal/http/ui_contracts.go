package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/target/hr-console/internal/domain/model"
)

func contractsMeta(mode FormMode) PageMeta {
	meta := PageMeta{Title: "Contracts Management", PageTitle: "Contracts", CurrentPage: PageContracts}
	if mode == FormModeEdit {
		meta.Title = "Edit Contract"
	}
	return meta
}

func newContractForm() model.ContractRequest {
	return model.ContractRequest{ContractType: model.ContractFullTime, Status: model.ContractActive}
}

// Contracts renders the contract list with the add form. ?status= filters the list.
// GET /contracts.
func (h *UIHandlers) Contracts(w http.ResponseWriter, r *http.Request) {
	data := h.NewTemplateData(r, contractsMeta(FormModeCreate)).
		With("Mode", string(FormModeCreate)).
		With("FormData", newContractForm()).
		Build()
	h.renderContractsPage(w, r, data)
}

// ActiveContracts renders the read-only list of active contracts.
// GET /active-contracts.
func (h *UIHandlers) ActiveContracts(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Active Contracts", CurrentPage: PageContracts},
		Fetch: func(ctx context.Context, data map[string]any) error {
			data["ReadOnly"] = true
			contracts, err := h.ContractSvc.ListActive(ctx)
			data["Contracts"] = contracts
			return err
		},
	})
}

// ContractView renders one contract.
// GET /contracts/{id}.
func (h *UIHandlers) ContractView(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContractSvc.Get(r.Context(), pathID(r))
	if err != nil {
		h.failAndRedirect(w, r, "/contracts", err)
		return
	}
	data := h.NewTemplateData(r, PageMeta{Title: "Contract Details", PageTitle: "Contracts", CurrentPage: PageContract}).
		With("Contract", c).
		Build()
	h.render(w, r, data)
}

// ContractEdit renders the list with the form prefilled for one contract.
// GET /contracts/{id}/edit.
func (h *UIHandlers) ContractEdit(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContractSvc.Get(r.Context(), pathID(r))
	if err != nil {
		h.failAndRedirect(w, r, "/contracts", err)
		return
	}
	data := h.NewTemplateData(r, contractsMeta(FormModeEdit)).
		With("Mode", string(FormModeEdit)).
		With("EditID", c.ID).
		With("FormData", model.ContractRequestFrom(c)).
		Build()
	h.renderContractsPage(w, r, data)
}

// ContractCreate adds a contract. The dashboard quick form posts here too.
// POST /contracts.
func (h *UIHandlers) ContractCreate(w http.ResponseWriter, r *http.Request) {
	h.submitContract(w, r, FormModeCreate)
}

// ContractUpdate saves changes to a contract.
// POST /contracts/{id}.
func (h *UIHandlers) ContractUpdate(w http.ResponseWriter, r *http.Request) {
	h.submitContract(w, r, FormModeEdit)
}

func (h *UIHandlers) submitContract(w http.ResponseWriter, r *http.Request, mode FormMode) {
	message := "Contract added successfully."
	if mode == FormModeEdit {
		message = "Contract updated successfully."
	}
	HandleForm(FormHandlerOpts[model.ContractRequest]{
		UI:     h,
		W:      w,
		R:      r,
		Mode:   mode,
		Parser: h.parseContractForm,
		Service: FormFuncs[model.ContractRequest, model.Contract]{
			CreateFunc: h.ContractSvc.Create,
			UpdateFunc: h.ContractSvc.Update,
		},
		Renderer:       h.renderContractsPage,
		SuccessURL:     returnPath(r, "/contracts"),
		SuccessMessage: message,
		PageMeta:       contractsMeta(mode),
	})
}

// ContractDelete removes a contract.
// POST /contracts/{id}/delete.
func (h *UIHandlers) ContractDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ContractSvc.Delete(r.Context(), pathID(r)); err != nil {
		h.failAndRedirect(w, r, "/contracts", err)
		return
	}
	h.notifyAndRedirect(w, r, "/contracts", "Contract deleted.")
}

func (h *UIHandlers) parseContractForm(r *http.Request) (model.ContractRequest, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return newContractForm(), map[string]string{"form": "The form could not be read."}
	}
	req := model.ContractRequest{
		EmployeeID:   model.ID(strings.TrimSpace(r.PostFormValue("employeeId"))),
		EmployeeName: r.PostFormValue("employeeName"),
		ContractType: model.ContractType(r.PostFormValue("contractType")),
		StartDate:    r.PostFormValue("startDate"),
		EndDate:      r.PostFormValue("endDate"),
		Status:       model.ContractStatus(r.PostFormValue("status")),
	}
	if strings.TrimSpace(req.EmployeeName) == "" {
		req.EmployeeName = h.employeeName(r.Context(), req.EmployeeID)
	}
	return req, validationErrors(req.Validate())
}

// renderContractsPage re-fetches contracts and the employee select options, then renders.
func (h *UIHandlers) renderContractsPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	contracts, err := h.ContractSvc.List(r.Context())
	if err != nil {
		if h.handleServiceError(w, r, err) {
			return
		}
		markPageError(data, err)
	}
	if status, ok := model.ParseContractStatus(r.URL.Query().Get("status")); ok {
		contracts = filterContracts(contracts, status)
		data["StatusFilter"] = string(status)
	}
	data["Contracts"] = contracts
	data["ContractTypes"] = model.ContractTypes
	data["ContractStatuses"] = model.ContractStatuses
	data["EmployeeOptions"] = h.employeeOptions(r.Context())
	h.render(w, r, data)
}

func filterContracts(in []model.Contract, status model.ContractStatus) []model.Contract {
	out := make([]model.Contract, 0, len(in))
	for _, c := range in {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// employeeOptions lists employees for select inputs. Failures leave the select empty;
// the form then falls back to a typed employee name.
func (h *UIHandlers) employeeOptions(ctx context.Context) []model.Employee {
	if h.EmployeeSvc == nil {
		return nil
	}
	employees, err := h.EmployeeSvc.List(ctx)
	if err != nil {
		h.logger().DebugContext(ctx, "employee options unavailable", "error", err)
		return nil
	}
	return employees
}

// employeeName resolves the display name for a selected employee, or "".
func (h *UIHandlers) employeeName(ctx context.Context, id model.ID) string {
	if id.IsZero() || h.EmployeeSvc == nil {
		return ""
	}
	emp, err := h.EmployeeSvc.Find(ctx, id)
	if err != nil {
		h.logger().DebugContext(ctx, "employee lookup failed", "id", id, "error", err)
		return ""
	}
	return emp.FullName()
}

func pathID(r *http.Request) model.ID {
	return model.ID(strings.TrimSpace(r.PathValue("id")))
}

// returnPath honours a safe "return_to" form field, such as the dashboard quick forms send.
func returnPath(r *http.Request, fallback string) string {
	if back := strings.TrimSpace(r.PostFormValue("return_to")); back != "" {
		if p := safeRedirectPath(back); p != "/" || back == "/" {
			return p
		}
	}
	return fallback
}
