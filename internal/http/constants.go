package httpx

// CurrentPage constants identify pages in templates and navigation.
const (
	PageDashboard       = "dashboard"
	PageEmployees       = "employees"
	PageContracts       = "contracts"
	PageContract        = "contract" // contract detail view
	PageAttendance      = "attendance"
	PageAttendanceEntry = "attendance-entry" // single record view
	PageReport          = "report"
	PageNotFound        = "not-found"
	PageLogout          = "logout"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	// FormModeEdit indicates the form is in edit mode.
	FormModeEdit FormMode = "edit"
	// FormModeCreate indicates the form is in create mode.
	FormModeCreate FormMode = "create"
)

// Toast types understood by the client-side notification script.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageDashboard:       "dashboard-content",
	PageEmployees:       "employees-content",
	PageContracts:       "contracts-content",
	PageContract:        "contract-view-content",
	PageAttendance:      "attendance-content",
	PageAttendanceEntry: "attendance-view-content",
	PageReport:          "report-content",
	PageNotFound:        "not-found-content",
	PageLogout:          "logout-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
