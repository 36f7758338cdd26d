package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/target/hr-console/internal/domain/model"
	apperrors "github.com/target/hr-console/internal/errors"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormService defines the Create and Update operations a form submits to.
type FormService[T any] interface {
	Create(ctx context.Context, req T) error
	Update(ctx context.Context, id model.ID, req T) error
}

// FormFuncs adapts a pair of typed service methods to FormService, discarding
// the returned entity.
type FormFuncs[T, R any] struct {
	CreateFunc func(ctx context.Context, req T) (R, error)
	UpdateFunc func(ctx context.Context, id model.ID, req T) (R, error)
}

// Create implements FormService.
func (f FormFuncs[T, R]) Create(ctx context.Context, req T) error {
	_, err := f.CreateFunc(ctx, req)
	return err
}

// Update implements FormService.
func (f FormFuncs[T, R]) Update(ctx context.Context, id model.ID, req T) error {
	_, err := f.UpdateFunc(ctx, id, req)
	return err
}

// FormRenderer renders the page hosting the form with the given data.
// Renderers re-fetch any lists shown next to the form.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	UI       *UIHandlers
	W        http.ResponseWriter
	R        *http.Request
	Mode     FormMode
	Parser   FormParser[T]
	Service  FormService[T]
	Renderer FormRenderer

	SuccessURL     string
	SuccessMessage string
	PageMeta       PageMeta
	// Optional: HTTP status code to set on validation errors (defaults to 200 for htmx swaps)
	ErrorStatus int
}

// HandleForm processes a create or update submission.
//
// Invalid input and failed service calls re-render the form with the entered
// values and an error notification. Success redirects to SuccessURL with a
// success notification.
//
//	HandleForm(FormHandlerOpts[model.EmployeeRequest]{
//	    UI: h, W: w, R: r, Mode: FormModeCreate,
//	    Parser: parseEmployeeForm,
//	    Service: FormFuncs[model.EmployeeRequest, model.Employee]{...},
//	    Renderer: h.renderEmployeesPage,
//	    SuccessURL: "/register",
//	})
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if !validateFormOptions(opts) {
		return
	}

	id, ok := checkFormID(opts)
	if !ok {
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(fieldErrors, errMsgFixBelow, data)
		return
	}

	if err := executeFormOperation(opts, id, data); err != nil {
		if opts.UI.handleServiceError(opts.W, opts.R, err) {
			return
		}
		msg, _ := NotificationFor(err)
		opts.renderFormError(fieldErrorsFor(err, msg), msg, data)
		return
	}

	message := opts.SuccessMessage
	if message == "" {
		message = "Saved successfully."
	}
	opts.UI.notifyAndRedirect(opts.W, opts.R, opts.SuccessURL, message)
}

func validateFormOptions[T any](opts FormHandlerOpts[T]) bool {
	if opts.UI == nil || opts.Parser == nil || opts.Service == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return false
	}

	switch opts.Mode {
	case FormModeEdit, FormModeCreate:
		return true
	default:
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return false
	}
}

// checkFormID returns the record ID in edit mode. Create mode yields an empty ID.
func checkFormID[T any](opts FormHandlerOpts[T]) (model.ID, bool) {
	if opts.Mode != FormModeEdit {
		return "", true
	}

	id := getFormID(opts)
	if id.IsZero() {
		http.NotFound(opts.W, opts.R)
		return "", false
	}
	return id, true
}

func executeFormOperation[T any](opts FormHandlerOpts[T], id model.ID, data T) error {
	if opts.Mode == FormModeEdit {
		return opts.Service.Update(opts.R.Context(), id, data)
	}
	return opts.Service.Create(opts.R.Context(), data)
}

func getFormID[T any](opts FormHandlerOpts[T]) model.ID {
	return model.ID(strings.TrimSpace(opts.R.PathValue("id")))
}

// fieldErrorsFor attaches a validation message to its field when the error names one.
func fieldErrorsFor(err error, msg string) map[string]string {
	if !apperrors.IsValidation(err) {
		return nil
	}
	if field := apperrors.GetField(err); field != "" {
		return map[string]string{field: msg}
	}
	return nil
}

// validationErrors converts a Validate() failure into the field error map a parser returns.
func validationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	field := apperrors.GetField(err)
	if field == "" {
		field = "form"
	}
	return map[string]string{field: apperrors.UserMessage(err, errMsgFixBelow)}
}

// renderFormError renders the form with errors and the submitted values.
func (fh FormHandlerOpts[T]) renderFormError(fieldErrors map[string]string, generalError string, data T) {
	fh.UI.logger().DebugContext(fh.R.Context(), "form submission rejected",
		"path", fh.R.URL.Path,
		"mode", string(fh.Mode),
		"fields", len(fieldErrors),
	)

	if fh.ErrorStatus != 0 && len(fieldErrors) > 0 {
		fh.W.WriteHeader(fh.ErrorStatus)
	}

	td := fh.UI.NewTemplateData(fh.R, fh.PageMeta).
		WithFieldErrors(fieldErrors).
		With("Mode", string(fh.Mode)).
		With("EditID", getFormID(fh))
	if generalError != "" {
		td.WithError(generalError)
	}
	td.With("FormData", data)

	fh.Renderer(fh.W, fh.R, td.Build())
}
