package httpx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/target/hr-console/internal/errors"
	"github.com/target/hr-console/internal/gateway"
)

// User-facing notification texts.
const (
	MsgNetworkFailure = "Unable to reach the HR service. Please try again."
	MsgMalformed      = "The HR service returned an unexpected response."
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgCanceled       = "The request was canceled."
	MsgUnexpected     = "Something went wrong. Please try again."
)

// NotificationFor maps a failure to the message and toast type shown to the user.
// A nil error yields empty strings.
func NotificationFor(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	if apperrors.IsValidation(err) {
		return apperrors.UserMessage(err, errMsgFixBelow), ToastError
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		switch gwErr.Kind {
		case gateway.KindNetwork:
			return MsgNetworkFailure, ToastError
		case gateway.KindRejected:
			if msg := strings.TrimSpace(gwErr.Message); msg != "" {
				return msg, ToastError
			}
			return fmt.Sprintf("Request failed (%d).", gwErr.Status), ToastError
		case gateway.KindMalformed:
			return MsgMalformed, ToastError
		case gateway.KindUnauthorized:
			return MsgSessionExpired, ToastInfo
		case gateway.KindCanceled:
			return MsgCanceled, ToastInfo
		}
	}
	if errors.Is(err, context.Canceled) {
		return MsgCanceled, ToastInfo
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgNetworkFailure, ToastError
	}
	return MsgUnexpected, ToastError
}

// Flash is a notification carried across a redirect.
type Flash struct {
	Message string `json:"m"`
	Type    string `json:"t"`
}

const (
	flashCookie = "flash"
	flashMaxAge = 60
)

// setFlash stores a notification for the next rendered page.
func (c CookieConfig) setFlash(w http.ResponseWriter, r *http.Request, f Flash) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.setTransient(w, r, flashCookie, base64.RawURLEncoding.EncodeToString(b), flashMaxAge)
}

// consumeFlash reads and clears a pending notification.
func (c CookieConfig) consumeFlash(w http.ResponseWriter, r *http.Request) (Flash, bool) {
	raw := readCookie(r, flashCookie)
	if raw == "" {
		return Flash{}, false
	}
	c.clear(w, r, flashCookie)

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Flash{}, false
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil || strings.TrimSpace(f.Message) == "" {
		return Flash{}, false
	}
	return f, true
}

// triggerToast sends the showToast event htmx dispatches after the swap.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil {
		return
	}
	HTMX(w).Toast(message, toastType)
}

// notifyAndRedirect completes a successful submission with a success toast on the target page.
func (h *UIHandlers) notifyAndRedirect(w http.ResponseWriter, r *http.Request, target, message string) {
	h.redirectWithFlash(w, r, target, Flash{Message: message, Type: ToastSuccess})
}

// failAndRedirect reports a failed action (such as a delete) on the target page.
func (h *UIHandlers) failAndRedirect(w http.ResponseWriter, r *http.Request, target string, err error) {
	if h.handleServiceError(w, r, err) {
		return
	}
	msg, toastType := NotificationFor(err)
	h.redirectWithFlash(w, r, target, Flash{Message: msg, Type: toastType})
}

// redirectWithFlash stores f for the next page and redirects there.
// HX-Redirect performs a full navigation, so htmx callers also get the flash cookie.
func (h *UIHandlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, target string, f Flash) {
	h.Cookies.setFlash(w, r, f)
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
