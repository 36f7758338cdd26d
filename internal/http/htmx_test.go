package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWantsPartial(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "plain browser request", want: false},
		{name: "htmx request", headers: map[string]string{"Hx-Request": "true"}, want: true},
		{name: "boosted link", headers: map[string]string{"Hx-Request": "true", "Hx-Boosted": "true"}, want: true},
		{
			name:    "history restore gets the full page",
			headers: map[string]string{"Hx-Request": "true", "Hx-History-Restore-Request": "true"},
			want:    false,
		},
		{name: "header value is case-insensitive", headers: map[string]string{"Hx-Request": "TRUE"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/contracts", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, WantsPartial(r))
		})
	}
}

func TestSetHXTrigger_MergesEvents(t *testing.T) {
	rr := httptest.NewRecorder()
	SetHXTrigger(rr, eventNavActivate, map[string]string{"path": "/contracts"})
	SetHXTrigger(rr, eventShowToast, map[string]string{"message": "Saved", "type": "success"})
	SetHXTrigger(rr, "refresh", nil)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(rr.Header().Get("Hx-Trigger")), &payload))
	assert.Len(t, payload, 3)
	assert.Equal(t, map[string]any{"path": "/contracts"}, payload[eventNavActivate])
	assert.Equal(t, true, payload["refresh"])
}

func TestSetHXTrigger_ReplacesGarbageHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	rr.Header().Set("Hx-Trigger", "not-json")
	SetHXTrigger(rr, eventShowToast, map[string]string{"message": "Hi"})

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(rr.Header().Get("Hx-Trigger")), &payload))
	assert.Len(t, payload, 1)
	assert.Contains(t, payload, eventShowToast)
}
