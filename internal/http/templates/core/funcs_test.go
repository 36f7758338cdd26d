package core

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDict(t *testing.T) {
	m, err := dict("ID", "employee", "Selected", 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ID": "employee", "Selected": 3}, m)

	_, err = dict("ID")
	require.Error(t, err)

	_, err = dict(1, "x")
	require.Error(t, err)
}

func TestDictInTemplate(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(Funcs(Deps{})).Parse(
		`{{define "pick"}}{{.ID}}={{.Selected}}{{end}}{{template "pick" (dict "ID" "dept" "Selected" .)}}`))

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, "Finance"))
	assert.Equal(t, "dept=Finance", buf.String())
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{int64(1234567), "1,234,567"},
		{-4500, "-4,500"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "badge-success", StatusClass("Active"))
	assert.Equal(t, "badge-success", StatusClass("present"))
	assert.Equal(t, "badge-warning", StatusClass("On Leave"))
	assert.Equal(t, "badge-danger", StatusClass("Absent"))
	assert.Equal(t, "badge-secondary", StatusClass("Terminated"))
	assert.Equal(t, "badge-light", StatusClass("pending"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AU", Initials("Alice Uwase"))
	assert.Equal(t, "H", Initials("hr@example.com"))
	assert.Equal(t, "JR", Initials("  jean  robert  paul "))
	assert.Equal(t, "?", Initials(""))
}

func TestOrDashAndFieldError(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "-", orDash(nil))
	assert.Equal(t, "Finance", orDash(" Finance "))

	errs := map[string]string{"email": "Enter a valid email address."}
	assert.Equal(t, "Enter a valid email address.", fieldError(errs, "email"))
	assert.Empty(t, fieldError(errs, "firstName"))
	assert.Empty(t, fieldError(nil, "email"))
}
