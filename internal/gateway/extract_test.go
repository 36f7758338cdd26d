package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpression_SearchString(t *testing.T) {
	expr, err := CompileExpression("message || error || errors")
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message", body: `{"message":" Invalid date "}`, want: "Invalid date"},
		{name: "fallback field", body: `{"error":"Forbidden"}`, want: "Forbidden"},
		{name: "list of messages", body: `{"errors":["First name is required","Email is invalid"]}`, want: "First name is required; Email is invalid"},
		{name: "non-string result", body: `{"message":42}`, want: ""},
		{name: "not json", body: `oops`, want: ""},
		{name: "empty", body: ``, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expr.SearchString([]byte(tt.body)))
		})
	}
}

func TestExpression_Decode(t *testing.T) {
	var out []int
	empty, err := CompileExpression("  ")
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	require.NoError(t, empty.Decode([]byte(`[1,2]`), &out))
	assert.Equal(t, []int{1, 2}, out)

	data, err := CompileExpression("data")
	require.NoError(t, err)
	out = nil
	require.NoError(t, data.Decode([]byte(`{"data":[3]}`), &out))
	assert.Equal(t, []int{3}, out)

	// Missing envelope decodes the whole document.
	out = nil
	require.NoError(t, data.Decode([]byte(`[4,5]`), &out))
	assert.Equal(t, []int{4, 5}, out)
}

func TestCompileExpression_Invalid(t *testing.T) {
	_, err := CompileExpression("a ||")
	assert.Error(t, err)
}

func TestExpression_DecodeKeepsLargeIntegers(t *testing.T) {
	expr, err := CompileExpression("data")
	require.NoError(t, err)

	var out struct {
		ID    int64   `json:"id"`
		Total float64 `json:"total"`
	}
	require.NoError(t, expr.Decode([]byte(`{"data":{"id":9007199254740993,"total":12.5}}`), &out))
	assert.Equal(t, int64(9007199254740993), out.ID)
	assert.InDelta(t, 12.5, out.Total, 0)
}
