package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// Expression is a compiled JMESPath expression. The zero value matches nothing.
type Expression struct {
	compiled jmespath.JMESPath
}

// CompileExpression validates expr. An empty expression is allowed.
func CompileExpression(expr string) (Expression, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Expression{}, nil
	}
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return Expression{}, fmt.Errorf("invalid JMESPath expression %q: %w", expr, err)
	}
	return Expression{compiled: compiled}, nil
}

// Empty reports whether the expression is unset.
func (e Expression) Empty() bool { return e.compiled == nil }

// Search evaluates the expression against decoded JSON data.
func (e Expression) Search(data any) (any, error) {
	if e.compiled == nil {
		return data, nil
	}
	return e.compiled.Search(data)
}

// SearchString evaluates the expression against a raw JSON body and returns a
// string result. Non-JSON bodies and non-string results yield "".
func (e Expression) SearchString(body []byte) string {
	if e.compiled == nil || len(body) == 0 {
		return ""
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	res, err := e.compiled.Search(data)
	if err != nil {
		return ""
	}
	switch v := res.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		// Validation errors often arrive as a list of messages.
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

// Decode selects the payload with the expression (when set) and decodes it into out.
// Numbers pass through the selection as json.Number so large IDs stay exact.
func (e Expression) Decode(body []byte, out any) error {
	if e.compiled == nil {
		return json.Unmarshal(body, out)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return err
	}
	res, err := e.compiled.Search(data)
	if err != nil {
		return err
	}
	if res == nil {
		// Envelope missing: fall back to the whole document.
		res = data
	}
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
