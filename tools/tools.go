//go:build tools
// +build tools

// Package tools documents the development tools used by hr-console.
// They run through `go run` or a global `go install` and stay out of go.mod.
package tools

// Development tools:
//
// Air - live reload of cmd/hr-console while editing templates and handlers
//   Install: go install github.com/air-verse/air@v1.63.0
//   Docs: https://github.com/air-verse/air
//
// mockgen - regenerates internal/mocks from internal/ports
//   Run: go generate ./internal/mocks/...
//   Pinned in internal/mocks/generate.go (go.uber.org/mock/mockgen@v0.6.0)
