// Package hrconsole embeds the console's templates and static assets.
package hrconsole

import "embed"

// StaticFS holds frontend/static, served under /static/ outside dev mode.
//
//go:embed all:frontend/static
var StaticFS embed.FS

// TemplateFS holds frontend/templates.
//
//go:embed all:frontend/templates
var TemplateFS embed.FS
