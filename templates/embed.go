// Package templates provides the embedded templates for generated CI files.
package templates

import "embed"

// FS contains the embedded templates. Each file is named after the output
// it renders with a ".tmpl" suffix.
//
//go:embed ci/*.tmpl
var FS embed.FS
