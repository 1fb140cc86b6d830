// Package web embeds the HTML templates and static assets so the binary
// is self-contained and the handler tests render real pages.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
