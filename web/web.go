package web

import "embed"

// Files holds the embedded templates and static assets
//
//go:embed templates static
var Files embed.FS
