// Package webui holds the bundled web content shown by the shell.
// It lives at the module root so it can embed the sibling web/ directory.
package webui

import "embed"

// FS is the embedded web directory tree. web/ is the root of the bundled
// assets.
//
//go:embed web
var FS embed.FS
