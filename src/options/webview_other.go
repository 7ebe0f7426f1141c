//go:build !windows

package options

// webkit (linux) and wkwebview (darwin) ship with the system
func isWebviewAvailable() bool {
	return true
}
