package options

import "fmt"

// BindingName is the global function the page calls to reach the shell.
const BindingName = "h5shell"

type UI = string

const (
	PlaywrightUI UI = "playwright"
	WebviewUI    UI = "webview"
)

func GetPreferredUI() UI {
	if isWebviewAvailable() {
		return WebviewUI
	}
	return PlaywrightUI
}

func validateUI(ui UI) (UI, error) {
	switch ui {
	case "":
		return GetPreferredUI(), nil
	case WebviewUI, PlaywrightUI:
		return ui, nil
	}
	return "", fmt.Errorf("unknown ui %q (expected %q or %q)", ui, WebviewUI, PlaywrightUI)
}
