// Package overlay decides what is drawn over the web content for a load
// state and renders it into the current document.
package overlay

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/h5shell/native-app/src/state"
)

// ElementID is the id of the element the overlay is mounted as.
const ElementID = "h5shell-overlay"

type Kind int

const (
	// KindNone leaves the content untouched
	KindNone Kind = iota

	// KindSpinner dims the content and shows a centered spinner
	KindSpinner

	// KindErrorPanel covers the content with the error panel
	KindErrorPanel
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSpinner:
		return "spinner"
	case KindErrorPanel:
		return "error panel"
	}
	return "unknown"
}

type Overlay struct {
	Kind        Kind
	Heading     string
	Description string
	Action      string
}

// For returns the overlay for s. At most one overlay exists per state.
func For(s state.LoadState) Overlay {
	switch s.Kind {
	case state.KindLoading:
		return Overlay{Kind: KindSpinner}
	case state.KindFailure:
		return Overlay{
			Kind:        KindErrorPanel,
			Heading:     "load error",
			Description: s.Description(),
			Action:      "reload",
		}
	}
	return Overlay{Kind: KindNone}
}

func (o Overlay) Visible() bool {
	return o.Kind != KindNone
}

//go:embed overlay.html
var overlayTemplate string

var templates = template.Must(template.New("overlay").Parse(overlayTemplate))

type templateData struct {
	Overlay
	Binding string
	Token   string
}

// HTML renders the overlay markup. The reload button calls the page binding
// with token. KindNone renders nothing.
func (o Overlay) HTML(binding string, token string) (string, error) {
	var name string
	switch o.Kind {
	case KindSpinner:
		name = "spinner"
	case KindErrorPanel:
		name = "error"
	default:
		return "", nil
	}

	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, templateData{o, binding, token}); err != nil {
		return "", fmt.Errorf("rendering %s overlay: %w", o.Kind, err)
	}
	return sb.String(), nil
}

// Script returns JavaScript that replaces whatever overlay the current
// document shows with o.
func (o Overlay) Script(binding string, token string) (string, error) {
	html, err := o.HTML(binding, token)
	if err != nil {
		return "", err
	}
	encoded, err := json.Marshal(html)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(function(){var old=document.getElementById(%[1]q);if(old)old.remove();var html=%[2]s;if(!html)return;var el=document.createElement('div');el.id=%[1]q;el.innerHTML=html;(document.body||document.documentElement).appendChild(el)})()", ElementID, encoded), nil
}
