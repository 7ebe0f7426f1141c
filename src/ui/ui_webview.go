package ui

import (
	"fmt"
	"log/slog"

	"github.com/h5shell/native-app/src/options"
	webview_go "github.com/webview/webview_go"
)

type WebviewUII struct {
	webview     webview_go.WebView
	options     *options.Options
	origin      string
	bindHandler BindHandler
}

func createWebviewUII(options *options.Options) *WebviewUII {
	return &WebviewUII{
		options: options,
	}
}

func (wui *WebviewUII) Run(ready func()) error {
	wui.webview = webview_go.New(wui.options.Verbose)
	if wui.webview == nil {
		return fmt.Errorf("webview could not be created")
	}
	defer wui.webview.Destroy()

	wui.webview.SetTitle(wui.options.Title)
	wui.webview.SetSize(wui.options.Width, wui.options.Height, webview_go.HintNone)

	err := wui.webview.Bind(options.BindingName, func(method string, callId int, params string) error {
		return wui.bindHandler(method, callId, params)
	})
	if err != nil {
		return fmt.Errorf("binding %s: %w", options.BindingName, err)
	}

	for _, script := range getScripts(wui.options, wui.origin, true) {
		wui.webview.Init(script)
	}

	wui.webview.Dispatch(ready)
	wui.webview.Run()
	return nil
}

func (wui *WebviewUII) Navigate(url string) {
	slog.Debug("navigate", "url", url)
	wui.webview.Navigate(url)
}

func (wui *WebviewUII) Eval(code string) {
	slog.Debug("eval", "code", code)
	wui.webview.Eval(code)
}

func (wui *WebviewUII) Dispatch(fn func()) {
	wui.webview.Dispatch(fn)
}

func (wui *WebviewUII) Quit() {
	wui.webview.Dispatch(func() {
		wui.webview.Terminate()
	})
}

func (wui *WebviewUII) SetBindHandler(handler BindHandler) {
	wui.bindHandler = handler
}

func (wui *WebviewUII) SetContentOrigin(origin string) {
	wui.origin = origin
}
