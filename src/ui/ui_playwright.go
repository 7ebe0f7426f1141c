package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/h5shell/native-app/src/mainthread"
	"github.com/h5shell/native-app/src/options"
	"github.com/playwright-community/playwright-go"
)

type PlaywrightUII struct {
	page        playwright.Page
	mainThread  *mainthread.Queue
	options     *options.Options
	origin      string
	bindHandler BindHandler
}

func createPlaywrightUII(options *options.Options) *PlaywrightUII {
	return &PlaywrightUII{options: options, mainThread: mainthread.New()}
}

func (pwui *PlaywrightUII) Run(ready func()) error {
	options := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(false),
		Args: []string{
			fmt.Sprintf("--window-size=%d,%d", pwui.options.Width, pwui.options.Height),
		},
		IgnoreDefaultArgs: []string{
			// disables "Chrome is being controlled by automated test software" banner
			"--enable-automation",
		},
	}

	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return fmt.Errorf("installing playwright: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("starting playwright: %w", err)
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(options)
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer browser.Close()

	pwui.page, err = browser.NewPage(playwright.BrowserNewPageOptions{
		NoViewport:        playwright.Bool(true),
		JavaScriptEnabled: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}
	defer pwui.page.Close()

	if err := pwui.initBinding(); err != nil {
		return err
	}
	for _, script := range getScripts(pwui.options, pwui.origin, false) {
		if err := pwui.page.AddInitScript(playwright.Script{Content: playwright.String(script)}); err != nil {
			return fmt.Errorf("adding init script: %w", err)
		}
	}

	pwui.page.OnClose(func(_ playwright.Page) {
		// this will wake-up the main thread which will then realize its time to exit
		pwui.mainThread.Close()
	})

	pwui.mainThread.Push(func() {
		if _, err := pwui.page.Evaluate(fmt.Sprintf("document.title=%q", pwui.options.Title)); err != nil {
			slog.Debug("setting title failed", "err", err)
		}
		ready()
	})
	pwui.mainThread.Loop()
	return nil
}

// Navigate hands the navigation to chromium and returns right away, so the
// main thread stays free to redraw the overlay in the new document while the
// load is in flight. The outcome comes back through the bind handler.
func (pwui *PlaywrightUII) Navigate(url string) {
	slog.Debug("navigate", "url", url)
	go pwui.navigate(url)
}

func (pwui *PlaywrightUII) navigate(url string) {
	response, err := pwui.page.Goto(url)
	if err != nil {
		pwui.report("navigationFailed", url, err.Error())
		return
	}

	// chromium may have ended up on a redirect target or its own error page
	landed := pwui.page.URL()
	if response != nil && response.Status() >= http.StatusBadRequest {
		pwui.report("navigationFailed", landed,
			fmt.Sprintf("the server responded with a status of %d (%s)", response.Status(), http.StatusText(response.Status())))
		return
	}
	pwui.report("navigation", landed)
}

func (pwui *PlaywrightUII) report(method string, args ...string) {
	if pwui.bindHandler == nil {
		return
	}
	params, err := navigationParams(pwui.options.Token, args...)
	if err != nil {
		slog.Error("encoding navigation report failed", "method", method, "err", err)
		return
	}
	if err := pwui.bindHandler(method, 0, params); err != nil {
		slog.Error("navigation report failed", "method", method, "err", err)
	}
}

func (pwui *PlaywrightUII) Eval(code string) {
	slog.Debug("eval", "code", code)
	if _, err := pwui.page.Evaluate(code); err != nil {
		slog.Error("eval failed", "err", err)
	}
}

func (pwui *PlaywrightUII) Dispatch(fn func()) {
	pwui.mainThread.Push(fn)
}

func (pwui *PlaywrightUII) Quit() {
	pwui.mainThread.Push(func() {
		pwui.page.Close()
	})
}

func (pwui *PlaywrightUII) initBinding() error {
	err := pwui.page.ExposeBinding(options.BindingName, func(source *playwright.BindingSource, args ...interface{}) interface{} {
		if len(args) != 3 {
			return errors.New(options.BindingName + "() expects 3 arguments")
		}
		if err := pwui.checkCaller(source.Frame.URL()); err != nil {
			return err.Error()
		}
		method, ok := args[0].(string)
		if !ok {
			return errors.New("method must be a string")
		}
		params, ok := args[2].(string)
		if !ok {
			return errors.New("params must be a string")
		}
		var callId int
		switch id := args[1].(type) {
		case int:
			callId = id
		case float64:
			callId = int(id)
		}

		if err := pwui.bindHandler(method, callId, params); err != nil {
			return err.Error()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("exposing %s: %w", options.BindingName, err)
	}
	return nil
}

func (pwui *PlaywrightUII) SetBindHandler(handler BindHandler) {
	pwui.bindHandler = handler
}

// checkCaller only lets documents from the content origin use the binding.
// about:blank is where the first overlay is drawn before any content loads.
func (pwui *PlaywrightUII) checkCaller(frameURL string) error {
	if frameURL == "about:blank" {
		return nil
	}
	callerOrigin, err := originOf(frameURL)
	if err != nil {
		return fmt.Errorf("failed to parse caller URL: %w", err)
	}
	if pwui.origin == "" || callerOrigin != pwui.origin {
		return fmt.Errorf("%s() is not allowed to be called from %q", options.BindingName, callerOrigin)
	}
	return nil
}

func (pwui *PlaywrightUII) SetContentOrigin(origin string) {
	pwui.origin = origin
}
