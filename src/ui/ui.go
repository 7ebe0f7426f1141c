package ui

import "github.com/h5shell/native-app/src/options"

// UII is the embedded browser surface.
//
// Run owns the UI thread. Navigate and Eval must only be called on that
// thread, everything else may be called from anywhere and uses Dispatch to
// get there.
type UII interface {
	Run(ready func()) error
	Navigate(url string)
	Eval(code string)
	Dispatch(fn func())
	SetBindHandler(handler BindHandler)
	// SetContentOrigin names the only origin allowed to call the binding.
	// It must be set before Run.
	SetContentOrigin(origin string)
	Quit()
}

type BindHandler func(method string, callId int, params string) error

func NewUI(opt *options.Options) UII {
	if opt.UI == options.PlaywrightUI {
		return createPlaywrightUII(opt)
	} else {
		return createWebviewUII(opt)
	}
}
