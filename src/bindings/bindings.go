package bindings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/h5shell/native-app/src/content"
	"github.com/h5shell/native-app/src/options"
)

var errInvalidToken = errors.New("invalid session token")

// Dispatcher moves work onto the UI thread.
type Dispatcher interface {
	Dispatch(fn func())
}

// ShellView is the part of the shell the page can drive.
type ShellView interface {
	Reload()
	Redraw()
}

type NavigationHandler interface {
	HandleNavigation(event content.NavigationEvent)
}

type Bindings struct {
	options *options.Options
	ui      Dispatcher
	shell   ShellView
	host    NavigationHandler
}

func NewBindings(options *options.Options, ui Dispatcher, shell ShellView, host NavigationHandler) *Bindings {
	return &Bindings{options, ui, shell, host}
}

// BindHandler dispatches a call of the page binding to the exported method of
// the same name (first letter upper-cased). params is a JSON array holding
// the method's arguments.
//
// Binding calls arrive on whatever thread the engine uses, so every method
// hands its work to the UI thread and returns right away.
func (b *Bindings) BindHandler(method string, callId int, params string) error {
	slog.Debug("RPC call", "method", method, "id", callId, "params", params)
	if method == "" {
		return errors.New("empty method")
	}

	methodName := strings.ToUpper(method[:1]) + method[1:]
	if methodName == "BindHandler" {
		return fmt.Errorf("method not found: %s", method)
	}

	bindingType := reflect.TypeOf(b)
	binding, ok := bindingType.MethodByName(methodName)
	if !ok {
		return fmt.Errorf("method not found: %s (%s)", method, methodName)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(params), &raw); err != nil {
		return err
	}
	numIn := binding.Type.NumIn() - 1
	if len(raw) != numIn {
		return fmt.Errorf("wrong number of arguments (got %d, expected %d)", len(raw), numIn)
	}

	args := []reflect.Value{reflect.ValueOf(b)}
	for i := range raw {
		arg := reflect.New(binding.Type.In(1 + i))
		if err := json.Unmarshal(raw[i], arg.Interface()); err != nil {
			return err
		}
		args = append(args, arg.Elem())
	}

	err := parseResults(binding.Func.Call(args))
	if err != nil {
		slog.Warn("RPC call failed", "method", method, "err", err)
	}
	return err
}

func parseResults(results []reflect.Value) error {
	if len(results) == 0 {
		return nil
	}
	if err, ok := results[len(results)-1].Interface().(error); ok {
		return err
	}
	return nil
}

// Reload is wired to the error panel's reload button.
func (b *Bindings) Reload(token string) error {
	if token != b.options.Token {
		return errInvalidToken
	}
	b.ui.Dispatch(b.shell.Reload)
	return nil
}

// Overlay is called by every new document of the content origin once its DOM
// exists, so the overlay of the current state survives navigations.
func (b *Bindings) Overlay(token string) error {
	if token != b.options.Token {
		return errInvalidToken
	}
	b.ui.Dispatch(b.shell.Redraw)
	return nil
}

// Navigation reports that the document at href finished loading.
func (b *Bindings) Navigation(token string, href string) error {
	if token != b.options.Token {
		return errInvalidToken
	}
	b.ui.Dispatch(func() {
		b.host.HandleNavigation(content.NavigationEvent{URL: href})
	})
	return nil
}

// NavigationFailed reports that the engine could not load href.
func (b *Bindings) NavigationFailed(token string, href string, description string) error {
	if token != b.options.Token {
		return errInvalidToken
	}
	b.ui.Dispatch(func() {
		b.host.HandleNavigation(content.NavigationEvent{URL: href, Err: errors.New(description)})
	})
	return nil
}
