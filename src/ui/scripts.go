package ui

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/h5shell/native-app/src/options"
)

// getScripts returns the init scripts every new document runs before its own
// scripts. They only talk to the binding on the content origin, so no other
// document ever sees the session token.
//
// Every document asks for the current overlay once its DOM exists. webview
// has no navigation callbacks, so with reportLoad the document also reports
// its own load event (and the status of its own response, where the engine
// exposes it).
func getScripts(opt *options.Options, origin string, reportLoad bool) []string {
	scripts := []string{}

	js := fmt.Sprintf(`(function(){
if(location.origin!==%[3]q)return;
var token=%[2]q;
function call(method,args){if(window.%[1]s)window.%[1]s(method,0,JSON.stringify([token].concat(args)))}
addEventListener('DOMContentLoaded',function(){call('overlay',[])});`, options.BindingName, opt.Token, origin)
	if reportLoad {
		js += `
addEventListener('load',function(){
var entry=performance.getEntriesByType?performance.getEntriesByType('navigation')[0]:null;
if(entry&&entry.responseStatus>=400){call('navigationFailed',[location.href,'the server responded with a status of '+entry.responseStatus]);return}
call('navigation',[location.href])});`
	}
	js += "\n})()"
	scripts = append(scripts, js)

	return scripts
}

// navigationParams encodes the binding params for a navigation report the
// way the injected script would.
func navigationParams(token string, args ...string) (string, error) {
	encoded, err := json.Marshal(append([]string{token}, args...))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// originOf returns scheme://host of rawURL, the same form as location.origin.
func originOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}
