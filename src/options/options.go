package options

import "github.com/google/uuid"

// Content that is loaded when nothing else is configured.
const (
	DefaultHTMLFileName  = "index" // without ".html"
	DefaultContentFolder = ""      // empty means the root of the bundled assets
)

type Options struct {
	HTMLFileName    string
	ContentFolder   string
	AssetsDirectory string

	UI      UI
	Title   string
	Width   int
	Height  int
	Verbose bool
	Notify  bool

	// Token is handed to the page and must accompany every binding call, so
	// only documents that the shell itself loaded can drive it.
	Token string
}

func NewOptions() *Options {
	return &Options{
		HTMLFileName:  DefaultHTMLFileName,
		ContentFolder: DefaultContentFolder,

		UI:     GetPreferredUI(),
		Title:  "H5 Shell",
		Width:  800,
		Height: 600,

		Token: uuid.NewString(),
	}
}
