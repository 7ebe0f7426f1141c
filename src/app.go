package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/h5shell/native-app/src/bindings"
	"github.com/h5shell/native-app/src/content"
	"github.com/h5shell/native-app/src/helper"
	"github.com/h5shell/native-app/src/options"
	"github.com/h5shell/native-app/src/shell"
	"github.com/h5shell/native-app/src/ui"
	"github.com/h5shell/native-app/webui"
)

func Run(options *options.Options) error {
	root, err := AssetRoot(options)
	if err != nil {
		return err
	}

	server := content.NewServer()
	if err := server.Start(); err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Close(ctx); err != nil {
			slog.Warn("closing content server", "err", err)
		}
	}()

	surface := ui.NewUI(options)
	surface.SetContentOrigin(server.Origin())
	sh := shell.New(surface, options.Token)
	host := content.NewHost(root, options, server, surface)
	host.OnStateChange(sh.SetState)
	sh.Attach(host)
	if options.Notify {
		sh.OnChange(helper.NotifyFailure)
	}

	b := bindings.NewBindings(options, surface, sh, host)
	surface.SetBindHandler(b.BindHandler)

	slog.Info("starting", "ui", options.UI, "file", host.EntryName(), "folder", options.ContentFolder)
	return surface.Run(sh.Mount)
}

// AssetRoot returns the bundled assets, or the directory given with --assets.
func AssetRoot(options *options.Options) (fs.FS, error) {
	if options.AssetsDirectory == "" {
		return fs.Sub(webui.FS, "web")
	}
	info, err := os.Stat(options.AssetsDirectory)
	if err != nil {
		return nil, fmt.Errorf("assets directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets directory: %s is not a directory", options.AssetsDirectory)
	}
	return os.DirFS(options.AssetsDirectory), nil
}
