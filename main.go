package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sqweek/dialog"

	"github.com/h5shell/native-app/src"
	"github.com/h5shell/native-app/src/options"
)

func main() {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:          "h5shell",
		Short:        "Show a bundled local web page in a native window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := options.Load(v, configFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			setupLogging(opt.Verbose)

			start := time.Now()
			if err := app.Run(opt); err != nil {
				dialog.Message("%s", err).Title("load error").Error()
				return err
			}

			if time.Since(start) < 2*time.Second {
				fmt.Println("App exited too quickly. Everything ok?")
				if runtime.GOOS == "windows" && opt.UI == options.WebviewUI {
					fmt.Println("Windows 10 users need to install the following program:")
					fmt.Println("https://developer.microsoft.com/en-us/microsoft-edge/webview2/")
				}
			}
			return nil
		},
	}

	root.Flags().StringVar(&configFile, "config", "", "Config file (default ./h5shell.yaml or the user config directory)")
	if err := options.BindFlags(v, root.Flags()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
