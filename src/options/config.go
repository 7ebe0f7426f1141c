package options

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "H5SHELL"

// Config keys, shared by the config file, H5SHELL_* variables and flags.
const (
	KeyFile    = "file"
	KeyFolder  = "folder"
	KeyAssets  = "assets"
	KeyUI      = "ui"
	KeyTitle   = "title"
	KeyWidth   = "width"
	KeyHeight  = "height"
	KeyNotify  = "notify"
	KeyVerbose = "verbose"
)

// BindFlags registers the command line flags and binds them to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	defaults := NewOptions()

	flags.String(KeyFile, defaults.HTMLFileName, "Name of the HTML entry file, without \".html\"")
	flags.String(KeyFolder, defaults.ContentFolder, "Folder below the assets root that holds the entry file")
	flags.String(KeyAssets, "", "Serve content from this directory instead of the bundled assets")
	flags.String(KeyUI, "", "Browser surface to use (webview or playwright)")
	flags.String(KeyTitle, defaults.Title, "Window title")
	flags.Int(KeyWidth, defaults.Width, "Window width")
	flags.Int(KeyHeight, defaults.Height, "Window height")
	flags.Bool(KeyNotify, false, "Show a desktop notification when loading fails")
	flags.Bool(KeyVerbose, false, "Enable verbose logging")

	for _, key := range []string{KeyFile, KeyFolder, KeyAssets, KeyUI, KeyTitle, KeyWidth, KeyHeight, KeyNotify, KeyVerbose} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load builds Options from defaults, the config file, the environment and
// any flags bound with BindFlags, in increasing order of precedence.
// configFile may be empty, in which case h5shell.yaml is looked up in the
// working directory and in GetDefaultConfigDirectory.
func Load(v *viper.Viper, configFile string) (*Options, error) {
	options := NewOptions()

	v.SetDefault(KeyFile, options.HTMLFileName)
	v.SetDefault(KeyFolder, options.ContentFolder)
	v.SetDefault(KeyAssets, "")
	v.SetDefault(KeyUI, "")
	v.SetDefault(KeyTitle, options.Title)
	v.SetDefault(KeyWidth, options.Width)
	v.SetDefault(KeyHeight, options.Height)
	v.SetDefault(KeyNotify, false)
	v.SetDefault(KeyVerbose, false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("h5shell")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(GetDefaultConfigDirectory())
	}
	if err := v.ReadInConfig(); err != nil {
		// the config file is optional unless it was named explicitly
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	options.HTMLFileName = strings.TrimSuffix(v.GetString(KeyFile), ".html")
	options.ContentFolder = v.GetString(KeyFolder)
	options.AssetsDirectory = v.GetString(KeyAssets)
	options.Title = v.GetString(KeyTitle)
	options.Width = v.GetInt(KeyWidth)
	options.Height = v.GetInt(KeyHeight)
	options.Notify = v.GetBool(KeyNotify)
	options.Verbose = v.GetBool(KeyVerbose)

	ui, err := validateUI(v.GetString(KeyUI))
	if err != nil {
		return nil, err
	}
	options.UI = ui

	if options.HTMLFileName == "" {
		return nil, errors.New("html file name must not be empty")
	}
	if options.Width <= 0 || options.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", options.Width, options.Height)
	}
	return options, nil
}
