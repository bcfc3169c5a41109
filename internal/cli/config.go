package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iw2rmb/lineproj/internal/scenario"
	"github.com/iw2rmb/lineproj/linebreaks"
	"github.com/iw2rmb/lineproj/render"
	"github.com/iw2rmb/lineproj/viewmodel"
)

const defaultLogFile = "lineproj-debug.log"

func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetDefault("log_file", defaultLogFile)
	v.SetEnvPrefix("LINEPROJ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	// Lookup order: .lineproj.yaml in the working directory, then
	// ~/.config/lineproj/config.yaml.
	if _, err := os.Stat(".lineproj.yaml"); err == nil {
		v.SetConfigFile(".lineproj.yaml")
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "lineproj"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// wrapOverride returns the wrap options set through flags, environment or
// config file. Keys that were not set leave the scenario value alone.
func wrapOverride(v *viper.Viper) (func(*linebreaks.Options), error) {
	var edits []func(*linebreaks.Options)

	if v.IsSet("wrap") {
		mode, err := linebreaks.ParseWrapMode(v.GetString("wrap"))
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(o *linebreaks.Options) { o.Mode = mode })
	}
	if v.IsSet("indent") {
		indent, err := linebreaks.ParseWrapIndent(v.GetString("indent"))
		if err != nil {
			return nil, err
		}
		edits = append(edits, func(o *linebreaks.Options) { o.Indent = indent })
	}
	if v.IsSet("column") {
		column := v.GetInt("column")
		edits = append(edits, func(o *linebreaks.Options) { o.Column = column })
	}
	if v.IsSet("tab_size") {
		tabSize := v.GetInt("tab_size")
		if tabSize <= 0 {
			return nil, fmt.Errorf("tab size must be positive, got %d", tabSize)
		}
		edits = append(edits, func(o *linebreaks.Options) { o.TabSize = tabSize })
	}

	return func(o *linebreaks.Options) {
		for _, edit := range edits {
			edit(o)
		}
	}, nil
}

// loadLines reads a scenario and projects it with the configured
// overrides.
func loadLines(v *viper.Viper, path string) (*scenario.Scenario, *viewmodel.Lines, error) {
	s, err := scenario.Load(path)
	if err != nil {
		return nil, nil, err
	}
	override, err := wrapOverride(v)
	if err != nil {
		return nil, nil, err
	}
	lines, err := s.Lines(override)
	if err != nil {
		return nil, nil, err
	}
	if v.IsSet("whitespace") {
		ws, err := render.ParseWhitespaceMode(v.GetString("whitespace"))
		if err != nil {
			return nil, nil, err
		}
		ro := lines.Config().Render
		ro.Whitespace = ws
		lines.SetRender(ro)
	}
	return s, lines, nil
}
