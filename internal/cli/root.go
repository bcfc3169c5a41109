// Package cli implements the lineproj command: it loads a scenario, applies
// configured wrap options and inspects the resulting projection.
package cli

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts
	// so the OSC 11 reply does not land in the input loop.
	_ = lipgloss.HasDarkBackground()
}

// NewRootCommand builds the command tree. Each tree owns its viper
// instance.
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()
	var (
		cfgFile  string
		closeLog func()
	)

	root := &cobra.Command{
		Use:   "lineproj",
		Short: "Inspect how injected text and soft wraps project source lines",
		Long: `lineproj loads a YAML scenario (text, injected text, wrap options) and
shows how source offsets map to wrapped output positions.

Wrap options from the scenario can be overridden with flags, LINEPROJ_*
environment variables or a config file.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(v, cfgFile); err != nil {
				return err
			}
			var err error
			closeLog, err = initLog(v)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .lineproj.yaml or ~/.config/lineproj/config.yaml)")
	pf.Int("column", 0, "wrap column in cells, overrides the scenario")
	pf.Int("tab-size", 0, "tab size, overrides the scenario")
	pf.String("wrap", "", "wrap mode: none, word or grapheme")
	pf.String("indent", "", "continuation indent: none, same, indent or deepIndent")
	pf.String("whitespace", "", "whitespace markers: none, all or trailing")
	pf.Bool("debug", false, "write a debug log (see log_file)")

	for key, flag := range map[string]string{
		"column":     "column",
		"tab_size":   "tab-size",
		"wrap":       "wrap",
		"indent":     "indent",
		"whitespace": "whitespace",
		"debug":      "debug",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newMapCommand(v),
		newRenderCommand(v),
		newExploreCommand(v),
	)
	return root
}

// Execute runs the root command.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}

// initLog routes the standard logger to the debug log file when debugging
// is on and discards it otherwise.
func initLog(v *viper.Viper) (func(), error) {
	if !v.GetBool("debug") {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := tea.LogToFile(v.GetString("log_file"), "lineproj")
	if err != nil {
		return nil, err
	}
	log.Printf("config file: %q", v.ConfigFileUsed())
	return func() { _ = f.Close() }, nil
}
