package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/lineproj/render"
	"github.com/iw2rmb/lineproj/viewmodel"
)

// injectedStyles colors injected text by style key.
var injectedStyles = map[string]lipgloss.Style{
	"type":    lipgloss.NewStyle().Foreground(lipgloss.Color("109")).Italic(true),
	"comment": lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
}

func viewStyle() render.Style {
	st := render.DefaultStyle()
	st.InjectedStyleForKey = func(key string) (lipgloss.Style, bool) {
		s, ok := injectedStyles[key]
		return s, ok
	}
	return st
}

var gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

func newRenderCommand(v *viper.Viper) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "render <scenario.yaml>",
		Short: "Print the wrapped view of a scenario",
		Long: `Print every view line of a scenario with injected text styled. The gutter
shows the model row of each view line, or a dot on continuation lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, lines, err := loadLines(v, args[0])
			if err != nil {
				return err
			}
			for _, l := range renderLines(lines, viewStyle(), plain) {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print without styling")
	return cmd
}

func renderLines(lines *viewmodel.Lines, st render.Style, plain bool) []string {
	out := make([]string, 0, lines.ViewLineCount())
	width := len(fmt.Sprint(lines.LineCount()))
	for vr := 0; vr < lines.ViewLineCount(); vr++ {
		model := lines.ViewToModel(viewmodel.ViewPos{Row: vr})
		gutter := fmt.Sprintf("%*s │ ", width, "·")
		if lines.FirstViewRow(model.Row) == vr {
			gutter = fmt.Sprintf("%*d │ ", width, model.Row+1)
		}
		res := lines.RenderViewLine(vr)
		if plain {
			out = append(out, gutter+res.Content())
			continue
		}
		out = append(out, gutterStyle.Render(gutter)+res.Render(st))
	}
	return out
}
