package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	graphemeutil "github.com/iw2rmb/lineproj/internal/grapheme"
	"github.com/iw2rmb/lineproj/projection"
	"github.com/iw2rmb/lineproj/viewmodel"
)

// MapEntry is one source position and where it lands in the view.
type MapEntry struct {
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	None  string `yaml:"none"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Back  string `yaml:"back"`
	Ok    bool   `yaml:"ok"`
}

func newMapCommand(v *viper.Viper) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "map <scenario.yaml>",
		Short: "Print the view position of every source offset",
		Long: `Print, for every source offset of every line, the view position under
none, left and right affinity, and the model position the none position
maps back to.

Examples:
  lineproj map hints.yaml
  lineproj map hints.yaml --column 20 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, lines, err := loadLines(v, args[0])
			if err != nil {
				return err
			}
			return writeMap(cmd.OutOrStdout(), format, mapEntries(lines))
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or yaml")
	return cmd
}

func mapEntries(lines *viewmodel.Lines) []MapEntry {
	var entries []MapEntry
	for row := 0; row < lines.LineCount(); row++ {
		n := graphemeutil.Count(lines.Line(row))
		for col := 0; col <= n; col++ {
			pos := viewmodel.Pos{Row: row, Col: col}
			none := lines.ModelToView(pos, projection.AffinityNone)
			back := lines.ViewToModel(none)
			entries = append(entries, MapEntry{
				Row:   row,
				Col:   col,
				None:  none.String(),
				Left:  lines.ModelToView(pos, projection.AffinityLeft).String(),
				Right: lines.ModelToView(pos, projection.AffinityRight).String(),
				Back:  back.String(),
				Ok:    back == pos,
			})
		}
	}
	return entries
}

func writeMap(w io.Writer, format string, entries []MapEntry) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join([]string{"POS", "NONE", "LEFT", "RIGHT", "BACK", "OK"}, "\t"))
		for _, e := range entries {
			ok := "yes"
			if !e.Ok {
				ok = "NO"
			}
			fmt.Fprintln(tw, strings.Join([]string{
				viewmodel.Pos{Row: e.Row, Col: e.Col}.String(),
				e.None, e.Left, e.Right, e.Back, ok,
			}, "\t"))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
