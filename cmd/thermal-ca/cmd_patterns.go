package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"thermal-ca/pkg/core"
)

func newPatternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in initial patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			show, _ := cmd.Flags().GetBool("show")
			out := cmd.OutOrStdout()

			type patternInfo struct {
				Name       string   `json:"name"`
				Width      int      `json:"width"`
				Height     int      `json:"height"`
				Population int      `json:"population"`
				Rows       []string `json:"rows,omitempty"`
			}

			var infos []patternInfo
			for _, name := range core.PatternNames() {
				p, _ := core.Pattern(name)
				info := patternInfo{Name: name, Width: p.W, Height: p.H, Population: p.Population()}
				if show {
					info.Rows = rows(p)
				}
				infos = append(infos, info)
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{"patterns": infos})
			}
			for _, info := range infos {
				fmt.Fprintf(out, "%-12s %3dx%-3d %3d cells\n", info.Name, info.Width, info.Height, info.Population)
				for _, r := range info.Rows {
					fmt.Fprintf(out, "  %s\n", r)
				}
			}
			fmt.Fprintln(out, "soup         random field, see --density")
			return nil
		},
	}
	cmd.Flags().Bool("show", false, "Draw each pattern")
	return cmd
}
