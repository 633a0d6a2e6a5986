package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON array")
	searchCmd.SetOut(os.Stdout)
}

// searchCmd looks a title up in the selected module.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the selected module for titles",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		module := selectedModule()
		results := newHost().Search(cmd.Context(), module, joinArgs(args))

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(encode(cmd, results))
			return
		}

		if len(results) == 0 {
			cmd.Printf("%s nothing found\n", icon.Get(icon.Search))
			return
		}

		for i, r := range results {
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%2d", i)), style.Bold(r.Title))
			cmd.Println("   " + style.Faint(r.ID))
		}
	},
}

func encode(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
