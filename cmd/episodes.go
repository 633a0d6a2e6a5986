package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(episodesCmd)

	episodesCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	episodesCmd.Flags().BoolP("ids", "i", false, "Print only episode ids, one per line")
	episodesCmd.SetOut(os.Stdout)
}

// episodesCmd lists the episodes of a title.
var episodesCmd = &cobra.Command{
	Use:   "episodes [id]",
	Short: "List the episodes of a title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reply := newHost().Episodes(cmd.Context(), selectedModule(), args[0])

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(encode(cmd, reply))
			return
		}

		replyErr(reply.Error)

		idsOnly := lo.Must(cmd.Flags().GetBool("ids"))
		for _, ep := range reply.Episodes {
			if idsOnly {
				cmd.Println(ep.ID)
				continue
			}

			number := strconv.FormatFloat(ep.Number, 'f', -1, 64)
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(fmt.Sprintf("%4s", number)), ep.Title)
			cmd.Println("     " + style.Faint(ep.ID))
		}
	},
}
