package cmd

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/style"
	"github.com/soramod/soramod/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	infoCmd.Flags().IntP("width", "w", 80, "Wrap the description at this width")
	infoCmd.SetOut(os.Stdout)
}

// infoCmd shows the details of a title.
var infoCmd = &cobra.Command{
	Use:   "info [id]",
	Short: "Display the details of a title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reply := newHost().Info(cmd.Context(), selectedModule(), args[0])

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(encode(cmd, reply))
			return
		}

		replyErr(reply.Error)

		width := lo.Must(cmd.Flags().GetInt("width"))
		info := reply.Info

		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color.Purple).
			Padding(0, 1)

		lines := []string{style.Title(info.Title)}
		if len(info.Aliases) > 0 {
			lines = append(lines, style.Faint(wordwrap.String(strings.Join(info.Aliases, ", "), width)))
		}
		if info.Airdate != "" {
			lines = append(lines, style.Fg(color.Yellow)(info.Airdate))
		}
		if info.Description != "" {
			lines = append(lines, "", wordwrap.String(info.Description, width))
		}
		lines = append(lines, "", icon.Get(icon.Episode)+" "+util.Quantify(len(info.Episodes), "episode", "episodes"))

		cmd.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	},
}
