package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports whether the upstream services of every module are reachable.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the upstream services of every module are reachable",
	Run: func(cmd *cobra.Command, args []string) {
		var failed int

		for _, m := range newHost().Modules() {
			pinger, ok := m.(source.Pinger)
			if !ok {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Mark), m.Name(), style.Faint("no check available"))
				continue
			}

			if err := pinger.Ping(cmd.Context()); err != nil {
				failed++
				printCheckFailure(cmd, m.Name(), err)
				continue
			}

			cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), m.Name())
		}

		if failed > 0 {
			handleErr(fmt.Errorf("%d module(s) unavailable", failed))
		}
	},
}

func printCheckFailure(cmd *cobra.Command, name string, err error) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.Red).
		Padding(0, 1)

	title := style.New().Bold(true).Foreground(color.Red).Render(fmt.Sprintf("%s %s", icon.Get(icon.Fail), name))
	body := source.Describe(err)

	var authErr *source.AuthError
	if errors.As(err, &authErr) {
		body += fmt.Sprintf("\n\nStore credentials with:\n  %s", style.Bold("soramod auth set "+lowerID(name)))
	}

	cmd.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, body)))
}
