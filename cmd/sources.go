package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/provider"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// sourcesCmd provides a parent command for the available modules.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the available source modules",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Print only module ids")
	sourcesListCmd.SetOut(os.Stdout)
}

// sourcesListCmd displays every builtin module.
var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display every builtin module",
	Run: func(cmd *cobra.Command, args []string) {
		raw := lo.Must(cmd.Flags().GetBool("raw"))
		if !raw {
			cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Builtin:"))
		}

		current := viper.GetString(key.DefaultModule)
		for _, p := range provider.Builtins() {
			if raw {
				cmd.Println(p.ID)
				continue
			}

			line := icon.Get(icon.Module) + " " + p.Name + " " + style.Faint(p.ID)
			if p.RequiresAuth {
				line += " " + style.Fg(color.Yellow)(icon.Get(icon.Key)+" credentials required")
			}
			if p.ID == current {
				line += " " + style.Fg(color.Green)("(default)")
			}
			cmd.Println(line)
		}
	},
}

func lowerID(name string) string {
	p, ok := lo.Find(provider.Builtins(), func(p *provider.Provider) bool {
		return p.Name == name
	})
	if ok {
		return p.ID
	}
	return strings.ToLower(name)
}
