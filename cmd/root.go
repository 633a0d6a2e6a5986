// Package cmd implements the command-line interface for soramod.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/constant"
	"github.com/soramod/soramod/host"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/log"
	"github.com/soramod/soramod/provider"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.Names(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("module", "m", "", "Module to query")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("module", completionModules))
	lo.Must0(viper.BindPFlag(key.DefaultModule, rootCmd.PersistentFlags().Lookup("module")))
}

// rootCmd defines the entry point for the soramod application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Search, inspect and resolve anime streams from source modules",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Search, inspect and resolve anime streams from source modules"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		_ = cmd.Help()
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func completionModules(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string {
		return p.ID
	}), cobra.ShellCompDirectiveNoFileComp
}

// newHost builds every builtin module from the configuration.
func newHost() *host.Host {
	env := provider.NewEnv()

	modules := make([]source.Module, 0, len(provider.Builtins()))
	for _, p := range provider.Builtins() {
		m, err := p.Create(env)
		if err != nil {
			log.Warnf("skipping module %s: %v", p.ID, err)
			continue
		}
		modules = append(modules, m)
	}

	return host.New(modules...)
}

// selectedModule returns the module id chosen by flag or configuration.
func selectedModule() string {
	id := viper.GetString(key.DefaultModule)
	if _, ok := provider.Get(id); !ok {
		handleErr(&source.NotFoundError{What: fmt.Sprintf("module %q", id)})
	}
	return id
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(source.Describe(err), " \n"))
		os.Exit(1)
	}
}

// replyErr exits when a host reply carries an error message.
func replyErr(message string) {
	if message != "" {
		log.Error(message)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), message)
		os.Exit(1)
	}
}
