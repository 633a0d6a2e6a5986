package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/soramod/soramod/auth"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/provider"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd manages module client credentials stored in the system keyring.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage module client credentials stored in the system keyring",
}

func authModuleArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}

	p, ok := provider.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown module %s", args[0])
	}
	if !p.RequiresAuth {
		return fmt.Errorf("module %s does not use credentials", p.ID)
	}
	return nil
}

func completionAuthModules(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.FilterMap(provider.Builtins(), func(p *provider.Provider, _ int) (string, bool) {
		return p.ID, p.RequiresAuth
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	authCmd.AddCommand(authSetCmd)

	authSetCmd.Flags().String("client-id", "", "OAuth client id. Prompted when omitted")
	authSetCmd.Flags().String("client-secret", "", "OAuth client secret. Prompted when omitted")
}

// authSetCmd stores client credentials for a module.
var authSetCmd = &cobra.Command{
	Use:               "set [module]",
	Short:             "Store client credentials for a module",
	Args:              authModuleArg,
	ValidArgsFunction: completionAuthModules,
	Run: func(cmd *cobra.Command, args []string) {
		credentials := auth.Credentials{
			ClientID:     lo.Must(cmd.Flags().GetString("client-id")),
			ClientSecret: lo.Must(cmd.Flags().GetString("client-secret")),
		}

		if credentials.ClientID == "" {
			handleErr(survey.AskOne(&survey.Input{Message: "Client ID"}, &credentials.ClientID, survey.WithValidator(survey.Required)))
		}
		if credentials.ClientSecret == "" {
			handleErr(survey.AskOne(&survey.Password{Message: "Client secret"}, &credentials.ClientSecret, survey.WithValidator(survey.Required)))
		}

		credentials.ClientID = strings.TrimSpace(credentials.ClientID)
		credentials.ClientSecret = strings.TrimSpace(credentials.ClientSecret)

		handleErr(auth.Set(args[0], credentials))
		fmt.Printf("%s stored credentials for %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}

func init() {
	authCmd.AddCommand(authGetCmd)
	authGetCmd.SetOut(os.Stdout)
}

// authGetCmd shows which credentials a module will use.
var authGetCmd = &cobra.Command{
	Use:               "get [module]",
	Short:             "Show the client credentials a module will use",
	Args:              authModuleArg,
	ValidArgsFunction: completionAuthModules,
	Run: func(cmd *cobra.Command, args []string) {
		credentials := provider.Credentials(args[0])
		if !credentials.Complete() {
			handleErr(fmt.Errorf("no credentials for %s, run \"soramod auth set %s\"", args[0], args[0]))
		}

		cmd.Printf("%s %s\n", style.Fg(color.Purple)("Client ID:"), credentials.ClientID)
		cmd.Printf("%s %s\n", style.Fg(color.Purple)("Client secret:"), mask(credentials.ClientSecret))
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

// authDeleteCmd removes stored client credentials.
var authDeleteCmd = &cobra.Command{
	Use:               "delete [module]",
	Short:             "Remove the client credentials stored for a module",
	Aliases:           []string{"remove"},
	Args:              authModuleArg,
	ValidArgsFunction: completionAuthModules,
	Run: func(cmd *cobra.Command, args []string) {
		err := auth.Delete(args[0])
		if errors.Is(err, auth.ErrNotFound) {
			handleErr(fmt.Errorf("no credentials stored for %s", args[0]))
		}
		handleErr(err)

		fmt.Printf("%s deleted credentials for %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Fg(color.Purple)(args[0]))
	},
}

func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
