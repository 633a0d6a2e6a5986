package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/config"
	"github.com/soramod/soramod/filesystem"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/style"
	"github.com/soramod/soramod/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// lookupField returns the registered field or an error naming the closest key.
func lookupField(name string) (config.Field, error) {
	if field, ok := config.Default[name]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})

	return config.Field{}, fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)
}

// parseValue converts command line words to the type of the field's default.
func parseValue(field config.Field, raw []string) (any, error) {
	if len(raw) == 0 {
		return nil, errors.New("value is required")
	}

	switch field.Value.(type) {
	case []string:
		return raw, nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", field.Key, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", field.Key, raw[0])
		}
		return b, nil
	default:
		return strings.Join(raw, " "), nil
	}
}

// persistConfig writes viper's state, creating the file on first use.
func persistConfig() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}

	return err
}

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func success(format string, args ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().BoolP("json", "j", false, "Print fields as JSON")
	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe configuration fields",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		fields := lo.Values(config.Default)

		if len(args) > 0 {
			fields = make([]config.Field, 0, len(args))
			for _, name := range args {
				field, err := lookupField(name)
				handleErr(err)
				fields = append(fields, field)
			}
		}

		slices.SortFunc(fields, func(a, b config.Field) int {
			return strings.Compare(a.Key, b.Key)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		fmt.Fprint(cmd.OutOrStdout(), strings.Join(lo.Map(fields, func(f config.Field, _ int) string {
			return f.Pretty()
		}), "\n\n"))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the current value of a key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := lookupField(args[0])
		handleErr(err)

		fmt.Println(viper.Get(args[0]))
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value...>",
	Short:             "Change the value of a key",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := lookupField(args[0])
		handleErr(err)

		value, err := parseValue(field, args[1:])
		handleErr(err)

		viper.Set(field.Key, value)
		handleErr(persistConfig())

		success("set %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore keys to their defaults",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		switch {
		case all && len(args) > 0:
			handleErr(errors.New("--all takes no keys"))
		case !all && len(args) == 0:
			handleErr(errors.New("name a key or pass --all"))
		}

		fields := lo.Values(config.Default)
		if !all {
			fields = lo.Map(args, func(name string, _ int) config.Field {
				field, err := lookupField(name)
				handleErr(err)
				return field
			})
		}

		for _, field := range fields {
			viper.Set(field.Key, field.Value)
		}
		handleErr(persistConfig())

		if all {
			success("reset all keys")
			return
		}

		for _, field := range fields {
			success("reset %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
		}
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to disk",
	Run: func(cmd *cobra.Command, args []string) {
		path := where.ConfigFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !os.IsNotExist(err) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		success("wrote config to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the configuration file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(where.ConfigFile()))
		success("deleted config")
	},
}
