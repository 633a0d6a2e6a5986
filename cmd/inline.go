package cmd

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soramod/soramod/anilist"
	"github.com/soramod/soramod/filesystem"
	"github.com/soramod/soramod/inline"
	"github.com/soramod/soramod/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute")
	inlineCmd.Flags().StringP("anime", "a", "", "Criteria for selecting an anime from the search results")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting episodes from the chosen anime")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("resolve", "r", false, "Resolve a stream for every selected episode")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.MarkFlagRequired("query"))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Search, pick, list and resolve in a single non-interactive run.

Anime selectors:
  first - first anime in the list
  last - last anime in the list
  exact - anime whose title equals the query
  closest - anime whose title is closest to the query
  [number] - select anime by index (starting from 0)

Episode selectors:
  first - first episode in the list
  last - last episode in the list
  all - all episodes in the list
  [number] - select episode by index (starting from 0)
  [from]-[to] - select episodes by range
  @[text]@ - select episodes whose title fuzzily matches text

When using the json flag anime selector could be omitted. That way, it will select all animes`,
	Example: `  soramod inline -q frieren -a first -e 0-2 -r
  soramod inline -m animeonsen -q mushishi -a closest -e last -r -j`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("anime"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		query := lo.Must(cmd.Flags().GetString("query"))

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(file.Close)
			writer = file
		}

		animePicker := mo.None[inline.AnimePicker]()
		if animeFlag := lo.Must(cmd.Flags().GetString("anime")); animeFlag != "" {
			kind, value := animeFlag, query
			if _, err := inline.ParseAnimePicker("index", animeFlag); err == nil {
				kind, value = "index", animeFlag
			}

			fn, err := inline.ParseAnimePicker(kind, value)
			handleErr(err)
			animePicker = mo.Some(fn)
		}

		episodesFilter := mo.None[inline.EpisodesFilter]()
		if episodeFlag := lo.Must(cmd.Flags().GetString("episodes")); episodeFlag != "" {
			fn, err := inline.ParseEpisodesFilter(episodeFlag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		handleErr(inline.Run(&inline.Options{
			Context:        cmd.Context(),
			Out:            writer,
			Host:           newHost(),
			Module:         selectedModule(),
			Query:          query,
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Resolve:        lo.Must(cmd.Flags().GetBool("resolve")),
			AnimePicker:    animePicker,
			EpisodesFilter: episodesFilter,
		}))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("anilist", "a", false, "Generate the JSON Schema for Anilist objects")
	inlineSchemaCmd.SetOut(os.Stdout)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "anime", "episode", "date", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("anilist")):
			schema = reflector.Reflect([]*anilist.Anime{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(encode(cmd, schema))
	},
}
