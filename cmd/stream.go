package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/soramod/soramod/color"
	"github.com/soramod/soramod/icon"
	"github.com/soramod/soramod/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.Flags().BoolP("json", "j", false, "Print the sources, subtitles and headers as a JSON object")
	streamCmd.Flags().BoolP("raw", "r", false, "Print the resolution as returned to the host: a URL string, or an object when subtitles are attached")
	streamCmd.MarkFlagsMutuallyExclusive("json", "raw")
	streamCmd.SetOut(os.Stdout)
}

// streamCmd resolves the best stream of an episode.
var streamCmd = &cobra.Command{
	Use:   "stream [episode-id]",
	Short: "Resolve the best stream of an episode",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		h, module := newHost(), selectedModule()

		if lo.Must(cmd.Flags().GetBool("raw")) {
			handleErr(encode(cmd, h.Resolve(cmd.Context(), module, args[0])))
			return
		}

		reply := h.Streams(cmd.Context(), module, args[0])
		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(encode(cmd, reply))
			return
		}

		replyErr(reply.Error)

		for _, s := range reply.Sources {
			cmd.Printf("%s %s %s\n", icon.Get(icon.Stream), style.Fg(color.Yellow)(s.Quality), style.Faint(s.Provider))
			cmd.Println(s.URL)
		}

		for _, s := range reply.Subtitles {
			cmd.Printf("%s %s %s\n", icon.Get(icon.Subtitle), style.Fg(color.Cyan)(s.Language), style.Faint(s.Format))
			cmd.Println(s.URL)
		}

		for name, value := range reply.Headers {
			if name == "Authorization" {
				value = "<redacted>"
			}
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(name+":"), value)
		}
	},
}
