package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/color"
)

func TestRenderers(t *testing.T) {
	Convey("Renderers keep the text", t, func() {
		for _, render := range []func(string) string{Faint, Bold, Title, Fg(color.Red)} {
			So(render("frieren"), ShouldContainSubstring, "frieren")
		}
	})
}
