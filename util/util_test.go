package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStripHTML(t *testing.T) {
	Convey("StripHTML", t, func() {
		Convey("Should drop tags and keep line breaks", func() {
			So(StripHTML("A <i>quiet</i> town.<br><br>Source: <b>Site</b>"), ShouldEqual, "A quiet town.\n\nSource: Site")
		})
		Convey("Should decode entities", func() {
			So(StripHTML("Tom &amp; Jerry"), ShouldEqual, "Tom & Jerry")
		})
		Convey("Should leave plain text untouched", func() {
			So(StripHTML("  plain  "), ShouldEqual, "plain")
		})
		Convey("Should collapse runs of blank lines", func() {
			So(StripHTML("a<br/><br/><br/><br/>b"), ShouldEqual, "a\n\nb")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(12, "episode", "episodes"), ShouldEqual, "12 episodes")
	})
}
