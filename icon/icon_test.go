package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/key"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Stream

		Convey("It renders for each variant", func() {
			for _, name := range Names() {
				Convey("variant="+name, func() {
					viper.Set(key.IconsVariant, name)
					So(Current(), ShouldEqual, Variant(name))
					So(Get(target), ShouldEqual, icons[target][Variant(name)])
				})
			}
		})

		Convey("An unknown variant falls back to plain", func() {
			viper.Set(key.IconsVariant, "sparkles")
			So(Current(), ShouldEqual, Plain)
			So(Get(target), ShouldEqual, ">")
		})

		Convey("A missing glyph falls back to plain", func() {
			icons[target][Squares] = ""
			defer func() { icons[target][Squares] = "🟧" }()

			So(Render(target, Squares), ShouldEqual, ">")
		})

		Convey("An unregistered icon renders empty", func() {
			So(Render(Icon(-1), Plain), ShouldBeEmpty)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Every icon has a glyph for every variant", t, func() {
		for i := Success; i <= Key; i++ {
			g, ok := icons[i]
			So(ok, ShouldBeTrue)
			for _, v := range variants {
				So(g[v], ShouldNotBeEmpty)
			}
		}
	})
}
