package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override", func() {
			t.Setenv(EnvConfigPath, "/tmp/soramod-test")
			So(Config(), ShouldEqual, "/tmp/soramod-test")
			So(ConfigFile(), ShouldEqual, filepath.Join("/tmp/soramod-test", "soramod.toml"))
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
