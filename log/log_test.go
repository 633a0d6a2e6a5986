package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/filesystem"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/where"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and keep logging off", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			Info("dropped")
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup should create today's log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			WithField("call", "abc").Info("resolved")

			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			content := lo.Must(filesystem.API().ReadFile(path))
			So(string(content), ShouldContainSubstring, "resolved")
			So(string(content), ShouldContainSubstring, "call=abc")
		})
	})
}
