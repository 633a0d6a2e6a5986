package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/filesystem"
	"github.com/soramod/soramod/key"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.TokenSkew), ShouldEqual, 300)
			So(viper.GetStringSlice(key.SubtitlesLanguages), ShouldResemble, []string{"English"})
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("fanout.attempt_timeout")
			So(result, ShouldEqual, "fanout_attempt_timeout")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.GojoFormat]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "SORAMOD_GOJO_FORMAT")
		})

		Convey("typeName should follow the default value", func() {
			So(field.typeName(), ShouldEqual, "string")
			listField := Default[key.SubtitlesLanguages]
			So(listField.typeName(), ShouldEqual, "[]string")
		})
	})
}
