package provider

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/auth"
	"github.com/soramod/soramod/key"
	"github.com/soramod/soramod/provider/animeonsen"
	"github.com/soramod/soramod/provider/gojo"
	"github.com/soramod/soramod/source"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When trying to get a builtin provider", t, func() {
		p, ok := Get(gojo.ID)
		Convey("Then it should be found", func() {
			So(ok, ShouldBeTrue)
			So(p.String(), ShouldEqual, gojo.Name)
			So(p.RequiresAuth, ShouldBeFalse)
		})
	})
}

func TestCreate(t *testing.T) {
	Convey("Given an environment built from the configuration", t, func() {
		keyring.MockInit()
		env := NewEnv()

		Convey("Every builtin can be created", func() {
			for _, p := range Builtins() {
				m, err := p.Create(env)
				So(err, ShouldBeNil)
				So(m.ID(), ShouldEqual, p.ID)
				So(m.Name(), ShouldEqual, p.Name)
			}
		})

		Convey("An unknown id is a NotFoundError", func() {
			_, err := Create("kek", env)
			var notFound *source.NotFoundError
			So(errors.As(err, &notFound), ShouldBeTrue)
		})
	})
}

func TestCredentials(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		keyring.MockInit()
		viper.Set(key.AnimeOnsenClientID, "")
		viper.Set(key.AnimeOnsenClientSecret, "")

		Convey("Nothing configured yields empty credentials", func() {
			So(Credentials(animeonsen.ID).Complete(), ShouldBeFalse)
		})

		Convey("The keyring is used when the configuration is empty", func() {
			So(auth.Set(animeonsen.ID, auth.Credentials{ClientID: "ring", ClientSecret: "s"}), ShouldBeNil)
			So(Credentials(animeonsen.ID).ClientID, ShouldEqual, "ring")

			Convey("Configuration takes precedence", func() {
				viper.Set(key.AnimeOnsenClientID, "conf")
				viper.Set(key.AnimeOnsenClientSecret, "secret")
				defer viper.Set(key.AnimeOnsenClientID, "")
				defer viper.Set(key.AnimeOnsenClientSecret, "")

				So(Credentials(animeonsen.ID), ShouldResemble, auth.Credentials{ClientID: "conf", ClientSecret: "secret"})
			})
		})
	})
}
