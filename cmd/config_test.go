package cmd

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/soramod/soramod/config"
	"github.com/soramod/soramod/key"
)

func TestLookupField(t *testing.T) {
	Convey("A registered key returns its field", t, func() {
		field, err := lookupField(key.HTTPTimeout)
		So(err, ShouldBeNil)
		So(field.Key, ShouldEqual, key.HTTPTimeout)
	})

	Convey("A misspelled key suggests the closest one", t, func() {
		_, err := lookupField("http.timeot")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, key.HTTPTimeout)
	})
}

func TestParseValue(t *testing.T) {
	Convey("Values follow the type of the default", t, func() {
		v, err := parseValue(config.Default[key.HTTPTimeout], []string{"45"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 45)

		v, err = parseValue(config.Default[key.LogsJson], []string{"true"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, true)

		v, err = parseValue(config.Default[key.SubtitlesLanguages], []string{"English", "Spanish"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"English", "Spanish"})

		v, err = parseValue(config.Default[key.HTTPUserAgent], []string{"soramod", "test"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "soramod test")
	})

	Convey("Malformed values are rejected", t, func() {
		_, err := parseValue(config.Default[key.HTTPTimeout], []string{"soon"})
		So(err, ShouldNotBeNil)

		_, err = parseValue(config.Default[key.LogsJson], []string{"maybe"})
		So(err, ShouldNotBeNil)

		_, err = parseValue(config.Default[key.HTTPTimeout], nil)
		So(err, ShouldNotBeNil)
	})
}
