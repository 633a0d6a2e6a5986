// Package where resolves application directories on the host platform.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/soramod/soramod/constant"
	"github.com/soramod/soramod/filesystem"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "SORAMOD_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring SORAMOD_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs returns the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// ConfigFile returns the path of the TOML configuration file.
func ConfigFile() string {
	return filepath.Join(Config(), constant.App+".toml")
}
