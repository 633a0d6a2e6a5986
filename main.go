// Package main is the entry point for the soramod application.
package main

import (
	"github.com/samber/lo"
	"github.com/soramod/soramod/cmd"
	"github.com/soramod/soramod/config"
	"github.com/soramod/soramod/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
