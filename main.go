package main

import (
	"errors"
	"io"
	"os"

	"github.com/Snider/gh-release/cmd"
	"github.com/Snider/gh-release/pkg/logger"
	"github.com/Snider/gh-release/pkg/ui"
)

var (
	osExit           = os.Exit
	stdout io.Writer = os.Stdout
)

func main() {
	Main()
}

func Main() {
	log := logger.New(false)
	if err := cmd.Execute(log); err != nil {
		if !errors.Is(err, cmd.ErrUsage) {
			log.Debug("fatal error", "err", err)
			ui.NewPrinter(stdout).Error(err)
		}
		osExit(1)
	}
}
