package commands

import (
	"fmt"
	"os"

	"modarc/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("modarc error", "err", err.Error())
	os.Exit(1)
}

func HandleHelp(_ []string) {
	fmt.Println(`modarc archive service

usage:
  modarc run <config.yml>   start the service
  modarc version            print version
  modarc help               show this help`) //nolint
}
