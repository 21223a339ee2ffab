package main

import (
	"os"

	"github.com/oakwood-commons/h5x/cmd"
	"github.com/oakwood-commons/h5x/pkg/logger"
)

func main() {
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
