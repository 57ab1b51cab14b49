package main

import (
	"context"
	"os"

	"github.com/RushabhMehta2005/stores-api/cli"
	"github.com/RushabhMehta2005/stores-api/logging"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		logging.Error().Err(err).Msg("stores-api failed")
		os.Exit(1)
	}
}
