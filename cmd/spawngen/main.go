// Command spawngen regenerates the random encounter spawn group table.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/spawngen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(cli.GetExitCode(err))
}
