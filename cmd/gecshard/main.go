// Command gecshard splits files into Reed-Solomon erasure-coded shards
// and rebuilds the original file from any sufficient subset of them.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gordian-engine/gecc/cmd/gecshard/internal/shardcmd"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := shardcmd.NewRootCommand(log).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
