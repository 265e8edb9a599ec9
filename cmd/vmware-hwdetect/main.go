package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Hyphaed/vmware-vmmon-vmnet-linux-6.17.x-sub000/pkg/cli"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
