package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pthm/hxasset/internal/cli"
)

func main() {
	if err := cli.NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
