package main

import (
	"fmt"
	"os"

	"github.com/vinsync-io/vinsync/cmd/vinsyncctl/app"
)

func main() {
	if err := app.NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
