// Command mazesearch runs classical graph searches over grid mazes
package main

import (
	"os"

	"github.com/mazesearch/mazesearch/pkg/cli"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
