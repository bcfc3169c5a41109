package main

import (
	"os"

	"github.com/iw2rmb/lineproj"
	"github.com/iw2rmb/lineproj/internal/cli"
)

func main() {
	if err := cli.Execute(lineproj.VersionTag()); err != nil {
		os.Exit(1)
	}
}
