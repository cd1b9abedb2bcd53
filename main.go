package main

import (
	"github.com/kadaan/linedensity/cmd"
)

func main() {
	cmd.Root.Execute()
}
