package main

import (
	"os"

	"go.withmatt.com/triage/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
