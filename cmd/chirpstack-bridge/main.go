package main

import (
	"github.com/lorahub/chirpstack-bridge/cmd/chirpstack-bridge/cmd"
)

var version string // set by the compiler

func main() {
	cmd.Execute(version)
}
