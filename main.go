package main

import "github.com/hxforge/bridgen/cmd"

var version = "v0.3.1"

func main() {
	cmd.Execute(version)
}
