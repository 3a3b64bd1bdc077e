package main

import "github.com/deppfellow/flatchores/cmd/flatchores/commands"

func main() {
	commands.Execute()
}
