package main

import "github.com/diillson/bookbridge/cmd/bookbridgectl/commands"

func main() {
	commands.Execute()
}
