package main

import "propshare/commands"

func main() {
	commands.Execute()
}
