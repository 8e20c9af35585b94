package main

import "jarvis-cli/cmd"

func main() {
	cmd.Execute()
}
