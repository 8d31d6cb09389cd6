package main

import "github.com/dotcommander/agentready/cmd"

func main() {
	cmd.Execute()
}
