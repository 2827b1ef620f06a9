package main

import "github.com/angelospk/freesound-mcp/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
