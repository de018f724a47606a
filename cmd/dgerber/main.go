package main

import "github.com/MacroFab/DataGerber/cmd/dgerber/cmd"

func main() {
	cmd.Execute()
}
