package main

import "github.com/scoutdeck/scoutdeck/cmd"

func main() {
	cmd.Execute()
}
