package main

import "github.com/iwannatoa/ooc-app/cmd"

func main() {
	cmd.Execute()
}
