package main

import "github.com/brogergvhs/anyweb/cmd"

func main() {
	cmd.Execute()
}
