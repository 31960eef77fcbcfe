package main

import "github.com/borisandre/mrb-cli/cmd"

func main() {
	cmd.Execute()
}
