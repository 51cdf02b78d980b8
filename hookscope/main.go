// Package main is the hookscope command.
package main

import "github.com/sarchlab/hookscope/hookscope/cmd"

func main() {
	cmd.Execute()
}
