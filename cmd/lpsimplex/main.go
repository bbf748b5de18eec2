package main

import cmd "lpsimplex/cmd/cli"

func main() {
	cmd.Execute()
}
