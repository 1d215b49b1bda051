package main

import "library-compare/cmd"

func main() {
	cmd.Execute()
}
