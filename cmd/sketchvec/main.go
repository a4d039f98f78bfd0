package main

import "sketchvec/internal/cli"

func main() {
	cli.Execute()
}
