package main

import "feedrec/internal/cli"

func main() {
	cli.Execute()
}
