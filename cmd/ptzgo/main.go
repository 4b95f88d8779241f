package main

import "github.com/cjeanneret/ptzgo/internal/cli"

func main() {
	cli.Execute()
}
