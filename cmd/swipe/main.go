package main

import "github.com/berth-dev/swipe/internal/cli"

func main() {
	cli.Execute()
}
