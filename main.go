package main

import (
	"cartkit/cli"
)

func main() {
	cli.Start()
}
