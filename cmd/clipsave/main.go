package main

import "github.com/devbush/clipsave/internal/adapters/cli"

func main() {
	cli.Execute()
}
