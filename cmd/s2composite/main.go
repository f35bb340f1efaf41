package main

import "github.com/aalvaropc/s2composite/internal/cli"

func main() {
	cli.Execute()
}
