package main

import "github.com/seismicdata/asdf-validate/pkg/cli"

func main() {
	cli.Execute()
}
