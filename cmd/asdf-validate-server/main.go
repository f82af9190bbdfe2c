package main

import (
	"log"

	"github.com/seismicdata/asdf-validate/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
