package main

import (
	"log"

	"github.com/councilops/grantwriter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
