package main

import (
	"log"

	"github.com/pizzalab/pizza-tester/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
