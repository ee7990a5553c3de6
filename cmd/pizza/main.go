package main

import (
	"github.com/pizzalab/pizza-tester/pkg/cli"
)

func main() {
	cli.Execute()
}
