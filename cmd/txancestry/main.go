package main

import (
	"os"

	"github.com/kaspanet/txancestry/app"
)

func main() {
	if err := app.StartApp(); err != nil {
		os.Exit(1)
	}
}
