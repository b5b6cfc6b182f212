package main

import (
	"os"

	"github.com/abrigo-digital/shelter-admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
