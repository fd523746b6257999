package main

import (
	"os"

	"github.com/anighost1/pp-be/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
