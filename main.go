package main

import (
	"os"

	"github.com/zonekit/zonekit/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
