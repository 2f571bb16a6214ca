package main

import (
	"context"
	"os"

	"github.com/jryan2014/car-audio-events/cmd"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
