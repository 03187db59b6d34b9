package main

import (
	"errors"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/diet-hub/internal/config"
)

func main() {
	cmd := newRootCmd(config.Load())
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errNotOptimal) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
