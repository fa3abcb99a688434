package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/chemgpt/gateway/internal/interfaces/cli"
)

func main() {
	// A missing .env file is not an error; environment variables win.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
