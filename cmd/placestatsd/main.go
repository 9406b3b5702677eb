package main

import (
	"flag"
	"fmt"
	"os"
	"placestats/internal/di"
	"placestats/internal/structures"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found; using system environment")
	}

	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "also log to the console")
	flag.Parse()

	_, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "placestatsd: %s\n", err)
		os.Exit(1)
	}
	cleanup()
}
