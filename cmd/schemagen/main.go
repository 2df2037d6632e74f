package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Errorf("failed to set up logger: %w", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		if err := runGenerate(os.Args[2:]); err != nil {
			sugar.Fatalf("generate: %v", err)
		}
	case "watch":
		if err := runWatch(os.Args[2:]); err != nil {
			sugar.Fatalf("watch: %v", err)
		}
	default:
		sugar.Errorf("unknown command %q", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	logger := zap.S()
	logger.Info("Usage: schemagen <command> [options]")
	logger.Info("")
	logger.Info("Commands:")
	logger.Info("  generate   Generate a schema bundle for a catalog type")
	logger.Info("  watch      Regenerate the bundle whenever the catalog file changes")
}
