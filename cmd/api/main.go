package main

import (
	"context"
	"fmt"
	"os"

	"table-counts-service/internal/cli"

	_ "table-counts-service/docs"
)

// @title Table Counts Service API
// @version 1.0
// @description Daily record counts per table over a trailing window.
// @BasePath /
func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
