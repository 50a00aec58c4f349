// rollcut — paper roll slitting planner
//
// A command-line planner for slitting wide source rolls into ordered
// widths with minimal trim waste. Orders come in as CSV or Excel,
// plans go out as styled terminal summaries, JSON, Excel workbooks,
// PDF diagrams, label sheets, and winder setup sheets.
//
// Build:
//   go build -o rollcut ./cmd/rollcut
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o rollcut.exe ./cmd/rollcut
//   GOOS=darwin  GOARCH=arm64 go build -o rollcut-darwin ./cmd/rollcut

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/piwi3910/rollcut/internal/cli"
	"github.com/piwi3910/rollcut/internal/logger"
)

func main() {
	// A .env next to the binary can carry LOG_LEVEL and LOG_FORMAT;
	// a missing file is fine.
	_ = godotenv.Load()
	logger.Init()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
