package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"finparse/stmt-ledger/cmd/apply"
	"finparse/stmt-ledger/cmd/batch"
	"finparse/stmt-ledger/cmd/detect"
	"finparse/stmt-ledger/cmd/learn"
	"finparse/stmt-ledger/cmd/parse"
	"finparse/stmt-ledger/cmd/root"
	"finparse/stmt-ledger/internal/config"
)

func init() {
	// Load .env silently and pin the global log level before anything logs.
	config.LoadEnv()
	bootstrapLogLevel()

	root.Init()
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(learn.Cmd)
	root.Cmd.AddCommand(apply.Cmd)
	root.Cmd.AddCommand(detect.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// bootstrapLogLevel applies LOG_LEVEL to the global logrus instance before
// the configuration layer runs, so early failures log at the right level.
func bootstrapLogLevel() {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
