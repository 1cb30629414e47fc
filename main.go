package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/courier-qa/courier-contract-tests/courier"
	"github.com/courier-qa/courier-contract-tests/couriertests"
	"github.com/courier-qa/courier-contract-tests/framework"
	"github.com/courier-qa/courier-contract-tests/framework/harness"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	if params.noColor {
		color.NoColor = true
	}
	cfg, err := params.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		logger := logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: params.noColor})
		mainDebugLogger = logger
	}
	mainDebugLogger.Printf("Command line: %s", params.commandLine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := harness.NewClient(cfg.URL, cfg.RequestTimeout).WithLogger(mainDebugLogger)
	if cfg.ServiceWaitTimeout > 0 {
		if err := client.AwaitService(ctx, cfg.ServiceWaitTimeout, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Courier service error: %s\n", err)
			os.Exit(1)
		}
	}
	fixtures := courier.NewFixtures(courier.NewAPI(client), 0)

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	start := time.Now()
	results := couriertests.RunTestSuite(ctx, fixtures, cfg, params.filters.AsFilter, testLogger)
	duration := time.Since(start)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)

	if params.xlsxPath != "" {
		if err := framework.WriteSpreadsheetReport(params.xlsxPath, results, duration); err != nil {
			fmt.Fprintf(os.Stderr, "Could not write spreadsheet report: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results written to %s\n", params.xlsxPath)
	}
	if !results.OK() {
		os.Exit(1)
	}
}
