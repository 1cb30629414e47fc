package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/courier-qa/courier-contract-tests/config"
	"github.com/courier-qa/courier-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL     string
	configPath     string
	filters        framework.RegexFilters
	requestTimeout time.Duration
	serviceWait    time.Duration
	loginPrefix    string
	xlsxPath       string
	debug          bool
	debugAll       bool
	noColor        bool
	setFlags       map[string]bool
	commandLine    string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.StringVar(&c.serviceURL, "url", config.DefaultURL, "base URL of the courier service")
	fs.StringVar(&c.configPath, "config", "", "YAML file with settings and test data tables")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run, one regex per level separated by \"/\" as in go test")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run, in the same form as -run")
	fs.DurationVar(&c.requestTimeout, "timeout", config.DefaultRequestTimeout, "timeout for each request")
	fs.DurationVar(&c.serviceWait, "wait", config.DefaultServiceWaitTimeout,
		"how long to wait for the service to respond before starting (0 to not check)")
	fs.StringVar(&c.loginPrefix, "login-prefix", config.DefaultLoginPrefix, "prefix of the logins of couriers created by tests")
	fs.StringVar(&c.xlsxPath, "xlsx", "", "also write the results to this spreadsheet file")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", shellescape.QuoteCommand(fs.Args()))
		fs.Usage()
		return false
	}
	c.setFlags = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.setFlags[f.Name] = true })
	c.commandLine = shellescape.QuoteCommand(args)
	return true
}

// Config returns the configuration file's settings, or the defaults if there is no file, with
// any settings that were given as flags taking precedence.
func (c *commandParams) Config() (config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if c.setFlags["url"] || c.configPath == "" {
		cfg.URL = c.serviceURL
	}
	if c.setFlags["timeout"] {
		cfg.RequestTimeout = c.requestTimeout
	}
	if c.setFlags["wait"] {
		cfg.ServiceWaitTimeout = c.serviceWait
	}
	if c.setFlags["login-prefix"] {
		cfg.LoginPrefix = c.loginPrefix
	}
	return cfg, cfg.Validate()
}
