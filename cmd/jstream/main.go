// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jstream reads JSON text incrementally from files or standard
// input, and prints its tokens or the values at selected key paths.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var version = "dev"

// cli holds the command line options and configuration file values.
var cli struct {
	Version  kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`
	Config   kong.ConfigFlag  `kong:"short='c',help='Load configuration from a file.'"`
	LogLevel string           `kong:"short='l',default='info',enum='debug,info,warn,error',help='Log level',env='JSTREAM_LOG_LEVEL'"`
	Files    []string         `kong:"arg,optional,help='Input files (default: standard input)'"`

	Opts options `kong:"embed"`
}

// loadConfig parses the command line, consulting the configuration files
// in the working directory and the user's home directory.
func loadConfig(log *logrus.Logger) error {
	var configPaths []string
	if wd, err := os.Getwd(); err == nil {
		configPaths = append(configPaths, filepath.Join(wd, ".jstream.json"))
	} else {
		log.Warn("failed to get working directory; ignoring config file there")
	}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".jstream.json"))
	} else {
		log.Warn("failed to get home directory; ignoring config file there")
	}

	parser := kong.Must(&cli,
		kong.Name("jstream"),
		kong.Description("Scan JSON text incrementally and print tokens or selected values."),
		kong.Configuration(kong.JSON, configPaths...),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("parse arguments: %w", err)
	}
	return cli.Opts.check()
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := loadConfig(log); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cli.LogLevel); err != nil {
		log.Warnf("invalid log level %q; using info", cli.LogLevel)
	} else {
		log.SetLevel(lvl)
	}
	log.WithField("options", fmt.Sprintf("%+v", cli.Opts)).Debug("configuration loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	p := newPrinter(os.Stdout, cli.Opts.Format)
	defer p.Flush()

	if len(cli.Files) == 0 {
		if err := process(ctx, log, "<stdin>", os.Stdin, cli.Opts, p); err != nil {
			p.Flush()
			log.WithField("file", "<stdin>").Fatal(err)
		}
		return
	}
	for _, path := range cli.Files {
		if err := processFile(ctx, log, path, cli.Opts, p); err != nil {
			p.Flush()
			log.WithField("file", path).Fatal(err)
		}
	}
}

func processFile(ctx context.Context, log *logrus.Logger, path string, opts options, p *printer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return process(ctx, log, path, f, opts, p)
}
