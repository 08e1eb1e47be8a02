package main

import (
	"fmt"
	"os"

	"github.com/redpwn/stagejail/internal/config"
	"github.com/redpwn/stagejail/internal/sandbox"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

type stages interface {
	ActivateStage1() error
	ActivateStage2() error
	Config() *config.Config
}

var newSandbox = func(source sandbox.ConfigSource) stages {
	return sandbox.New(source, sandbox.OSUsers{}, logrus.StandardLogger())
}

func setLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log-level option %q not recognized", level)
	}
	logrus.SetLevel(lvl)
	return nil
}

func before(ctx *cli.Context) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return setLogLevel(ctx.GlobalString("log-level"))
}

// run activates stage 1 before anything but argv is read.
func run(ctx *cli.Context) error {
	var source sandbox.ConfigSource
	if path := ctx.String("config"); path != "" {
		source = &config.Source{Fs: afero.NewOsFs(), Paths: []string{path}, Explicit: true}
	}
	sb := newSandbox(source)
	if err := sb.ActivateStage1(); err != nil {
		return err
	}
	if err := sb.ActivateStage2(); err != nil {
		return err
	}
	return copyInput(os.Stdout, os.Stdin, sb.Config().BufferSize(), ctx.Bool("hex"))
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "jailcat"
	app.Usage = "copy untrusted stdin to stdout inside a seccomp and privilege sandbox"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "log categories to include (debug, info, warn, error)",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "config file, instead of $JAIL_CONFIG or the default locations; must exist",
		},
		cli.BoolFlag{
			Name:  "hex",
			Usage: "write a hex dump instead of the raw bytes",
		},
	}
	app.Before = before
	app.Action = run
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
