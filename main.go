package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/seqsense/surfelmapper/csvlog"
	"github.com/seqsense/surfelmapper/surfel"
)

type options struct {
	config      string
	csv         string
	scene       string
	preview     string
	interactive bool
	worldPoints bool
	debug       bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) (err error) {
	var opts options
	fs := pflag.NewFlagSet("surfelmapper", pflag.ContinueOnError)
	fs.StringVar(&opts.config, "config", "", "YAML config file (defaults when empty)")
	fs.StringVar(&opts.csv, "csv", "", "append per frame statistics to this file")
	fs.StringVar(&opts.scene, "scene", "", "write the scene cloud to this PCD file")
	fs.StringVar(&opts.preview, "preview", "", "write the preview cloud to this PCD file")
	fs.BoolVar(&opts.interactive, "console", false, "read commands from stdin after fusing the arguments")
	fs.BoolVar(&opts.worldPoints, "world-points", false, "input points are in the world frame (VIEWPOINT already applied)")
	fs.BoolVar(&opts.debug, "debug", false, "development logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: surfelmapper [flags] frame.pcd...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(opts.debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	s := &session{
		mapper: surfel.New(cfg, surfel.WithLogger(logger.Named("mapper"))),
		io:     &pcdIOImpl{},
		logger: logger,
	}
	if opts.worldPoints {
		s.points = worldPoints
	}
	if opts.csv != "" {
		if s.csv, err = csvlog.Open(opts.csv, csvFields()); err != nil {
			return err
		}
	}
	defer func() {
		err = multierr.Append(err, s.close())
	}()

	for _, path := range fs.Args() {
		if _, err := s.fuse(path); err != nil {
			return err
		}
	}

	if opts.interactive {
		if err := runConsole(&console{s: s}, stdin, stdout); err != nil {
			return err
		}
	}

	if opts.scene != "" {
		if err := s.saveScene(opts.scene); err != nil {
			return err
		}
	}
	if opts.preview != "" {
		if err := s.savePreview(opts.preview); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	return l, errors.Wrap(err, "creating logger")
}

// runConsole executes one command per line until EOF or "quit".
// Command errors are printed and do not stop the console.
func runConsole(c *console, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "quit" || line == "exit" {
			return nil
		}
		res, err := c.Run(line)
		if res != "" {
			fmt.Fprintln(w, res)
		}
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	return errors.Wrap(sc.Err(), "reading console")
}
