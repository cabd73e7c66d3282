package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/esimov/v2x"
	"github.com/esimov/v2x/config"
	"github.com/esimov/v2x/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const HelpBanner = `
┬  ┬┌─┐─┐ ┬
└┐┌┘┌─┘┌┴┬┘
 └┘ └─┘┴ └─

Vector to raster image converter.
    Version: %s

Usage: v2x [flags] <input.svg | directory | url | ->

`

// pipeName is the file name that indicates stdin is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

func main() {
	logger := utils.NewLogger(os.Stderr)

	if err := run(context.Background(), os.Args[1:], os.Stderr, logger); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		logger.Error(utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}

// run parses the arguments and executes the conversion.
func run(ctx context.Context, args []string, stderr io.Writer, logger *logrus.Logger) error {
	fs := config.NewFlagSet("v2x")
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, HelpBanner, Version)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if ok, _ := fs.GetBool("version"); ok {
		fmt.Fprintf(stderr, "v2x version %s\n", Version)
		return nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("please provide a single input: an SVG file, a directory, a URL or `-` for stdin")
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	proc, err := cfg.Processor(logger)
	if err != nil {
		return err
	}
	logger.Debugf("Detected %d CPU cores for parallelization.", runtime.NumCPU())

	op := &v2x.Ops{
		Src:      fs.Arg(0),
		Dst:      cfg.Output,
		Filename: cfg.Filename,
		PipeName: pipeName,
		Workers:  cfg.Workers,
	}
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		op.Spinner = utils.NewSpinner(stderr, "", time.Millisecond*80, true)
	}

	return proc.Execute(ctx, op)
}
