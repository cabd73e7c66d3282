package v2x

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/v2x/utils"
	"golang.org/x/term"
)

// svgExt is the extension accepted for local input files.
const svgExt = ".svg"

// Ops describes where the source comes from and where the results go.
type Ops struct {
	// Src is a file, a directory, an http(s) URL or PipeName for stdin.
	Src string
	// Dst is the output directory. It is created if missing.
	Dst string
	// Filename overrides the output file stem.
	Filename string
	PipeName string
	// Workers bounds the number of files processed concurrently in directory mode.
	Workers int
	// Stdin is read when Src equals PipeName. Defaults to os.Stdin.
	Stdin   *os.File
	Spinner *utils.Spinner

	mu sync.Mutex
}

// result holds the relevant information about the conversion of a single source.
type result struct {
	path    string
	results []Result
	err     error
}

// Execute converts the source described by op into every requested format.
// It returns an error if the source could not be read or if any of the
// output files could not be generated.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	now := time.Now()

	if op.Dst == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("unable to get the working directory: %w", err)
		}
		op.Dst = wd
	}
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the output directory: %w", err)
	}

	if op.Spinner != nil {
		// Capture CTRL-C signal and restores back the cursor visibility.
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(signalChan)
		go func() {
			if _, ok := <-signalChan; ok {
				op.Spinner.RestoreCursor()
				os.Exit(1)
			}
		}()
	}

	var err error
	switch {
	case utils.IsValidUrl(op.Src):
		err = op.processUrl(ctx, p)
	case op.Src == op.PipeName:
		err = op.processStdin(ctx, p)
	default:
		fs, serr := os.Stat(op.Src)
		if serr != nil {
			return fmt.Errorf("failed to load the source image: %w", serr)
		}
		if fs.IsDir() {
			err = op.processDir(ctx, p)
		} else {
			err = op.processFile(ctx, p, op.Src, op.Dst, op.Filename)
		}
	}

	if op.Spinner != nil {
		op.Spinner.Stop()
	}
	if err == nil {
		p.logger().Infof("Execution time: %s",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// processUrl downloads the source document and converts it.
func (op *Ops) processUrl(ctx context.Context, p *Processor) error {
	stem := op.Filename
	if stem == "" {
		stem = utils.UrlStem(op.Src)
	}
	if stem == "" {
		return errors.New("'--filename' is required because the URL has no file name")
	}

	data, err := utils.Download(ctx, op.Src)
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}
	return op.convert(ctx, p, op.Src, data, op.Dst, stem)
}

// processStdin reads the source document from the piped stdin.
func (op *Ops) processStdin(ctx context.Context, p *Processor) error {
	if op.Filename == "" {
		return errors.New("'--filename' is required because the input comes from stdin")
	}

	stdin := op.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return errors.New("`-` should be used with a pipe for stdin")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	return op.convert(ctx, p, op.PipeName, data, op.Dst, op.Filename)
}

// processFile converts the local SVG file found at src.
func (op *Ops) processFile(ctx context.Context, p *Processor, src, dst, stem string) error {
	if !isSVGFile(src) {
		return fmt.Errorf("%w: '%s'. Please provide a valid SVG input", ErrInvalidInput, src)
	}
	if stem == "" {
		stem = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", src, err)
	}
	return op.convert(ctx, p, src, data, dst, stem)
}

// processDir converts every SVG file found under the source directory
// concurrently, mirroring the directory tree into the destination.
func (op *Ops) processDir(ctx context.Context, p *Processor) error {
	if op.Filename != "" {
		return errors.New("'--filename' cannot be used when the input is a directory")
	}

	workers := utils.Clamp(op.Workers, 1, maxWorkers)
	if op.Workers <= 0 {
		workers = p.workers()
	}

	// Process recursively the SVG files from the specified directory concurrently.
	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, op.Src, []string{svgExt})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(ctx, p, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var (
		errs  []error
		count int
	)
	for res := range ch {
		count++
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
		}
	}

	if err := <-errc; err != nil {
		errs = append(errs, err)
	}
	if count == 0 && len(errs) == 0 {
		return fmt.Errorf("%w: no %s files found in '%s'", ErrInvalidInput, svgExt, op.Src)
	}
	return errors.Join(errs...)
}

// consumer reads the path names from the paths channel and converts each of them.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := op.Dst
		if rel, err := filepath.Rel(op.Src, filepath.Dir(src)); err == nil {
			dst = filepath.Join(op.Dst, rel)
		}

		var err error
		if err = os.MkdirAll(dst, 0755); err == nil {
			err = op.processFile(ctx, p, src, dst, "")
		}

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// convert runs the processor over data while the progress indicator spins.
func (op *Ops) convert(ctx context.Context, p *Processor, src string, data []byte, dst, stem string) error {
	op.startSpinner(src)
	results, err := p.Process(ctx, data, dst, stem)
	op.printOpStatus(p, src, results, err)
	return err
}

// startSpinner shows the progress indicator for src. It shares op.mu with
// printOpStatus since directory consumers run concurrently.
func (op *Ops) startSpinner(src string) {
	if op.Spinner == nil {
		return
	}
	op.mu.Lock()
	defer op.mu.Unlock()

	op.Spinner.SetMessage(fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ V2X", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("⇢ rasterizing %s...", filepath.Base(src)), utils.DefaultMessage),
	))
	op.Spinner.Start()
}

// printOpStatus displays the relevant information about the conversion process.
// The spinner is paused while the status lines are written.
func (op *Ops) printOpStatus(p *Processor, src string, results []Result, err error) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.Spinner != nil {
		op.Spinner.Stop()
		defer op.Spinner.Start()
	}

	if len(results) == 0 && err != nil {
		p.logger().Errorf("Failed to convert '%s' caused by: %v", filepath.Base(src), err)
		return
	}
	p.PrintResults(results)
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if isValidExtension(filepath.Ext(d.Name()), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isSVGFile checks that path is an existing regular file with an SVG extension.
func isSVGFile(path string) bool {
	fs, err := os.Stat(path)
	if err != nil || !fs.Mode().IsRegular() {
		return false
	}
	return isValidExtension(filepath.Ext(path), []string{svgExt})
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if strings.EqualFold(ex, ext) {
			return true
		}
	}
	return false
}
