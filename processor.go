package v2x

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"runtime"
	"time"

	"github.com/esimov/v2x/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Processor options
type Processor struct {
	Formats    []Format
	Background *color.NRGBA
	Logger     logrus.FieldLogger
	Scale      float64
	Width      int
	Height     int
	Workers    int
	Strict     bool
}

// Result holds the outcome of generating a single output file.
type Result struct {
	Format  Format
	Path    string
	Elapsed time.Duration
	Err     error
}

// Process rasterizes the SVG document held in data and writes one file per
// requested format into outDir, named after stem. The document is rendered
// once; the formats are then composed and encoded concurrently.
// A failing format does not prevent the others from being generated: the
// returned results describe every format and the error joins the failures.
func (p *Processor) Process(ctx context.Context, data []byte, outDir, stem string) ([]Result, error) {
	if stem == "" {
		return nil, errors.New("the output filename should not be empty")
	}

	doc, err := ParseSVG(data, p.Strict)
	if err != nil {
		return nil, err
	}

	for _, w := range doc.Warnings {
		p.logger().WithField("stem", stem).Debugf("skipped while parsing: %s", w)
	}

	size, err := ResolveSize(doc.Size, p.Width, p.Height, p.scale())
	if err != nil {
		return nil, err
	}
	p.logger().WithFields(logrus.Fields{
		"intrinsic": fmt.Sprintf("%dx%d", doc.Size.Width, doc.Size.Height),
		"output":    fmt.Sprintf("%dx%d", size.Width, size.Height),
	}).Debug("resolved raster size")

	layer := doc.Rasterize(size)

	formats := p.Formats
	if len(formats) == 0 {
		formats = DefaultFormats()
	}

	results := make([]Result, len(formats))
	var g errgroup.Group
	g.SetLimit(p.workers())

	for i, f := range formats {
		g.Go(func() error {
			path := filepath.Join(outDir, stem+"."+f.Extension())
			res := Result{Format: f, Path: path}
			start := time.Now()

			if err := ctx.Err(); err != nil {
				res.Err = err
			} else if err := saveImg(path, compose(layer, f, p.Background), f); err != nil {
				res.Err = err
			}
			res.Elapsed = time.Since(start)
			results[i] = res
			return nil
		})
	}
	g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(res.Path), res.Err))
		}
	}
	return results, errors.Join(errs...)
}

// PrintResults logs one line per generated, or failed, output file.
func (p *Processor) PrintResults(results []Result) {
	for _, res := range results {
		name := filepath.Base(res.Path)
		log := p.logger().WithField("format", res.Format)
		if res.Err != nil {
			log.Errorf("Failed to generate '%s' caused by: %v", name, res.Err)
			continue
		}
		log.Infof("Generated: '%s' in %s",
			utils.DecorateText(name, utils.SuccessMessage),
			utils.FormatTime(res.Elapsed),
		)
	}
}

func (p *Processor) scale() float64 {
	if p.Scale == 0 {
		return 1.0
	}
	return p.Scale
}

// workers limits the concurrently running encoders to maxWorkers.
func (p *Processor) workers() int {
	if p.Workers <= 0 {
		return utils.Min(runtime.NumCPU(), maxWorkers)
	}
	return utils.Clamp(p.Workers, 1, maxWorkers)
}

var discardLogger = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func (p *Processor) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return discardLogger
	}
	return p.Logger
}
