/*
Package v2x converts a vector image (SVG) into one or more raster formats
(AVIF, JPEG, PNG, TIFF, WebP, and optionally BMP and GIF) at a given size,
scale and background color.

The package provides a command line interface, supporting various flags for
the output size, background and formats. To check the supported commands type:

	$ v2x --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/esimov/v2x"
	)

	func main() {
		p := &v2x.Processor{
			Formats: []v2x.Format{v2x.PNG, v2x.WEBP},
			Width:   512,
		}

		data, _ := os.ReadFile("logo.svg")
		if _, err := p.Process(context.Background(), data, "out", "logo"); err != nil {
			fmt.Printf("Error converting image: %s", err.Error())
		}
	}
*/
package v2x
