// -- cmd/banner.go --
package cmd

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// printBanner writes the application name in large type, followed by the
// version in a muted color.
func printBanner(w io.Writer) {
	fig := figure.NewFigure("scanlens", "doom", true)
	fmt.Fprint(w, fig.String())
	dim := color.New(color.FgHiBlack)
	dim.Fprintf(w, "  network scan result query engine  v%s\n\n", Version)
}
