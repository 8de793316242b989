package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jpfielding/pngs.go/pkg/png"
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render cobra command, which paints a decoded
// image on a truecolor terminal.
func NewRenderCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Decode a PNG and paint it on the terminal",
		Long:  "Decodes a PNG file and prints it as ANSI truecolor background cells, two columns per pixel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}
			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}

			var data []byte
			var err error
			if filePath == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(filePath)
			}
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			grid, err := png.Decode(data)
			if err != nil {
				return fmt.Errorf("decode error: %w", err)
			}
			return renderANSI(cmd.OutOrStdout(), grid)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "PNG file path to render ('-' for stdin)")
	return cmd
}

// renderANSI paints each pixel as a truecolor background cell, two columns
// per pixel so cells come out roughly square. Transparent pixels render as
// unpainted cells.
func renderANSI(w io.Writer, grid *png.PixelGrid) error {
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := grid.At(x, y)
			if p.A == 0 {
				if _, err := fmt.Fprint(w, "\x1b[0m  "); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm  ", p.R, p.G, p.B); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\x1b[0m\n"); err != nil {
			return err
		}
	}
	return nil
}
