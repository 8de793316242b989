package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jpfielding/pngs.go/pkg/png"
	"github.com/jpfielding/pngs.go/pkg/util"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze cobra command
func NewAnalyzeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze PNG file structure",
		Long:  "Parses and displays detailed information about a PNG file including header metadata and decoded pixel statistics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath, _ := cmd.Flags().GetString("file")
			out, _ := cmd.Flags().GetString("out")

			if filePath == "" && len(args) > 0 {
				filePath = args[0]
			}
			if filePath == "" {
				return fmt.Errorf("file path is required. Use --file flag or provide as argument")
			}

			return runAnalyze(filePath, out)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("file", "f", "", "PNG file path to analyze")
	pf.String("out", "", "Dump decoded pixels as raw RGBA bytes to this path")

	return cmd
}

// runAnalyze performs the PNG file analysis using pkg/png
func runAnalyze(filePath string, outPath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	header, err := png.DecodeHeader(data)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	fmt.Println("=== Header ===")
	fmt.Printf("Width: %d\n", header.Width)
	fmt.Printf("Height: %d\n", header.Height)
	fmt.Printf("BitDepth: %d\n", header.BitDepth)
	fmt.Printf("ColorType: %s\n", header.ColorType)
	fmt.Printf("Channels: %d\n", header.ColorType.Channels())
	fmt.Printf("RowStride: %d bytes\n", header.Stride())
	fmt.Println()

	grid, err := png.Decode(data)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	fmt.Println("=== Pixels ===")
	fmt.Printf("Decoded pixels: %d\n", len(grid.Pix))
	if len(grid.Pix) > 0 {
		minVal, maxVal := grid.Pix[0].R, grid.Pix[0].R
		translucent := 0
		for _, p := range grid.Pix {
			for _, v := range [3]uint8{p.R, p.G, p.B} {
				if v < minVal {
					minVal = v
				}
				if v > maxVal {
					maxVal = v
				}
			}
			if p.A != 0xff {
				translucent++
			}
		}
		fmt.Printf("Channel range: min=%d, max=%d\n", minVal, maxVal)
		fmt.Printf("Translucent pixels: %d\n", translucent)
	}
	fmt.Printf("Fingerprint: %s\n", util.HashUUID(grid.Pix))

	if outPath != "" {
		raw := make([]byte, 0, len(grid.Pix)*4)
		for _, p := range grid.Pix {
			raw = append(raw, p.R, p.G, p.B, p.A)
		}
		fmt.Printf("Dumping %d bytes to %s\n", len(raw), outPath)
		return os.WriteFile(outPath, raw, 0644)
	}
	return nil
}
