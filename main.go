package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/video-watermarker/pkg/types"
	"github.com/ZacxDev/video-watermarker/pkg/watermarker"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	rootCmd = &cobra.Command{
		Use:   "video-watermarker",
		Short: "A tool for burning text watermarks into videos",
		Long: `video-watermarker burns a semi-transparent text watermark into video files.
The watermark is rendered once per video, sized to the frame, centered, and
composited onto every frame. Audio tracks are carried over untouched.

Examples:
  # Watermark a single video with one line of text
  video-watermarker file -i wedding.mp4 --line1 "Sample Preview"

  # Watermark every video in a directory, two lines at 30% opacity
  video-watermarker dir -i ./shoot --line1 "Acme Studios" --line2 "Do Not Distribute" --opacity 30`,
	}

	fileCmd = &cobra.Command{
		Use:   "file",
		Short: "Watermark a single video file",
		Long: `Watermark a single video file. The output is written next to the source
(or into --output-dir) with a _watermarked suffix, never overwriting an
existing file.

Example:
  video-watermarker file -i input.mp4 --line1 "Sample Preview" --coverage 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, printer := optionsFromFlags(cmd)

			outputPath, err := watermarker.WatermarkFile(opts)
			printer.breakLine()
			if err != nil {
				return err
			}

			fmt.Printf("Watermarked video saved as: %s\n", outputPath)
			return nil
		},
	}

	dirCmd = &cobra.Command{
		Use:   "dir",
		Short: "Watermark every video in a directory",
		Long: fmt.Sprintf(`Watermark every supported video directly inside a directory. Files that
fail are reported and skipped; the rest of the batch keeps going.

Supported extensions:
%s
Example:
  video-watermarker dir -i ./videos -o ./marked --line1 "Acme Studios"`,
			formatSupportedExtensions()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, printer := optionsFromFlags(cmd)

			results, err := watermarker.WatermarkDirectory(opts)
			printer.breakLine()
			if err != nil {
				return err
			}

			return printBatchSummary(results)
		},
	}
)

func formatSupportedExtensions() string {
	var sb strings.Builder
	for _, ext := range watermarker.SupportedExtensions() {
		sb.WriteString(fmt.Sprintf("- %s\n", ext))
	}
	return sb.String()
}

// optionsFromFlags collects the shared watermark flags and wires up console
// reporting for the run.
func optionsFromFlags(cmd *cobra.Command) (*watermarker.Options, *consolePrinter) {
	opts := &watermarker.Options{}

	inputPath, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	line1, _ := cmd.Flags().GetString("line1")
	line2, _ := cmd.Flags().GetString("line2")
	coverage, _ := cmd.Flags().GetInt("coverage")
	opacity, _ := cmd.Flags().GetInt("opacity")
	fontPath, _ := cmd.Flags().GetString("font")
	verbose, _ := cmd.Flags().GetBool("verbose")

	opts.InputPath = normalizePath(inputPath)
	opts.OutputDir = normalizePath(outputDir)
	opts.Line1 = line1
	opts.Line2 = line2
	opts.CoveragePercent = coverage
	opts.OpacityPercent = opacity
	opts.FontPath = normalizePath(fontPath)
	opts.Verbose = verbose

	printer := &consolePrinter{
		interactive: term.IsTerminal(int(os.Stdout.Fd())),
	}
	opts.OnJobStart = printer.jobStart
	opts.OnProgress = printer.progress
	opts.OnWarning = printer.warn

	return opts, printer
}

// normalizePath cleans up paths as users actually paste them: surrounding
// quotes, a leading ~, and environment variables.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) >= 2 {
		if (path[0] == '"' && path[len(path)-1] == '"') ||
			(path[0] == '\'' && path[len(path)-1] == '\'') {
			path = path[1 : len(path)-1]
		}
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

func printBatchSummary(results []types.FileResult) error {
	var succeeded, warned, failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		succeeded++
		if res.Warning != nil {
			warned++
		}
	}

	fmt.Printf("\nProcessed %d videos: %d succeeded, %d failed\n", len(results), succeeded, failed)
	if warned > 0 {
		fmt.Printf("%d outputs are silent because their audio could not be carried over\n", warned)
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("  failed %s: %v\n", filepath.Base(res.Source), res.Err)
		}
	}

	if succeeded == 0 {
		return fmt.Errorf("no videos were watermarked successfully")
	}
	return nil
}

// consolePrinter renders job lifecycle callbacks on stdout. On a terminal,
// progress rewrites a single line; otherwise every report gets its own line.
type consolePrinter struct {
	interactive bool
	midLine     bool
}

func (c *consolePrinter) jobStart(info types.JobInfo) {
	c.breakLine()
	if info.Total > 1 {
		fmt.Printf("\n[%d/%d] %s\n", info.Index, info.Total, filepath.Base(info.Source))
	}
	fmt.Printf("Resolution: %dx%d\n", info.Width, info.Height)
	fmt.Printf("FPS: %.2f\n", info.FPS)
	if info.FrameCount > 0 {
		fmt.Printf("Total frames: %d\n", info.FrameCount)
	}
}

func (c *consolePrinter) progress(p types.Progress) {
	line := fmt.Sprintf("Processed %d frames", p.Frame)
	if p.Percent >= 0 {
		line = fmt.Sprintf("Progress: %.1f%%", p.Percent)
	}
	if c.interactive {
		fmt.Printf("\r%s", line)
		c.midLine = true
		return
	}
	fmt.Println(line)
}

func (c *consolePrinter) warn(err error) {
	c.breakLine()
	fmt.Printf("Warning: %v\n", err)
}

// breakLine terminates a progress line left by carriage-return rewriting.
func (c *consolePrinter) breakLine() {
	if c.midLine {
		fmt.Println()
		c.midLine = false
	}
}

func addWatermarkFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Input video file or directory")
	cmd.Flags().StringP("output-dir", "o", "", "Output directory (defaults to the source directory)")
	cmd.Flags().String("line1", "", "First watermark line")
	cmd.Flags().String("line2", "", "Optional second watermark line")
	cmd.Flags().IntP("coverage", "c", watermarker.DefaultCoveragePercent,
		"Widest line width as a percent of the frame width (1-100)")
	cmd.Flags().Int("opacity", watermarker.DefaultOpacityPercent,
		"Watermark ink strength (0-100)")
	cmd.Flags().String("font", "", "TrueType/OpenType font file to render with")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.MarkFlagRequired("input")
}

func init() {
	addWatermarkFlags(fileCmd)
	addWatermarkFlags(dirCmd)

	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(dirCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env next to the invocation; flags still win over it.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
