// Command locate demonstrates the matching engine's named use case — UI
// automation and screen scraping — end to end: capture the screen (or load
// a source image from disk), decode a template image, locate it, and print
// the matches. It is a thin consumer of package match, not part of the
// engine itself; the engine stays library-only per its own specification.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"
	"github.com/vova616/screenshot"

	"github.com/soocke/imgmatch/adapters/decode"
	"github.com/soocke/imgmatch/match"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "locate:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("locate", flag.ExitOnError)
	templatePath := fs.String("template", "", "path to the template image (required)")
	sourcePath := fs.String("source", "", "path to the source image; omit to capture the screen")
	threshold := fs.Float64("threshold", 0, "minimum confidence in [0,1]; 0 uses the persisted/default value")
	maxCount := fs.Int("max-count", 0, "maximum matches to report; 0 uses the persisted/default value")
	threads := fs.Int("threads", -1, "worker count; -1 uses the persisted/default value, 0 auto-detects")
	saveCapture := fs.String("save-capture", "", "directory to save a timestamped PNG of the captured screen")
	diag := fs.Bool("diag", false, "log goroutine/heap stats once a second while the search runs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *templatePath == "" {
		return fmt.Errorf("-template is required")
	}

	cfg, _ := loadConfig() // best-effort: falls back to defaults on any error
	if *threshold > 0 {
		cfg.Threshold = *threshold
	}
	if *maxCount > 0 {
		cfg.MaxCount = *maxCount
	}
	if *threads >= 0 {
		cfg.Threads = *threads
	}
	cfg.validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := newLogger(level)

	if err := match.SetThreads(cfg.Threads); err != nil {
		return fmt.Errorf("set threads: %w", err)
	}

	tmplBytes, err := os.ReadFile(*templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	tmpl, err := decode.Decode(tmplBytes)
	if err != nil {
		return fmt.Errorf("decode template: %w", err)
	}

	src, sourceBytes, err := loadSource(*sourcePath, *saveCapture, logger)
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}

	if *diag {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		match.StartPoolWatch(ctx, time.Second, logger)
	}

	start := time.Now()
	results, err := match.All(src, tmpl, cfg.Threshold, cfg.MaxCount, match.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}
	elapsed := time.Since(start)

	logger.Info("search complete",
		slog.String("request_id", uuid.NewString()),
		slog.Int("matches", len(results)),
		slog.String("duration", elapsed.String()),
		slog.String("source_size", humanize.Bytes(uint64(sourceBytes))))

	for _, r := range results {
		fmt.Printf("x=%d y=%d confidence=%.4f\n", r.X, r.Y, r.Confidence)
	}
	if len(results) == 0 {
		fmt.Println("no match above threshold")
	}

	return nil
}

// loadSource returns a decoded source GrayImage plus the size in bytes of
// the encoded source it came from (for logging). With sourcePath empty it
// captures the screen instead of reading a file.
func loadSource(sourcePath, saveCaptureDir string, logger *slog.Logger) (*match.GrayImage, int, error) {
	if sourcePath != "" {
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return nil, 0, err
		}
		gray, err := decode.Decode(data)
		if err != nil {
			return nil, 0, err
		}
		return gray, len(data), nil
	}

	shot, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, 0, fmt.Errorf("capture screen: %w", err)
	}
	gray, err := rgbaToGray(shot)
	if err != nil {
		return nil, 0, err
	}
	if saveCaptureDir != "" {
		if err := saveCaptureToDisk(shot, saveCaptureDir); err != nil {
			logger.Warn("failed to save capture", slog.String("error", err.Error()))
		}
	}
	return gray, len(shot.Pix), nil
}

// rgbaToGray densely repacks shot's pixels (which may be padded per row by
// Stride) into the tightly-packed buffer match.ToGray requires.
func rgbaToGray(shot *image.RGBA) (*match.GrayImage, error) {
	b := shot.Bounds()
	w, h := b.Dx(), b.Dy()
	packed := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		srcOff := y * shot.Stride
		dstOff := y * w * 4
		copy(packed[dstOff:dstOff+w*4], shot.Pix[srcOff:srcOff+w*4])
	}
	return match.ToGray(w, h, packed, match.LayoutRGBA)
}

// saveCaptureToDisk writes shot to disk as a timestamped PNG under dir, for
// offline inspection of what the engine actually searched.
func saveCaptureToDisk(shot *image.RGBA, dir string) error {
	name, err := strftime.Format("capture-%Y%m%d-%H%M%S.png", time.Now())
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, shot)
}
