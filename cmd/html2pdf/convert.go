package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// Directory permission for created output trees.
const dirPermissions = 0o750

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runConvert orchestrates the whole CLI run: sample generation,
// single-file conversion, linked-set merging or directory batching.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, pool Pool, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Sample generation modes exit before any conversion.
	if flags.sample.samplePath != "" {
		if err := html2pdf.CreateSampleFile(flags.sample.samplePath); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Created sample %s\n", flags.sample.samplePath)
		return nil
	}
	if flags.sample.sampleSet != "" {
		indexPath, err := html2pdf.CreateSampleSet(flags.sample.sampleSet)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Created sample set, index at %s\n", indexPath)
		return nil
	}

	// Config was loaded into env by loadEnvConfig before the pool was
	// built, so traversal settings already reached the services.
	cfg := env.Config

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	renderOpts := buildRenderOptions(cfg)
	if err := renderOpts.Validate(); err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return ErrNoInput
	}
	inputPath := positionalArgs[0]

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return err
	}

	if flags.traversal.merge {
		if info.IsDir() {
			return fmt.Errorf("%w: --merge needs a root HTML file, got directory %s", ErrNoInput, inputPath)
		}
		return runMerge(ctx, inputPath, outputDir, renderOpts, flags, pool, env)
	}

	if !info.IsDir() {
		return runSingle(ctx, inputPath, outputDir, renderOpts, pool, env)
	}

	return runBatch(ctx, inputPath, outputDir, renderOpts, flags, pool, env)
}

// runMerge converts one linked document set into a single PDF.
func runMerge(ctx context.Context, inputPath, outputDir string, opts *html2pdf.RenderOptions, flags *convertFlags, pool Pool, env *Environment) error {
	if err := validateHTMLExtension(inputPath); err != nil {
		return err
	}

	outputPath := resolveOutputPath(inputPath, outputDir, "")
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}

	svc := pool.Acquire()
	defer pool.Release(svc)

	start := env.Now()
	if _, err := svc.MergeLinked(ctx, inputPath, outputPath, opts); err != nil {
		return decorateRenderError(err)
	}

	reportSuccess(env, flags, outputPath, env.Now().Sub(start))
	return nil
}

// runSingle converts one HTML file without traversal.
func runSingle(ctx context.Context, inputPath, outputDir string, opts *html2pdf.RenderOptions, pool Pool, env *Environment) error {
	if err := validateHTMLExtension(inputPath); err != nil {
		return err
	}

	outputPath := resolveOutputPath(inputPath, outputDir, "")
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}

	svc := pool.Acquire()
	defer pool.Release(svc)

	if _, err := svc.ConvertFile(ctx, inputPath, outputPath, opts); err != nil {
		return decorateRenderError(err)
	}

	fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
	return nil
}

// runBatch converts every HTML file under a directory. Each file runs
// its full pipeline independently, fanned out over the pool; no state
// is shared between conversions.
func runBatch(ctx context.Context, inputDir, outputDir string, opts *html2pdf.RenderOptions, flags *convertFlags, pool Pool, env *Environment) error {
	files, err := discoverFiles(inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no HTML files found in %s", inputDir)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, pool.Size())

	for i, file := range files {
		wg.Add(1)
		go func(i int, file FileToConvert) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = convertOne(ctx, file, opts, pool, env)
		}(i, file)
	}
	wg.Wait()

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "error: %s: %v\n", res.InputPath, res.Err)
			continue
		}
		reportSuccess(env, flags, res.OutputPath, res.Duration)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(files))
	}
	return nil
}

// convertOne runs a single file through an acquired service.
func convertOne(ctx context.Context, file FileToConvert, opts *html2pdf.RenderOptions, pool Pool, env *Environment) ConversionResult {
	res := ConversionResult{InputPath: file.InputPath, OutputPath: file.OutputPath}

	if err := ensureOutputDir(file.OutputPath); err != nil {
		res.Err = err
		return res
	}

	svc := pool.Acquire()
	defer pool.Release(svc)

	start := env.Now()
	_, err := svc.ConvertFile(ctx, file.InputPath, file.OutputPath, opts)
	res.Duration = env.Now().Sub(start)
	if err != nil {
		res.Err = decorateRenderError(err)
	}
	return res
}

// loadEnvConfig loads the -c/--config file into the environment.
// Must run before serviceOptions so config-driven traversal settings
// reach the pooled services, not just the render options.
func loadEnvConfig(flags *convertFlags, env *Environment) error {
	if flags.common.config == "" {
		return nil
	}

	loaded, err := config.LoadConfig(flags.common.config)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
		}
		return fmt.Errorf("loading config: %w", err)
	}
	env.Config = loaded
	return nil
}

// mergeFlags overlays CLI flags onto the loaded config. Flags win.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.page.format != "" {
		cfg.Page.Format = flags.page.format
	}
	if flags.page.noBackground {
		cfg.Page.NoBackground = true
	}
	if flags.page.marginTop != "" {
		cfg.Page.Margins.Top = flags.page.marginTop
	}
	if flags.page.marginBottom != "" {
		cfg.Page.Margins.Bottom = flags.page.marginBottom
	}
	if flags.page.marginLeft != "" {
		cfg.Page.Margins.Left = flags.page.marginLeft
	}
	if flags.page.marginRight != "" {
		cfg.Page.Margins.Right = flags.page.marginRight
	}
	if flags.traversal.maxDepth > 0 {
		cfg.Traversal.MaxDepth = flags.traversal.maxDepth
	}
}

// buildRenderOptions translates merged config into renderer options.
// Empty fields stay empty; the renderer fills in its own defaults.
func buildRenderOptions(cfg *config.Config) *html2pdf.RenderOptions {
	return &html2pdf.RenderOptions{
		PageFormat:      cfg.Page.Format,
		PrintBackground: !cfg.Page.NoBackground,
		Margins: html2pdf.Margins{
			Top:    cfg.Page.Margins.Top,
			Bottom: cfg.Page.Margins.Bottom,
			Left:   cfg.Page.Margins.Left,
			Right:  cfg.Page.Margins.Right,
		},
	}
}

// serviceOptions builds the html2pdf options shared by all pooled
// services for this run.
func serviceOptions(flags *convertFlags, env *Environment) ([]html2pdf.Option, error) {
	var opts []html2pdf.Option

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q%s", ErrInvalidTimeout, flags.timeout, hints.ForTimeout())
		}
		opts = append(opts, html2pdf.WithTimeout(d))
	}

	maxDepth := flags.traversal.maxDepth
	if maxDepth == 0 && env.Config != nil {
		maxDepth = env.Config.Traversal.MaxDepth
	}
	if maxDepth > 0 {
		opts = append(opts, html2pdf.WithMaxDepth(maxDepth))
	}

	if flags.common.quiet {
		opts = append(opts, html2pdf.WithDiagnostics(nil))
	} else {
		opts = append(opts, html2pdf.WithDiagnostics(env.Stderr))
	}

	return opts, nil
}

// ensureOutputDir creates the parent directory of outputPath.
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	return nil
}

// decorateRenderError appends actionable hints to renderer failures.
func decorateRenderError(err error) error {
	if errors.Is(err, html2pdf.ErrBrowserConnect) {
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, html2pdf.ErrPageLoad) {
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// reportSuccess prints the created artifact, honoring quiet/verbose.
func reportSuccess(env *Environment, flags *convertFlags, outputPath string, d time.Duration) {
	if flags.common.quiet {
		return
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "Created %s (%s)\n", outputPath, d.Round(time.Millisecond))
		return
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
}
