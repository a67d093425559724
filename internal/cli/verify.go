package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kacl-dev/kacl/internal/changelog"
	"github.com/kacl-dev/kacl/internal/cli/shared"
	"github.com/kacl-dev/kacl/internal/config"
	clierrors "github.com/kacl-dev/kacl/internal/errors"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

var (
	verifyJSON   bool
	verifyFormat string
	verifyWatch  bool
	verifyOutput string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file...]",
	Short: "Validate the changelog against the rulebook",
	Long: `Validate the changelog and report every problem with its line and column.

Additional files are validated in parallel with the same configuration.
Exits with code 1 when any file is invalid.

Checks:
  - exactly one "#" title from allowed_header_titles, followed by default_content
  - version headings are semantic versions, linked consistently
  - versions are in descending order with YYYY-MM-DD dates
  - sections are one of allowed_version_sections and contain "-" list items
  - no changes outside a version, no dangling or unused link references`,
	Example: `  # Human-readable diagnostics
  kacl verify

  # Machine-readable report
  kacl verify --json
  kacl verify --format yaml -o report.yaml

  # Several changelogs of a monorepo
  kacl verify services/api/CHANGELOG.md services/web/CHANGELOG.md

  # Re-validate on every save
  kacl verify --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd, args)
	},
}

func init() {
	verifyCmd.GroupID = shared.GroupInspect
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the report as JSON (same as --format json)")
	verifyCmd.Flags().StringVar(&verifyFormat, "format", formatText, "Report format: text, json or yaml")
	verifyCmd.Flags().BoolVarP(&verifyWatch, "watch", "w", false, "Re-validate whenever a file changes")
	verifyCmd.Flags().StringVarP(&verifyOutput, "output-file", "o", "", "Write the report to a file")
}

// fileReport is the validation outcome of one changelog.
type fileReport struct {
	path   string
	result changelog.ValidationResult
}

func runVerify(cmd *cobra.Command, args []string) error {
	format := verifyFormat
	if verifyJSON {
		format = formatJSON
	}
	if format != formatText && format != formatJSON && format != formatYAML {
		return clierrors.NewArgumentError(
			fmt.Sprintf("unknown report format %q", format),
			"Use one of: text, json, yaml",
		)
	}
	if verifyWatch && verifyOutput != "" {
		return clierrors.InvalidFlagCombination("--watch --output-file",
			"--watch prints every run to stdout")
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	files := append([]string{changelogPath(cfg)}, args...)

	if verifyWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchAndVerify(ctx, cfg, files, format, cmd.OutOrStdout())
	}

	reports, err := verifyFiles(cmd.Context(), cfg, files)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writeReports(&buf, reports, format); err != nil {
		return err
	}
	if verifyOutput != "" {
		if err := writeOutput(verifyOutput, buf.Bytes()); err != nil {
			return err
		}
	} else if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.result.IsValid() {
			return shared.NewExitError(shared.ExitValidationFailed)
		}
	}
	return nil
}

// verifyFiles loads and validates files concurrently. Reports keep the order
// of files.
func verifyFiles(ctx context.Context, cfg *config.Configuration, files []string) ([]fileReport, error) {
	reports := make([]fileReport, len(files))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := changelog.Load(path, cfg.ChangelogConfig())
			if err != nil {
				return clierrors.FromChangelog(err)
			}
			reports[i] = fileReport{path: path, result: doc.Validate()}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// writeReports renders reports in format. A single file is reported as
// {"valid", "errors"}; several files as an object keyed by path.
func writeReports(w io.Writer, reports []fileReport, format string) error {
	switch format {
	case formatJSON, formatYAML:
		var payload any
		if len(reports) == 1 {
			payload = reports[0].result.Report()
		} else {
			byFile := make(map[string]changelog.ValidationReport, len(reports))
			for _, r := range reports {
				byFile[r.path] = r.result.Report()
			}
			payload = byFile
		}
		return encodeReport(w, payload, format)
	default:
		opts := changelog.FormatOptions{Plain: color.NoColor}
		for _, r := range reports {
			if err := changelog.FormatDiagnostics(r.path, r.result, w, opts); err != nil {
				return fmt.Errorf("formatting diagnostics for %s: %w", r.path, err)
			}
		}
		return nil
	}
}

func encodeReport(w io.Writer, payload any, format string) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

// watchAndVerify validates files once and again after every change until
// ctx is cancelled. Parent directories are watched so editors that replace
// the file on save are followed.
func watchAndVerify(ctx context.Context, cfg *config.Configuration, files []string, format string, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(files))
	for _, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}
		watched[abs] = path
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
		}
	}

	verifyAndPrint(ctx, cfg, files, format, w)

	pending := map[string]bool{}
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, tracked := watched[event.Name]
			if !tracked || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)) {
				continue
			}
			pending[path] = true
			timer.Reset(watchDebounce)
		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for _, path := range files {
				if pending[path] {
					changed = append(changed, path)
				}
			}
			pending = map[string]bool{}
			verifyAndPrint(ctx, cfg, changed, format, w)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// verifyAndPrint runs one watch iteration. Failures are printed, not returned,
// so a file that is briefly missing mid-save does not end the watch.
func verifyAndPrint(ctx context.Context, cfg *config.Configuration, files []string, format string, w io.Writer) {
	if format == formatText {
		fmt.Fprintf(w, "[%s] verifying %d file(s)\n", time.Now().Format(time.TimeOnly), len(files))
	}

	reports, err := verifyFiles(ctx, cfg, files)
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	if err := writeReports(w, reports, format); err != nil {
		fmt.Fprintln(w, err)
	}
}
