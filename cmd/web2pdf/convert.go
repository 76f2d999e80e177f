package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"web2pdf/internal/convert"
	"web2pdf/internal/domain"
	"web2pdf/internal/download"
	"web2pdf/internal/infra/logging"
)

type convertOptions struct {
	output      string
	pageSize    string
	orientation string
	backend     string
	timeout     time.Duration
}

// NewConvertCmd creates the convert subcommand.
func NewConvertCmd() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert <url> [url...]",
		Short: "Convert one or more web pages to PDF through the backend",
		Long: `Convert posts each URL to the backend's /convert endpoint and saves the PDF.

The output may include directories; missing ones are created. A ".pdf"
suffix is added when absent. With several URLs each file gets a -N suffix.`,
		Example: `  web2pdf convert https://example.com
  web2pdf convert https://example.com -o docs/2024/example
  web2pdf convert https://example.com -s Letter -r landscape
  web2pdf convert https://a.example https://b.example -o batch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `Output path (directory + file name); default "webpage.pdf"`)
	cmd.Flags().StringVarP(&opts.pageSize, "size", "s", "", "Page size: "+strings.Join(domain.PageSizes, ", ")+" (default from config, A4)")
	cmd.Flags().StringVarP(&opts.orientation, "orientation", "r", "", "Page orientation: portrait or landscape (default from config, portrait)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Backend base URL (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort a conversion after this long (0 waits indefinitely)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *convertOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	initLogging(cmd, cfg, "warn")

	pageSize := firstNonEmpty(opts.pageSize, cfg.Client.PageSize, domain.PageA4)
	if !domain.IsPageSize(pageSize) {
		return fmt.Errorf("invalid page size %q: choose from %s", pageSize, strings.Join(domain.PageSizes, ", "))
	}
	orientation := firstNonEmpty(opts.orientation, cfg.Client.Orientation, domain.Portrait)
	if !domain.IsOrientation(orientation) {
		return fmt.Errorf("invalid orientation %q: choose portrait or landscape", orientation)
	}

	timeout := opts.timeout
	if timeout == 0 && cfg.Client.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.Client.TimeoutSecs) * time.Second
	}
	client := convert.NewClient(firstNonEmpty(opts.backend, cfg.Client.BackendURL), convert.WithTimeout(timeout))
	handler := convert.NewHandler(client)
	ui := newTerminal(cmd.ErrOrStderr(), download.NewFileSaver(cfg.Client.OutputDir))

	failed := 0
	for i, raw := range args {
		name := opts.output
		if len(args) > 1 {
			name = indexedName(name, i+1)
		}
		res := convert.Submit(cmd.Context(), handler, ui, domain.ConversionRequest{
			URL:         raw,
			PageSize:    pageSize,
			Orientation: orientation,
			Filename:    name,
		})
		if !res.OK() {
			failed++
			logging.Debug("Conversion failed", "url", raw, "kind", res.Kind.String(), "error", res.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(args))
	}
	return nil
}

// indexedName inserts "-n" before the .pdf suffix of name.
func indexedName(name string, n int) string {
	if name == "" {
		name = domain.DefaultFilename
	}
	return strings.TrimSuffix(name, domain.PDFExt) + "-" + strconv.Itoa(n)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// terminal implements convert.Controls on a text stream.
type terminal struct {
	out     io.Writer
	saver   *download.FileSaver
	started time.Time
}

func newTerminal(out io.Writer, saver *download.FileSaver) *terminal {
	return &terminal{out: out, saver: saver}
}

func (t *terminal) SetLoading(on bool) {
	if on {
		t.started = time.Now()
		return
	}
	logging.Debug("Conversion settled", "elapsed_ms", time.Since(t.started).Milliseconds())
}

func (t *terminal) ShowStatus(s convert.Status) {
	mark := "-"
	switch s.Level {
	case convert.LevelSuccess:
		mark = "✓"
	case convert.LevelError:
		mark = "✗"
	}
	fmt.Fprintf(t.out, "%s %s\n", mark, s.Text)
}

func (t *terminal) Save(filename string, pdf []byte) error {
	saved, err := t.saver.Save(filename, pdf)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "  saved to %s (%s)\n", saved.Path, download.HumanSize(saved.Size))
	return nil
}
