package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdnum"
	"pkt.systems/mdnum/internal/watch"
	"pkt.systems/version"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func init() {
	version.SetDefaultModule("pkt.systems/mdnum")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cliOptions struct {
	outPath      string
	inPlace      bool
	maxLevel     int
	noStrip      bool
	spaceHeaders bool
	preview      bool
	check        bool
	watch        bool
	configPath   string
	width        int
	verbose      bool
	showVersion  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opt cliOptions
	flags := pflag.NewFlagSet("mdnum", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opt.outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&opt.inPlace, "in-place", "i", false, "Rewrite input files in place")
	flags.IntVar(&opt.maxLevel, "max-level", mdnum.MaxHeadingLevel, "Deepest heading level to number (1-6)")
	flags.BoolVar(&opt.noStrip, "no-strip", false, "Keep existing heading labels instead of replacing them")
	flags.BoolVar(&opt.spaceHeaders, "space-headers", false, "Ensure a blank line before and after each heading")
	flags.BoolVar(&opt.preview, "preview", false, "List heading changes without writing anything")
	flags.BoolVar(&opt.check, "check", false, "Exit 1 if any input would change")
	flags.BoolVar(&opt.watch, "watch", false, "Renumber whenever the input file changes")
	flags.StringVarP(&opt.configPath, "config", "c", "", "Config file (default ./"+mdnum.DefaultConfigName+" if present)")
	flags.IntVarP(&opt.width, "width", "w", 0, "Preview width override (0 uses terminal width if available)")
	flags.BoolVarP(&opt.verbose, "verbose", "v", false, "Log configuration and per-input summaries")
	flags.BoolVar(&opt.showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdnum [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nNumbers Markdown headings (# 1, ## 1.1, ...).")
		fmt.Fprintln(stderr, "If no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if opt.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return exitOK
	}

	inputs := flags.Args()
	if err := checkModes(opt, inputs); err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		flags.Usage()
		return exitUsage
	}

	cfg, err := resolveConfig(flags, opt)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitUsage
	}

	sources, err := collectSources(inputs, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return exitUsage
	}
	if opt.inPlace || opt.watch {
		for _, src := range sources {
			if src.path == "" {
				fmt.Fprintf(stderr, "%s: --in-place and --watch need a local file\n", src.name)
				return exitUsage
			}
		}
	}

	logger := newLogger(stderr, opt.verbose)
	logger.Debug("configuration",
		"inputs", len(sources),
		"output", opt.outPath,
		"in_place", opt.inPlace,
		"max_level", cfg.MaxLevel,
		"strip_existing", cfg.StripExisting,
		"space_headers", cfg.SpaceHeaders,
		"preview", opt.preview,
		"check", opt.check,
	)

	r := &runner{
		opt:       opt,
		stdout:    stdout,
		stderr:    stderr,
		logger:    logger,
		numbering: cfg.Options(),
		style:     mdnum.PlainPreviewStyle(),
		width:     opt.width,
	}
	if isTerminal(stdout) {
		r.style = mdnum.DefaultPreviewStyle()
		if r.width <= 0 {
			r.width = terminalWidth(stdout)
		}
	}

	var failed, stale bool
	for _, src := range sources {
		changed, err := r.process(src)
		if err != nil {
			fmt.Fprintf(stderr, "mdnum: %v\n", err)
			failed = true
			continue
		}
		stale = stale || changed
	}
	if failed {
		return exitFail
	}
	if opt.check && stale {
		return exitFail
	}
	if opt.watch {
		return r.watch(sources[0])
	}
	return exitOK
}

func checkModes(opt cliOptions, inputs []string) error {
	switch {
	case opt.inPlace && opt.outPath != "":
		return errors.New("--in-place and --output are mutually exclusive")
	case opt.preview && (opt.inPlace || opt.outPath != "" || opt.check || opt.watch):
		return errors.New("--preview cannot be combined with --in-place, --output, --check or --watch")
	case opt.check && (opt.inPlace || opt.outPath != "" || opt.watch):
		return errors.New("--check cannot be combined with --in-place, --output or --watch")
	case opt.inPlace && len(inputs) == 0:
		return errors.New("--in-place needs at least one input file")
	case opt.watch && len(inputs) != 1:
		return errors.New("--watch needs exactly one input file")
	case opt.watch && opt.inPlace && opt.noStrip:
		return errors.New("--watch --in-place requires label stripping; drop --no-strip")
	case len(inputs) > 1 && !opt.inPlace && !opt.check && !opt.preview:
		return errors.New("multiple inputs require --in-place, --check or --preview")
	}
	return nil
}

func resolveConfig(flags *pflag.FlagSet, opt cliOptions) (mdnum.Config, error) {
	cfg := mdnum.DefaultConfig()
	path, explicit := opt.configPath, opt.configPath != ""
	if !explicit {
		path = mdnum.DefaultConfigName
	}
	loaded, err := mdnum.LoadConfig(normalizePath(path))
	switch {
	case err == nil:
		cfg = loaded
	case !explicit && errors.Is(err, mdnum.ErrFileNotFound):
	default:
		return cfg, err
	}
	if flags.Changed("max-level") {
		cfg.MaxLevel = opt.maxLevel
	}
	if flags.Changed("no-strip") {
		cfg.StripExisting = !opt.noStrip
	}
	if flags.Changed("space-headers") {
		cfg.SpaceHeaders = opt.spaceHeaders
	}
	return cfg, cfg.Validate()
}

type runner struct {
	opt       cliOptions
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
	numbering []mdnum.Option
	style     mdnum.PreviewStyle
	width     int
}

// process numbers one input and reports whether its content changed.
func (r *runner) process(src inputSource) (bool, error) {
	data, err := src.read()
	if err != nil {
		return false, err
	}
	if src.path != "" && !hasMarkdownExt(src.path) {
		r.logger.Warn("input does not look like markdown", "input", src.name)
	}
	res, err := mdnum.Number(data, r.numbering...)
	if err != nil {
		var inputErr *mdnum.InputError
		if errors.As(err, &inputErr) {
			inputErr.Path = src.name
		}
		return false, err
	}
	for _, w := range res.Warnings {
		r.logger.Warn(w, "input", src.name)
	}
	if res.Skipped {
		r.logger.Debug("numbering disabled by front matter", "input", src.name)
	}
	r.logger.Debug("numbered",
		"input", src.name,
		"headings", res.Headings,
		"changed", len(res.Changes),
		"lines", res.Lines,
		"bytes", len(res.Output),
	)

	changed := res.Changed()
	switch {
	case r.opt.preview:
		return changed, mdnum.WritePreview(mdnum.PreviewRequest{
			Writer: r.stdout,
			Name:   src.name,
			Result: res,
			Width:  r.width,
			Style:  r.style,
		})
	case r.opt.check:
		if changed {
			fmt.Fprintf(r.stdout, "%s: headings need renumbering\n", src.name)
		}
		return changed, nil
	case r.opt.inPlace:
		if !changed {
			return false, nil
		}
		return true, mdnum.WriteFile(src.path, res.Output)
	case r.opt.outPath != "":
		return changed, mdnum.WriteFile(normalizePath(r.opt.outPath), res.Output)
	default:
		_, err := r.stdout.Write(res.Output)
		return changed, err
	}
}

func (r *runner) watch(src inputSource) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	w, err := watch.New(watch.Config{
		Path: src.path,
		OnChange: func() error {
			_, err := r.process(src)
			return err
		},
		OnError: func(err error) {
			r.logger.Error("watch", "input", src.name, "err", err)
		},
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "watch: %v\n", err)
		return exitFail
	}
	r.logger.Info("watching for changes", "input", src.name)
	if err := w.Run(ctx); err != nil {
		fmt.Fprintf(r.stderr, "watch: %v\n", err)
		return exitFail
	}
	return exitOK
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// inputSource is one document to number. path is set for local files only.
type inputSource struct {
	name string
	path string
	read func() ([]byte, error)
}

func collectSources(args []string, stdin io.Reader) ([]inputSource, error) {
	if len(args) == 0 {
		return []inputSource{{
			name: "<stdin>",
			read: func() ([]byte, error) { return io.ReadAll(stdin) },
		}}, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw, stdin)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func makeInputSource(raw string, stdin io.Reader) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{
			name: "<stdin>",
			read: func() ([]byte, error) { return io.ReadAll(stdin) },
		}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{name: raw, read: func() ([]byte, error) {
				return readURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return fileSource(path), nil
		}
	}
	return fileSource(raw), nil
}

func fileSource(path string) inputSource {
	clean := normalizePath(path)
	return inputSource{name: path, path: clean, read: func() ([]byte, error) {
		return mdnum.ReadFile(clean)
	}}
}

// httpClient fetches http(s) inputs.
var httpClient = &http.Client{Timeout: 30 * time.Second}

func readURL(raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func hasMarkdownExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return 0
}
