package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hacheck/hacheck/pkg/console"
	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/fileutil"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/spf13/cobra"
)

var watchLog = logger.New("cli:watch_command")

const defaultWatchDebounce = 300 * time.Millisecond

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Re-validate a configuration directory whenever its documents change",
		Long: `Watch a configuration directory and re-run validation after every change.

Each run is independent and prints a fresh report. Watching never prompts and
never fails on validation errors; press Ctrl+C to stop.

Examples:
  ` + string(constants.CLIName) + ` watch                 # Watch the current directory
  ` + string(constants.CLIName) + ` watch /config         # Watch a specific directory
  ` + string(constants.CLIName) + ` watch --debounce 1s   # Wait longer for editors that save in bursts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debounce, _ := cmd.Flags().GetDuration("debounce")
			overrides, configFile := corpusFlags(cmd)

			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			cfg, err := resolveCorpusConfig(root, overrides, configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := &corpusWatcher{
				display:  root,
				cfg:      cfg,
				debounce: debounce,
				out:      cmd.OutOrStdout(),
			}
			return w.Run(ctx)
		},
	}

	addCorpusFlags(cmd)
	cmd.Flags().Duration("debounce", defaultWatchDebounce, "Quiet period after the last change before validating")
	return cmd
}

// corpusWatcher re-validates one corpus on filesystem changes.
type corpusWatcher struct {
	display  string
	cfg      corpus.Config
	debounce time.Duration
	out      io.Writer

	// runs counts completed validations; read by tests.
	runs int
	// onRun is called after each validation when set.
	onRun func()
}

// watchDirs lists the directories whose changes can affect the corpus.
func watchDirs(cfg corpus.Config) []string {
	candidates := []string{
		cfg.Root,
		filepath.Dir(fileutil.ResolveUnder(cfg.Root, cfg.AutomationsFile)),
		filepath.Dir(fileutil.ResolveUnder(cfg.Root, cfg.ScriptsFile)),
		fileutil.ResolveUnder(cfg.Root, cfg.HelpersDir),
		filepath.Dir(fileutil.ResolveUnder(cfg.Root, cfg.EntityRegistryFile)),
	}
	for _, pattern := range cfg.DashboardGlobs {
		candidates = append(candidates, filepath.Dir(fileutil.ResolveUnder(cfg.Root, pattern)))
	}

	var dirs []string
	for _, dir := range candidates {
		dir = filepath.Clean(dir)
		if strings.ContainsAny(dir, "*?[") || !fileutil.DirExists(dir) || slices.Contains(dirs, dir) {
			continue
		}
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs
}

// relevant reports whether an event should trigger a run. Editor swap and
// backup files are ignored.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp") && !strings.HasPrefix(base, ".#")
}

// Run validates once, then again after every burst of changes until ctx is
// cancelled.
func (w *corpusWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs := watchDirs(w.cfg)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watchLog.Printf("Watching %s", dir)
	}

	w.validateOnce()
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching for changes, press Ctrl+C to stop"))
	for _, dir := range dirs {
		fmt.Fprintln(os.Stderr, console.FormatListItem(fileutil.RelativeSlash(w.cfg.Root, dir)))
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			watchLog.Print("Watch cancelled")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			watchLog.Printf("Change detected: %s", event)
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("File watcher error: %v", err)))
		case <-timer.C:
			fmt.Fprintln(os.Stderr, console.FormatProgressMessage("Change detected, validating..."))
			w.validateOnce()
		}
	}
}

func (w *corpusWatcher) validateOnce() {
	defer func() {
		w.runs++
		if w.onRun != nil {
			w.onRun()
		}
	}()

	result := validateCorpus(w.display, w.cfg)
	if result.err != nil {
		PrintValidationError(result.err)
		return
	}
	renderTextReport(w.out, result.report)
}
