package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/Aashish23092/irbn-report-extractor/dto"
	"github.com/Aashish23092/irbn-report-extractor/renderer"
	"github.com/Aashish23092/irbn-report-extractor/service"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// settleDelay lets a file finish being written before it is read.
const settleDelay = 500 * time.Millisecond

var (
	watchOut    string
	watchFormat string
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Extract every report dropped into an inbox directory",
	Long: `Watches DIR for new report files. Each file is extracted, appended to the
consolidated report and the output file is re-rendered.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "IRBn_Daily_Report.xlsx", "consolidated report file")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "output format: xlsx or pdf (default from --out extension)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(watchFormat, watchOut)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	svc := newReportService(cfg, rules)
	in := newInbox(svc, format, watchOut)
	log.Info().Str("dir", args[0]).Str("out", watchOut).Msg("watching inbox")
	return in.watch(ctx, args[0])
}

// inbox appends every new file of a directory to one session.
type inbox struct {
	svc     *service.ReportService
	session string
	format  renderer.Format
	out     string
	outAbs  string

	mu   sync.Mutex
	seen map[string]time.Time
}

func newInbox(svc *service.ReportService, format renderer.Format, out string) *inbox {
	outAbs, err := filepath.Abs(out)
	if err != nil {
		outAbs = filepath.Clean(out)
	}
	return &inbox{
		svc:     svc,
		session: svc.CreateSession(),
		format:  format,
		out:     out,
		outAbs:  outAbs,
		seen:    make(map[string]time.Time),
	}
}

// isOutput reports whether path is the consolidated report itself.
func (in *inbox) isOutput(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path) == filepath.Clean(in.out)
	}
	return abs == in.outAbs
}

func (in *inbox) watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !dto.IsSupportedDocument(ev.Name) || in.isOutput(ev.Name) {
				continue
			}
			name := ev.Name
			if t, ok := pending[name]; ok {
				t.Reset(settleDelay)
				continue
			}
			pending[name] = time.AfterFunc(settleDelay, func() {
				select {
				case ready <- name:
				case <-ctx.Done():
				}
			})
		case name := <-ready:
			delete(pending, name)
			if err := in.process(ctx, name); err != nil {
				log.Warn().Str("file", name).Err(err).Msg("skipped")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

// process extracts path once per modification time and re-renders the output.
func (in *inbox) process(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return nil
	}

	in.mu.Lock()
	if last, ok := in.seen[path]; ok && !info.ModTime().After(last) {
		in.mu.Unlock()
		return nil
	}
	in.seen[path] = info.ModTime()
	in.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	resp, err := in.svc.SubmitDocument(ctx, in.session, filepath.Base(path), data, "")
	if errors.Is(err, dto.ErrEmptyReport) {
		log.Warn().Str("file", path).Msg("empty report ignored")
		return nil
	}
	if err != nil {
		return err
	}

	if err := writeReport(in.svc, in.session, in.format, in.out); err != nil {
		return err
	}
	log.Info().Str("file", path).Int("added", len(resp.Added)).Int("total", resp.Total).Msg("report consolidated")
	return nil
}
