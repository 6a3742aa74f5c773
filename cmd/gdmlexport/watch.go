package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chazu/gdmlexport/internal/config"
	"github.com/chazu/gdmlexport/internal/logging"
	"github.com/chazu/gdmlexport/pkg/watcher"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [input]",
	Short: "Re-export an input file whenever it changes",
	Long: `Export the input once, then keep watching it and export again after every
change. Failed exports are logged and watching continues. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	input := args[0]
	if err := checkInput(input); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFile(ctx, input, cfg, log)
}

// watchFile exports input now and after every change until ctx is done.
func watchFile(ctx context.Context, input string, cfg *config.Config, log *logrus.Logger) error {
	wlog := logging.Named(log, "watch")

	var mu sync.Mutex
	rebuild := func(string) {
		mu.Lock()
		defer mu.Unlock()

		start := time.Now()
		r, err := exportFile(input, cfg, log)
		if err != nil {
			wlog.WithError(err).Error("export failed")
			return
		}
		wlog.WithFields(logrus.Fields{
			"output":    outputPath(input, cfg),
			"solids":    len(r.Solids),
			"triangles": r.Triangles,
			"elapsed":   time.Since(start).Round(time.Millisecond),
		}).Info("exported")
	}

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.Debounce), wlog)
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Watch(input, rebuild); err != nil {
		return err
	}

	rebuild(input)
	wlog.WithField("input", input).Info("watching for changes")

	if err := fw.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
