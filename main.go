package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/airwaves/internal/app"
	"github.com/llehouerou/airwaves/internal/bus"
	"github.com/llehouerou/airwaves/internal/catalog"
	"github.com/llehouerou/airwaves/internal/config"
	"github.com/llehouerou/airwaves/internal/logger"
	"github.com/llehouerou/airwaves/internal/mpris"
	"github.com/llehouerou/airwaves/internal/notify"
	"github.com/llehouerou/airwaves/internal/playback"
	"github.com/llehouerou/airwaves/internal/player"
	"github.com/llehouerou/airwaves/internal/playlist"
	"github.com/llehouerou/airwaves/internal/policy"
	"github.com/llehouerou/airwaves/internal/session"
	"github.com/llehouerou/airwaves/internal/state"
)

type options struct {
	configPath string
	viewer     policy.Viewer
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "airwaves [queue.json]",
		Short: "Terminal client for the airwaves playback engine",
		Long: "Plays a queue of catalog tracks. With --viewer the queue, position, " +
			"volume and modes are saved per viewer and restored on the next start.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			queuePath := ""
			if len(args) == 1 {
				queuePath = args[0]
			}
			return run(cmd.Context(), opts, queuePath)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (loaded after the default locations)")
	cmd.Flags().StringVar(&opts.viewer.ID, "viewer", "", "log in as this viewer id")
	cmd.Flags().BoolVar(&opts.viewer.IsMinor, "minor", false, "flag the viewer as a minor")
	cmd.Flags().BoolVar(&opts.viewer.IsSuspended, "suspended", false, "flag the viewer account as suspended")
	cmd.Flags().StringVar(&opts.viewer.Suspension.Reason, "suspension-reason", "", "reason shown for a suspended account")

	return cmd
}

func run(parent context.Context, opts options, queuePath string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logCfg, err := cfg.LoggerConfig()
	if err != nil {
		return err
	}
	log, err := logger.Init(logCfg)
	if err != nil {
		return err
	}

	var queue catalog.QueueFile
	if queuePath != "" {
		if queue, err = catalog.LoadQueueFile(queuePath); err != nil {
			return err
		}
	}

	store, err := state.Open(cfg.Storage.Path, state.PrefixKey(cfg.Storage.KeyPrefix))
	if err != nil {
		return errors.Wrap(err, "open state store")
	}
	defer store.Close()

	var client catalog.Client
	if cfg.HasCatalog() {
		client = catalog.NewHTTPClient(cfg.Catalog.URL, cfg.Catalog.Token, cfg.Catalog.Timeout)
	}

	speaker := player.NewSpeaker(log)
	defer speaker.Close()

	b := bus.New()
	defer b.Close()

	engine := playback.New(speaker, playlist.NewQueue(), playback.Options{
		Catalog:         client,
		Store:           store,
		Bus:             b,
		Logger:          &log,
		Messages:        cfg.PolicyMessages(),
		PlayCountAfter:  cfg.Playback.PlayCountAfter,
		RewindThreshold: cfg.Playback.RewindThreshold,
		AutosaveDelay:   cfg.Playback.AutosaveDelay,
		InitialVolume:   cfg.Playback.InitialVolume,
	})
	defer engine.Close()

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handler := session.New(engine, store, log)
	sessionSub := b.Subscribe()

	wg.Go(func() { logExit(log, "engine", engine.Run(ctx)) })
	wg.Go(func() { logExit(log, "session", handler.Run(ctx, sessionSub)) })

	notifier, err := notify.New()
	if err != nil {
		return errors.Wrap(err, "desktop notifications")
	}
	noticeSub := engine.Subscribe()
	wg.Go(func() { logExit(log, "notify", notify.Forward(ctx, noticeSub, notifier, log)) })

	adapter, err := mpris.New(engine)
	if err != nil {
		log.Warn().Err(err).Msg("mpris unavailable")
	} else {
		defer adapter.Close()
	}

	if opts.viewer.ID != "" {
		if err := handler.LoggedIn(ctx, opts.viewer); err != nil {
			return err
		}
	}
	if len(queue.Tracks) > 0 {
		engine.PlayQueue(queue.Tracks, queue.Start, queue.Context)
	}

	log.Info().
		Str("viewer", opts.viewer.ID).
		Int("tracks", len(queue.Tracks)).
		Bool("catalog", client != nil).
		Msg("airwaves started")

	p := tea.NewProgram(app.New(engine, b, opts.viewer), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run ui")
	}

	cancel()
	return engine.Close()
}

func logExit(log zerolog.Logger, component string, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("component", component).Msg("stopped with error")
	}
}
