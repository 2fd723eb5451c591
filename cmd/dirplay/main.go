package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dirplay/internal/audio"
	"dirplay/internal/audio/beepsink"
	"dirplay/internal/config"
	"dirplay/internal/engine"
	"dirplay/internal/library"
	"dirplay/internal/logging"
	"dirplay/internal/ui"
	"dirplay/internal/watch"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	debug      bool
	noWatch    bool
	volume     float64
	theme      string
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "dirplay [directory]",
		Short: "Browse a music folder and play it from the terminal",
		Long: `dirplay is a terminal file browser that doubles as an audio player.
Navigate folders, filter them, queue files and control playback with
a small command line (:all, :rm, :cls, :sh, :n, :od, :sc).`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f, args)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if f.debug {
				level = "debug"
			}
			return run(cfg, level)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default ~/.config/dirplay/config.yaml)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "write debug messages to the log file")
	cmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "do not relist folders when they change on disk")
	cmd.Flags().Float64Var(&f.volume, "volume", 1, "initial volume, 0 to 1.25")
	cmd.Flags().StringVar(&f.theme, "theme", "", "built-in theme: "+strings.Join(config.ThemeNames(), ", "))
	return cmd
}

func loadConfig(cmd *cobra.Command, f flags, args []string) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.MusicDatabase = args[0]
	}
	abs, err := filepath.Abs(cfg.MusicDatabase)
	if err != nil {
		return nil, fmt.Errorf("error resolving %s: %w", cfg.MusicDatabase, err)
	}
	cfg.MusicDatabase = abs

	if cmd.Flags().Changed("volume") {
		cfg.Volume = audio.ClampVolume(f.volume)
	}
	if f.noWatch {
		cfg.Watch = false
	}
	if f.theme != "" {
		cfg.Theme.Name = f.theme
		colors, err := cfg.Theme.Resolve()
		if err != nil {
			return nil, err
		}
		cfg.Colors = colors
	}
	return cfg, nil
}

func run(cfg *config.Config, level string) error {
	logger, closeLog, err := logging.Setup(cfg.LogFile, level)
	if logger == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	defer closeLog()

	sink, err := beepsink.New(cfg.Volume, logger)
	if err != nil {
		return err
	}
	defer sink.Close()

	eng, err := engine.New(engine.Options{
		Lister:     library.NewDirLister(cfg.ShowHidden, logger),
		Loader:     library.TagLoader{},
		Sink:       sink,
		Root:       cfg.MusicDatabase,
		VolumeStep: cfg.VolumeStep,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	var watcher ui.DirWatcher
	if cfg.Watch {
		w, err := watch.New(watch.DefaultDebounce, logger)
		if err != nil {
			logger.WithError(err).Warn("directory watching disabled")
		} else {
			defer w.Close()
			watcher = w
		}
	}

	model := ui.New(ui.Options{
		Engine:       eng,
		Watcher:      watcher,
		Colors:       cfg.Colors,
		TickInterval: cfg.TickInterval,
		BigStep:      cfg.BigStep,
		Logger:       logger,
	})

	logger.WithField("root", cfg.MusicDatabase).Info("starting")
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
