package app

import (
	"io"

	"github.com/spf13/afero"

	"github.com/moyu-x/clean-img/internal"
	"github.com/moyu-x/clean-img/pkg/cleaner"
	"github.com/moyu-x/clean-img/pkg/config"
	"github.com/moyu-x/clean-img/pkg/database"
	"github.com/moyu-x/clean-img/pkg/logger"
	"github.com/moyu-x/clean-img/pkg/prompt"
)

type CleanOptions struct {
	DocDir     string
	ImgDir     string
	Delete     bool
	Verbose    bool
	TUI        bool
	NoJournal  bool
	Workers    int
	ConfigFile string
	In         io.Reader
	Out        io.Writer
}

func RunClean(opts *CleanOptions) (*internal.CleanReport, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Logging.Level
	if opts.Verbose {
		logLevel = "debug"
	}

	if err := logger.Init(logLevel, cfg.Logging.File); err != nil {
		return nil, err
	}

	logger.Get().Debug().Msg("加载配置完成")

	mode := internal.ModePreview
	if opts.Delete {
		mode = internal.ModeDelete
	}

	workers := cfg.Performance.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	var confirmer prompt.Confirmer
	if opts.TUI || cfg.Prompt.Style == config.PromptTUI {
		confirmer = prompt.NewTUIConfirmer(opts.In, opts.Out)
	} else {
		confirmer = prompt.NewLineConfirmer(opts.In, opts.Out)
	}

	cleanerOpts := cleaner.Options{
		Fs:                 afero.NewOsFs(),
		Mode:               mode,
		ImageExtensions:    cfg.Extensions.Images,
		DocumentExtensions: cfg.Extensions.Documents,
		Workers:            workers,
		Confirmer:          confirmer,
		Output:             opts.Out,
	}

	// 只有删除模式才需要删除日志
	if mode == internal.ModeDelete && cfg.Journal.Enabled && !opts.NoJournal {
		db, err := database.NewDatabase(cfg.Journal.Path)
		if err != nil {
			logger.Get().Warn().Err(err).Msg("打开删除日志失败，本次删除不记录日志")
		} else {
			defer db.Close()
			cleanerOpts.Journal = db
		}
	}

	logger.Get().Debug().Msgf("操作模式: %s", mode)
	logger.Get().Debug().Msgf("并发数: %d", workers)

	return cleaner.New(cleanerOpts).Run(opts.DocDir, opts.ImgDir)
}
