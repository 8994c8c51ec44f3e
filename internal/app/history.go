package app

import (
	"io"
	"os"

	"github.com/moyu-x/clean-img/internal"
	"github.com/moyu-x/clean-img/pkg/config"
	"github.com/moyu-x/clean-img/pkg/database"
	"github.com/moyu-x/clean-img/pkg/logger"
	"github.com/moyu-x/clean-img/pkg/report"
)

type HistoryOptions struct {
	Limit      int
	RunID      string
	ConfigFile string
	Out        io.Writer
}

// RunHistory 输出删除日志中的记录
func RunHistory(opts *HistoryOptions) ([]internal.DeletionRecord, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(cfg.Journal.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var records []internal.DeletionRecord
	if opts.RunID != "" {
		records, err = db.ByRun(opts.RunID)
	} else {
		records, err = db.Recent(opts.Limit)
	}
	if err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	report.NewPrinter(out).History(records)
	return records, nil
}
