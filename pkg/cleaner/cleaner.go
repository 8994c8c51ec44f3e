package cleaner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/clean-img/internal"
	"github.com/moyu-x/clean-img/pkg/config"
	"github.com/moyu-x/clean-img/pkg/extractor"
	"github.com/moyu-x/clean-img/pkg/hasher"
	"github.com/moyu-x/clean-img/pkg/logger"
	"github.com/moyu-x/clean-img/pkg/prompt"
	"github.com/moyu-x/clean-img/pkg/reconciler"
	"github.com/moyu-x/clean-img/pkg/report"
	"github.com/moyu-x/clean-img/pkg/scanner"
)

const confirmQuestion = "\n[警告] 确定要永久删除上述文件吗？(输入 'yes' 确认): "

// Journal 记录已删除的文件
type Journal interface {
	Record(record *internal.DeletionRecord) error
}

type Options struct {
	Fs                 afero.Fs
	Mode               internal.CleanMode
	ImageExtensions    []string
	DocumentExtensions []string
	Workers            int
	Confirmer          prompt.Confirmer
	Journal            Journal
	Output             io.Writer
}

type Cleaner struct {
	fs        afero.Fs
	mode      internal.CleanMode
	imageExts map[string]struct{}
	docExts   map[string]struct{}
	workers   int
	confirmer prompt.Confirmer
	journal   Journal
	printer   *report.Printer
	walker    *scanner.FileWalker
	stats     internal.CleanStats
}

func New(opts Options) *Cleaner {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	mode := opts.Mode
	if mode == "" {
		mode = internal.ModePreview
	}
	imageExts := opts.ImageExtensions
	if len(imageExts) == 0 {
		imageExts = internal.DefaultImageExtensions
	}
	docExts := opts.DocumentExtensions
	if len(docExts) == 0 {
		docExts = internal.DefaultDocumentExtensions
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = prompt.NewLineConfirmer(os.Stdin, out)
	}

	logger.Get().Debug().Msgf("创建清理器，模式: %s", mode)

	return &Cleaner{
		fs:        fs,
		mode:      mode,
		imageExts: config.ExtensionSet(imageExts),
		docExts:   config.ExtensionSet(docExts),
		workers:   opts.Workers,
		confirmer: confirmer,
		journal:   opts.Journal,
		printer:   report.NewPrinter(out),
		walker:    scanner.NewFileWalker(fs),
	}
}

// Run 扫描文档和图片，列出未被引用的图片，删除模式下确认后删除
func (c *Cleaner) Run(docDir, imgDir string) (*internal.CleanReport, error) {
	c.stats = internal.CleanStats{
		Mode:      c.mode,
		StartTime: time.Now(),
	}
	result := &internal.CleanReport{}

	// 两个目录都必须存在，否则不做任何扫描
	for _, dir := range []string{docDir, imgDir} {
		if err := scanner.CheckDir(c.fs, dir); err != nil {
			logger.Get().Error().Err(err).Msg("目录检查失败")
			return nil, err
		}
	}

	logger.Get().Info().Msgf("[-] 正在扫描 Markdown 目录: %s", docDir)
	docs, err := c.walker.ListFiles(docDir, c.docExts)
	if err != nil {
		return nil, fmt.Errorf("扫描文档目录失败: %w", err)
	}
	logger.Get().Info().Msgf("    发现 %d 个 Markdown 文件", len(docs))

	logger.Get().Info().Msgf("[-] 正在扫描 图片 目录: %s", imgDir)
	images, err := c.walker.ListFiles(imgDir, c.imageExts)
	if err != nil {
		return nil, fmt.Errorf("扫描图片目录失败: %w", err)
	}
	index := reconciler.NewImageIndex()
	for _, f := range images {
		index.Add(internal.CandidateImage{
			Path:     f.Path,
			Filename: filepath.Base(f.Path),
			Size:     f.Size,
		})
	}
	c.stats.ImagesFound = index.Count()
	logger.Get().Info().Msgf("    发现 %d 个图片文件", c.stats.ImagesFound)

	logger.Get().Info().Msg("[-] 正在分析 Markdown 引用 (含 Obsidian 语法)...")
	docPaths := make([]string, 0, len(docs))
	for _, d := range docs {
		docPaths = append(docPaths, d.Path)
	}
	referenced, scanStats := extractor.NewExtractPool(c.fs, c.workers).Scan(docPaths)
	c.stats.DocumentsScanned = scanStats.Scanned
	c.stats.DocumentsSkipped = scanStats.Skipped
	c.stats.ReferencesFound = referenced.Len()
	logger.Get().Info().Msgf("    在文档中找到了 %d 个唯一的图片引用", referenced.Len())

	// 所有文档提取完成后才开始比对
	candidates := reconciler.Reconcile(index, referenced)
	result.Candidates = candidates
	c.stats.Candidates = len(candidates)

	if len(candidates) == 0 {
		c.printer.AllReferenced()
		return c.finish(result), nil
	}

	c.stats.ReclaimableSpace = c.printer.Candidates(candidates, imgDir)

	if c.mode != internal.ModeDelete {
		c.printer.PreviewHint()
		return c.finish(result), nil
	}

	confirmed, err := c.confirmer.Confirm(confirmQuestion)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("读取确认输入失败，按取消处理")
		confirmed = false
	}
	if !confirmed {
		c.printer.Cancelled()
		return c.finish(result), nil
	}
	c.stats.Confirmed = true

	result.RunID = uuid.New().String()
	c.deleteCandidates(result.RunID, candidates)
	c.printer.DeleteSummary(c.stats.Deleted, c.stats.FreedSpace)

	return c.finish(result), nil
}

func (c *Cleaner) deleteCandidates(runID string, candidates []internal.CandidateImage) {
	logger.Get().Info().Msgf("开始删除 %d 个文件，运行 ID: %s", len(candidates), runID)

	for _, img := range candidates {
		record := c.newRecord(runID, img)

		if err := c.fs.Remove(img.Path); err != nil {
			logger.Get().Error().Err(err).Msgf("删除文件失败: %s", img.Path)
			c.printer.DeleteFailed(img, err)
			c.stats.Failed++
			continue
		}

		c.stats.Deleted++
		c.stats.FreedSpace += img.Size
		c.printer.Deleted(img)
		logger.Get().Debug().Msgf("已删除: %s (%s)", img.Path, report.FormatBytes(img.Size))

		if record != nil {
			record.DeletedAt = time.Now().Unix()
			if err := c.journal.Record(record); err != nil {
				logger.Get().Warn().Err(err).Msgf("写入删除日志失败: %s", img.Path)
			}
		}
	}
}

// newRecord 在删除前计算哈希和类型，未配置删除日志时返回 nil
func (c *Cleaner) newRecord(runID string, img internal.CandidateImage) *internal.DeletionRecord {
	if c.journal == nil {
		return nil
	}

	record := &internal.DeletionRecord{
		RunID:    runID,
		FilePath: img.Path,
		Filename: img.Filename,
		FileSize: img.Size,
	}

	if hash, err := hasher.CalculateHash(c.fs, img.Path); err == nil {
		record.Hash = hasher.FormatHash(hash)
	}
	if mime, err := hasher.DetectMIME(c.fs, img.Path); err == nil {
		record.MIME = mime
	} else {
		logger.Get().Debug().Err(err).Msgf("检测文件类型失败: %s", img.Path)
	}

	return record
}

func (c *Cleaner) finish(result *internal.CleanReport) *internal.CleanReport {
	c.stats.EndTime = time.Now()
	result.Stats = c.stats

	logger.Get().Debug().Msgf("统计: Documents=%d, Skipped=%d, Images=%d, References=%d, Candidates=%d, Deleted=%d, Failed=%d",
		c.stats.DocumentsScanned, c.stats.DocumentsSkipped, c.stats.ImagesFound, c.stats.ReferencesFound,
		c.stats.Candidates, c.stats.Deleted, c.stats.Failed)
	return result
}
