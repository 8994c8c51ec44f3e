package extractor

import (
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/clean-img/internal"
	"github.com/moyu-x/clean-img/pkg/logger"
)

type ScanStats struct {
	Scanned int
	Skipped int
}

type extractResult struct {
	Path string
	Refs internal.ReferenceSet
	Err  error
}

// ExtractPool 并发读取文档并提取引用
// 每个文档得到独立的集合，全部任务结束后才合并，合并结果只在 Scan 返回后可用
type ExtractPool struct {
	fs      afero.Fs
	workers int
}

func NewExtractPool(fs afero.Fs, workers int) *ExtractPool {
	if workers < 1 {
		workers = 1
	}
	logger.Get().Debug().Msgf("创建引用提取池，工作线程数: %d", workers)
	return &ExtractPool{
		fs:      fs,
		workers: workers,
	}
}

// Scan 提取 paths 中所有文档的引用并取并集，读取失败的文档被跳过
func (p *ExtractPool) Scan(paths []string) (internal.ReferenceSet, ScanStats) {
	if p.workers == 1 || len(paths) <= 1 {
		return p.scanSequential(paths)
	}

	pool, err := ants.NewPool(p.workers)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("创建 goroutine 池失败，改为顺序扫描")
		return p.scanSequential(paths)
	}
	defer pool.Release()

	results := make(chan extractResult, len(paths))
	var wg sync.WaitGroup

	for _, path := range paths {
		path := path
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results <- p.extractFile(path)
		}
		if err := pool.Submit(task); err != nil {
			logger.Get().Warn().Err(err).Msgf("提交任务失败，直接处理: %s", path)
			task()
		}
	}

	wg.Wait()
	close(results)

	refs := internal.NewReferenceSet()
	var stats ScanStats
	for res := range results {
		p.collect(res, refs, &stats)
	}
	return refs, stats
}

func (p *ExtractPool) scanSequential(paths []string) (internal.ReferenceSet, ScanStats) {
	refs := internal.NewReferenceSet()
	var stats ScanStats
	for _, path := range paths {
		p.collect(p.extractFile(path), refs, &stats)
	}
	return refs, stats
}

func (p *ExtractPool) collect(res extractResult, refs internal.ReferenceSet, stats *ScanStats) {
	if res.Err != nil {
		logger.Get().Warn().Err(res.Err).Msgf("读取文件出错，已跳过: %s", res.Path)
		stats.Skipped++
		return
	}
	stats.Scanned++
	refs.Merge(res.Refs)
}

func (p *ExtractPool) extractFile(path string) extractResult {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return extractResult{Path: path, Err: err}
	}

	// 非法的 UTF-8 字节直接丢弃，不影响其余内容的提取
	text := strings.ToValidUTF8(string(data), "")
	refs := ExtractReferences(text)

	logger.Get().Trace().Msgf("文档 %s 中找到 %d 个引用: %v", path, refs.Len(), refs.Sorted())
	return extractResult{Path: path, Refs: refs}
}
