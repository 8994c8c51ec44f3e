package internal

import (
	"sort"
	"time"
)

// 运行模式
type CleanMode string

const (
	ModePreview CleanMode = "preview"
	ModeDelete  CleanMode = "delete"
)

// CandidateImage 磁盘上的一张图片，按 Filename 分组
type CandidateImage struct {
	Path     string
	Filename string
	Size     int64
}

// ReferenceSet 文档中引用到的文件名集合
type ReferenceSet map[string]struct{}

func NewReferenceSet(names ...string) ReferenceSet {
	s := make(ReferenceSet, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

func (s ReferenceSet) Add(name string) {
	s[name] = struct{}{}
}

func (s ReferenceSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Merge 将 other 中的文件名并入 s
func (s ReferenceSet) Merge(other ReferenceSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

func (s ReferenceSet) Len() int {
	return len(s)
}

// Sorted 返回排序后的文件名，便于输出和测试
func (s ReferenceSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 处理统计
type CleanStats struct {
	Mode             CleanMode
	DocumentsScanned int
	DocumentsSkipped int
	ImagesFound      int
	ReferencesFound  int
	Candidates       int
	ReclaimableSpace int64
	Confirmed        bool
	Deleted          int
	Failed           int
	FreedSpace       int64
	StartTime        time.Time
	EndTime          time.Time
}

// CleanReport 一次运行的结果
type CleanReport struct {
	Stats      CleanStats
	Candidates []CandidateImage
	RunID      string
}

// 删除日志记录
type DeletionRecord struct {
	ID        int64
	RunID     string
	FilePath  string
	Filename  string
	FileSize  int64
	Hash      string
	MIME      string
	DeletedAt int64
}
