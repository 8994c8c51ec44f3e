package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/clean-img/pkg/logger"
)

// ErrDirNotFound 目录不存在或不是目录
var ErrDirNotFound = errors.New("目录不存在")

type FileEntry struct {
	Path string
	Size int64
}

type FileWalker struct {
	Fs afero.Fs
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileWalker{
		Fs: fs,
	}
}

// CheckDir 确认 dir 存在且是目录
func CheckDir(fs afero.Fs, dir string) error {
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return fmt.Errorf("检查目录失败 %s: %w", dir, err)
	}
	if !exists {
		return fmt.Errorf("%w -> %s", ErrDirNotFound, dir)
	}
	return nil
}

// Walk 递归遍历 root 下的普通文件，无法访问的子目录会被跳过
func (w *FileWalker) Walk(root string, callback func(path string, info os.FileInfo) error) error {
	return afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("跳过无法访问的路径: %s", path)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return callback(path, info)
	})
}

// ListFiles 递归列出 root 下扩展名在 exts 中的文件，exts 为 nil 时返回全部文件
func (w *FileWalker) ListFiles(root string, exts map[string]struct{}) ([]FileEntry, error) {
	if err := CheckDir(w.Fs, root); err != nil {
		return nil, err
	}

	var files []FileEntry
	err := w.Walk(root, func(path string, info os.FileInfo) error {
		if exts != nil {
			if _, ok := exts[Ext(info.Name())]; !ok {
				return nil
			}
		}
		files = append(files, FileEntry{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		logger.Get().Error().Err(err).Msgf("扫描目录失败: %s", root)
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	logger.Get().Debug().Msgf("目录 %s 中找到 %d 个匹配文件", root, len(files))
	return files, nil
}

// Ext 返回小写的扩展名，".png" 这类隐藏文件以及以点结尾的文件视为没有扩展名
func Ext(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx:])
}
