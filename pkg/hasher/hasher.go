package hasher

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/clean-img/internal"
	"github.com/moyu-x/clean-img/pkg/logger"
)

const UnknownMIME = "unknown"

func CalculateHash(fs afero.Fs, filePath string) (uint64, error) {
	logger.Get().Debug().Msgf("计算文件哈希: %s", filePath)

	file, err := fs.Open(filePath)
	if err != nil {
		logger.Get().Error().Err(err).Msgf("无法打开文件: %s", filePath)
		return 0, err
	}
	defer file.Close()

	hash := xxhash.New()
	if _, err := io.Copy(hash, file); err != nil {
		logger.Get().Error().Err(err).Msgf("计算哈希失败: %s", filePath)
		return 0, err
	}

	result := hash.Sum64()
	logger.Get().Trace().Msgf("文件哈希计算完成: %s -> %x", filePath, result)
	return result, nil
}

// FormatHash 以固定 16 位十六进制输出
func FormatHash(hash uint64) string {
	return fmt.Sprintf("%016x", hash)
}

// DetectMIME 根据文件头部判断 MIME 类型，无法识别时返回 unknown
// SVG 等文本格式没有魔数，也会返回 unknown
func DetectMIME(fs afero.Fs, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	head := make([]byte, internal.FileHeaderSize)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("读取文件头部失败: %w", err)
	}
	if n == 0 {
		return UnknownMIME, nil
	}

	kind, err := filetype.Match(head[:n])
	if err != nil {
		return "", fmt.Errorf("检测文件类型失败: %w", err)
	}
	if kind == filetype.Unknown {
		return UnknownMIME, nil
	}
	return kind.MIME.Value, nil
}
