package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/clean-img/internal"
)

type Config struct {
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
	Performance struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"performance"`
	Extensions struct {
		Images    []string `mapstructure:"images"`
		Documents []string `mapstructure:"documents"`
	} `mapstructure:"extensions"`
	Journal struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	} `mapstructure:"journal"`
	Prompt struct {
		Style string `mapstructure:"style"`
	} `mapstructure:"prompt"`
}

const (
	PromptPlain = "plain"
	PromptTUI   = "tui"
)

// Load 读取配置文件，file 为空时在默认路径中查找 config.yaml
// 找不到配置文件不视为错误
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("$HOME/.clean-img")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/clean-img")
	}

	v.SetEnvPrefix("CLEAN_IMG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("performance.workers", internal.DefaultWorkers)
	v.SetDefault("extensions.images", internal.DefaultImageExtensions)
	v.SetDefault("extensions.documents", internal.DefaultDocumentExtensions)
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", internal.DefaultJournalPath)
	v.SetDefault("prompt.style", PromptPlain)

	if err := v.ReadInConfig(); err != nil {
		// 显式指定的配置文件必须能读取
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Extensions.Images = NormalizeExtensions(cfg.Extensions.Images)
	cfg.Extensions.Documents = NormalizeExtensions(cfg.Extensions.Documents)
	if cfg.Performance.Workers < 1 {
		cfg.Performance.Workers = internal.DefaultWorkers
	}
	cfg.Prompt.Style = strings.ToLower(cfg.Prompt.Style)

	return &cfg, nil
}

// NormalizeExtensions 统一为小写并补全前导点，去除空项和重复项
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}

// ExtensionSet 将扩展名列表转换为查找用的集合
func ExtensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range NormalizeExtensions(exts) {
		set[ext] = struct{}{}
	}
	return set
}
