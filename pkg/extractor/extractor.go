// Package extractor 从文档文本中提取被引用的图片文件名。
//
// 支持三种语法，各自独立匹配后取并集：
//
//	![alt](path "title")        Markdown 行内图片
//	<img ... src="path" ...>    HTML 图片标签
//	![[path|200]] / [[path]]    Obsidian/Wiki 嵌入
//
// 所有匹配结果都经过同一套规范化：URL 解码，取最后一级路径作为文件名。
// 查询串和锚点不会被去掉，"img.png?v=2" 会原样作为文件名。
package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/moyu-x/clean-img/internal"
)

var (
	// 捕获组使用非贪婪匹配，同一行内的多个链接分别匹配
	inlineImagePattern = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)
	htmlImagePattern   = regexp.MustCompile(`(?i)<img\b[^>]*?\ssrc\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	wikiEmbedPattern   = regexp.MustCompile(`!?\[\[(.*?)\]\]`)
)

// ExtractReferences 返回 text 中引用的所有文件名，不会失败
func ExtractReferences(text string) internal.ReferenceSet {
	refs := internal.NewReferenceSet()
	refs.Merge(extractInlineImages(text))
	refs.Merge(extractHTMLImages(text))
	refs.Merge(extractWikiEmbeds(text))
	return refs
}

// extractInlineImages 匹配 ![alt](target)，去掉 target 后面可选的 title
func extractInlineImages(text string) internal.ReferenceSet {
	refs := internal.NewReferenceSet()
	for _, m := range inlineImagePattern.FindAllStringSubmatch(text, -1) {
		fields := strings.Fields(m[1])
		if len(fields) == 0 {
			continue
		}
		addTarget(refs, fields[0])
	}
	return refs
}

// extractHTMLImages 匹配 <img> 标签的 src 属性，单双引号均可，标签名和属性名不区分大小写
func extractHTMLImages(text string) internal.ReferenceSet {
	refs := internal.NewReferenceSet()
	for _, m := range htmlImagePattern.FindAllStringSubmatch(text, -1) {
		src := m[1]
		if src == "" {
			src = m[2]
		}
		addTarget(refs, src)
	}
	return refs
}

// extractWikiEmbeds 匹配 ![[target]] 和 [[target]]，"|" 之后的显示文本和尺寸参数被丢弃
func extractWikiEmbeds(text string) internal.ReferenceSet {
	refs := internal.NewReferenceSet()
	for _, m := range wikiEmbedPattern.FindAllStringSubmatch(text, -1) {
		target, _, _ := strings.Cut(m[1], "|")
		addTarget(refs, strings.TrimSpace(target))
	}
	return refs
}

func addTarget(refs internal.ReferenceSet, target string) {
	if name := NormalizeTarget(target); name != "" {
		refs.Add(name)
	}
}

// NormalizeTarget URL 解码后取最后一级路径，"/" 和 "\" 都视为分隔符
func NormalizeTarget(target string) string {
	decoded, err := url.PathUnescape(target)
	if err != nil {
		decoded = unescapeLenient(target)
	}
	return baseName(decoded)
}

// unescapeLenient 逐个解码合法的 %XX 序列，非法的保持原样
func unescapeLenient(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func baseName(p string) string {
	segments := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "." {
			return segments[i]
		}
	}
	return ""
}
