package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/clean-img/internal"
)

// Printer 输出面向用户的扫描结果，样式按输出端的终端能力降级
type Printer struct {
	w io.Writer

	successStyle lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	pathStyle    lipgloss.Style
	hintStyle    lipgloss.Style
}

func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:            w,
		successStyle: r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		warnStyle:    r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("196")),
		pathStyle:    r.NewStyle().Foreground(lipgloss.Color("147")),
		hintStyle:    r.NewStyle().Foreground(lipgloss.Color("241")).Faint(true),
	}
}

func (p *Printer) AllReferenced() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.successStyle.Render("[√] 没有发现冗余图片，所有图片都被引用了。"))
}

// Candidates 列出未引用的图片及其大小，返回可释放的总字节数
func (p *Printer) Candidates(candidates []internal.CandidateImage, imgDir string) int64 {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.warnStyle.Render(fmt.Sprintf("[!] 发现 %d 个未引用的图片：", len(candidates))))

	var total int64
	for _, c := range candidates {
		total += c.Size
		fmt.Fprintf(p.w, "    [未引用] %s (%s)\n", p.pathStyle.Render(displayPath(c.Path, imgDir)), FormatBytes(c.Size))
	}

	fmt.Fprintf(p.w, "\n    总计可释放空间: %s\n", FormatBytes(total))
	return total
}

func (p *Printer) PreviewHint() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.hintStyle.Render("[提示] 当前为预览模式。请在命令后加上 --delete 参数来执行真正的删除操作。"))
}

func (p *Printer) Cancelled() {
	fmt.Fprintln(p.w, "\n[x] 操作已取消。")
}

func (p *Printer) Deleted(c internal.CandidateImage) {
	fmt.Fprintf(p.w, "    [已删除] %s\n", c.Filename)
}

func (p *Printer) DeleteFailed(c internal.CandidateImage, err error) {
	fmt.Fprintln(p.w, p.errorStyle.Render(fmt.Sprintf("    [删除失败] %s: %v", c.Filename, err)))
}

func (p *Printer) DeleteSummary(deleted int, freed int64) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.successStyle.Render(fmt.Sprintf("[√] 清理完成，共删除了 %d 个文件，释放 %s。", deleted, FormatBytes(freed))))
}

// History 输出删除日志
func (p *Printer) History(records []internal.DeletionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(p.w, p.hintStyle.Render("暂无删除记录。"))
		return
	}

	for _, r := range records {
		fmt.Fprintf(p.w, "%s  %s  %s  %s  %s\n",
			time.Unix(r.DeletedAt, 0).Format("2006-01-02 15:04:05"),
			shortRunID(r.RunID),
			p.pathStyle.Render(r.FilePath),
			FormatBytes(r.FileSize),
			r.MIME,
		)
	}
}

func displayPath(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
