package internal

const (
	// 删除日志数据库默认路径
	DefaultJournalPath = "~/.clean-img/journal.db"

	// 配置文件目录
	DefaultConfigDir = "~/.clean-img"

	// 默认并发数，1 表示顺序扫描
	DefaultWorkers = 1

	// 确认删除时需要输入的口令
	ConfirmToken = "yes"

	// 文件类型检测读取的头部大小（字节）
	FileHeaderSize = 261
)

// 支持的图片扩展名
var DefaultImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg", ".webp", ".tiff"}

// 支持的文档扩展名
var DefaultDocumentExtensions = []string{".md", ".markdown"}
