package database

import (
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/clean-img/internal"
	"github.com/moyu-x/clean-img/pkg/logger"
)

// DeletionRecord 删除日志中的一条记录
type DeletionRecord struct {
	ID        int64  `gorm:"primaryKey"`
	RunID     string `gorm:"index;not null"`
	FilePath  string `gorm:"not null"`
	Filename  string `gorm:"index;not null"`
	FileSize  int64  `gorm:"not null"`
	Hash      string `gorm:"index"`
	MIME      string
	RemovedAt time.Time `gorm:"index;not null"`
}

func (DeletionRecord) TableName() string {
	return "deletion_journal"
}

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	expandedPath, err := ExpandPath(dbPath)
	if err != nil {
		logger.Get().Error().Err(err).Msg("扩展数据库路径失败")
		return nil, err
	}

	logger.Get().Debug().Msgf("初始化删除日志数据库，路径: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		logger.Get().Error().Err(err).Msgf("创建数据库目录失败: %s", filepath.Dir(expandedPath))
		return nil, err
	}

	dsn := expandedPath + "?_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("打开数据库连接失败")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&DeletionRecord{}); err != nil {
		logger.Get().Error().Err(err).Msg("创建数据库表失败")
		return nil, err
	}

	logger.Get().Debug().Msg("删除日志数据库初始化完成")
	return &Database{db: db}, nil
}

// ExpandPath 展开以 ~ 开头的路径
func ExpandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Record 写入一条删除记录，成功后回填 ID
func (d *Database) Record(record *internal.DeletionRecord) error {
	gormRecord := &DeletionRecord{
		RunID:     record.RunID,
		FilePath:  record.FilePath,
		Filename:  record.Filename,
		FileSize:  record.FileSize,
		Hash:      record.Hash,
		MIME:      record.MIME,
		RemovedAt: time.Unix(record.DeletedAt, 0),
	}

	if err := d.db.Create(gormRecord).Error; err != nil {
		logger.Get().Error().Err(err).Msgf("写入删除记录失败: %s", record.FilePath)
		return err
	}

	record.ID = gormRecord.ID
	logger.Get().Debug().Msgf("写入删除记录: %s (大小: %d bytes)", record.FilePath, record.FileSize)
	return nil
}

// Recent 按删除时间倒序返回最近的 limit 条记录，limit <= 0 时返回全部
func (d *Database) Recent(limit int) ([]internal.DeletionRecord, error) {
	var rows []DeletionRecord
	query := d.db.Order("removed_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		logger.Get().Error().Err(err).Msg("查询删除记录失败")
		return nil, err
	}
	return toRecords(rows), nil
}

// ByRun 返回某次运行删除的全部文件
func (d *Database) ByRun(runID string) ([]internal.DeletionRecord, error) {
	var rows []DeletionRecord
	if err := d.db.Where("run_id = ?", runID).Order("id").Find(&rows).Error; err != nil {
		logger.Get().Error().Err(err).Msgf("查询删除记录失败: %s", runID)
		return nil, err
	}
	return toRecords(rows), nil
}

func toRecords(rows []DeletionRecord) []internal.DeletionRecord {
	records := make([]internal.DeletionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, internal.DeletionRecord{
			ID:        r.ID,
			RunID:     r.RunID,
			FilePath:  r.FilePath,
			Filename:  r.Filename,
			FileSize:  r.FileSize,
			Hash:      r.Hash,
			MIME:      r.MIME,
			DeletedAt: r.RemovedAt.Unix(),
		})
	}
	return records
}

func (d *Database) Close() error {
	logger.Get().Debug().Msg("关闭数据库连接")
	sqlDB, err := d.db.DB()
	if err != nil {
		logger.Get().Error().Err(err).Msg("获取数据库连接失败")
		return err
	}
	return sqlDB.Close()
}
