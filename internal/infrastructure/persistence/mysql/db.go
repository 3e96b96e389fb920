package mysql

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewBooksDB 创建books服务的数据库连接并迁移books/ratings表
func NewBooksDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&BookModel{}, &RatingModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// NewLoansDB 创建loans服务的数据库连接并迁移loans表
// 两个服务各自持有权威存储,互不共享数据库
func NewLoansDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&LoanModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	return db, nil
}

// open 建立数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
func open(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	return db, nil
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,domain/book/entity.go是领域实体,
//    Repository负责两者之间的转换
// 2. ISBN有唯一索引,创建重复ISBN时由数据库兜底拒绝
// 3. PublishedDate按外部书目数据原样存字符串(格式不统一,如"2015"或"2015-11-04")
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	ISBN          string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title         string    `gorm:"size:200;not null;comment:书名"`
	Authors       string    `gorm:"size:300;not null;comment:作者(展示字符串)"`
	Publisher     string    `gorm:"size:100;not null;comment:出版社"`
	PublishedDate string    `gorm:"size:20;not null;comment:出版日期"`
	Genre         string    `gorm:"size:50;not null;comment:体裁"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// RatingModel GORM评分模型
// 设计说明:
// 1. BookID有唯一索引(与图书一对一)
// 2. Values用JSON列存整型序列(只追加,保留提交顺序)
// 3. Average是冗余推导值,随Values一起更新
type RatingModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"uniqueIndex;not null;comment:图书ID"`
	Title     string    `gorm:"size:200;not null;comment:书名快照"`
	Values    []int     `gorm:"serializer:json;type:json;comment:评分序列"`
	Average   float64   `gorm:"not null;default:0;comment:平均分"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (RatingModel) TableName() string {
	return "ratings"
}

// LoanModel GORM借阅模型
// 设计说明:
// 1. LoanNo唯一索引(业务主键,UUID)
// 2. ISBN唯一索引:一本书最多一条在借记录,归还即删除记录释放索引,
//    是"一书一借"规则的存储层兜底
// 3. MemberName加普通索引,加速会员借阅数统计
type LoanModel struct {
	ID         uint      `gorm:"primaryKey"`
	LoanNo     string    `gorm:"uniqueIndex;size:36;not null;comment:借阅单号"`
	MemberName string    `gorm:"index;size:100;not null;comment:会员名"`
	ISBN       string    `gorm:"uniqueIndex;size:20;not null;comment:图书ISBN"`
	Title      string    `gorm:"size:200;not null;comment:书名快照"`
	BookID     uint      `gorm:"not null;comment:图书服务内部ID快照"`
	LoanDate   string    `gorm:"size:20;not null;comment:借出日期"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
