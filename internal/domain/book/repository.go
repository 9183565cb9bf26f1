package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(mongo / mysql两套)
// 2. 过滤条件以封闭的谓词集合(Filter)传入,各实现自行翻译并转义用户输入
// 3. 格式非法的ID返回ErrInvalidBookID,不存在返回ErrBookNotFound,其余错误原样上抛
type Repository interface {
	// ValidID ID格式是否合法(不访问存储)
	ValidID(id string) bool

	// Find 按过滤、排序、投影、分页窗口查询
	// 设置了投影时,返回的Book只填充投影字段和ID
	Find(ctx context.Context, q ListQuery) ([]*Book, error)

	// Count 统计满足过滤条件的总数(与Find使用同一个Filter)
	Count(ctx context.Context, filter Filter) (int64, error)

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id string) (*Book, error)

	// Create 创建图书,成功后回填b.ID
	Create(ctx context.Context, b *Book) error

	// Replace 整体替换除ID、CreatedAt外的所有字段
	// 以"匹配到的行数"判断是否存在,内容未变化也算成功
	Replace(ctx context.Context, id string, f Fields) error

	// Delete 物理删除
	Delete(ctx context.Context, id string) error
}
