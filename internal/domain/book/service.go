package book

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务组合Query Builder的结果与Repository,不依赖具体存储
// 2. 权限校验不在这里做,由HTTP层的鉴权链负责
// 3. 存储错误不重试、不吞掉,原样返回给上层
type Service interface {
	// List 分页查询,同时返回分页元数据
	List(ctx context.Context, q ListQuery) ([]*Book, PageMeta, error)

	// CheckID 只校验ID格式,不访问存储
	CheckID(id string) error

	// Get 图书详情
	Get(ctx context.Context, id string) (*Book, error)

	// Create 创建图书,返回新ID
	Create(ctx context.Context, f Fields) (string, error)

	// Replace 整体替换
	Replace(ctx context.Context, id string, f Fields) error

	// Delete 删除(不幂等:第二次删除返回ErrBookNotFound)
	Delete(ctx context.Context, id string) error
}

// service 领域服务实现
type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// List 分页查询
// 业务流程:
// 1. Find与Count并发执行,使用同一个Filter
// 2. 两者都完成后再组合结果;任一失败即返回错误(另一个通过ctx取消)
// 3. 两次查询之间可能有写入,total与items存在轻微不一致,可接受
func (s *service) List(ctx context.Context, q ListQuery) ([]*Book, PageMeta, error) {
	var (
		items []*Book
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q.Filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, PageMeta{}, err
	}

	if items == nil {
		items = []*Book{}
	}
	return items, NewPageMeta(q.Page, total), nil
}

func (s *service) CheckID(id string) error {
	if !s.repo.ValidID(id) {
		return ErrInvalidBookID
	}
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, f Fields) (string, error) {
	b := NewBook(f, s.now().UTC())
	if err := s.repo.Create(ctx, b); err != nil {
		return "", err
	}
	return b.ID, nil
}

func (s *service) Replace(ctx context.Context, id string, f Fields) error {
	if f.Tags == nil {
		f.Tags = []string{}
	}
	return s.repo.Replace(ctx, id, f)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
