package book

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo 内存实现,仅用于测试
type memRepo struct {
	mu      sync.Mutex
	books   map[string]*Book
	seq     int
	findErr error
	counted int
}

func newMemRepo() *memRepo {
	return &memRepo{books: make(map[string]*Book)}
}

func (r *memRepo) ValidID(id string) bool { return id != "bad" }

func (r *memRepo) Find(_ context.Context, q ListQuery) ([]*Book, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Book
	for _, b := range r.books {
		out = append(out, b)
	}
	if int64(len(out)) <= q.Page.Skip() {
		return nil, nil
	}
	out = out[q.Page.Skip():]
	if len(out) > q.Page.Limit {
		out = out[:q.Page.Limit]
	}
	return out, nil
}

func (r *memRepo) Count(context.Context, Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counted++
	return int64(len(r.books)), nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "bad" {
		return nil, ErrInvalidBookID
	}
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) Create(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = string(rune('a' + r.seq))
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) Replace(_ context.Context, id string, f Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return ErrBookNotFound
	}
	b.Apply(f)
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func intp(v int) *int { return &v }

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	id, err := svc.Create(ctx, Fields{
		Title:  "Dune",
		Author: "Herbert",
		Year:   intp(1965),
		Tags:   []string{"sf", "classic"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	b, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Herbert", b.Author)
	assert.Equal(t, 1965, *b.Year)
	assert.Equal(t, []string{"sf", "classic"}, b.Tags)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestReplaceClearsOmittedFields(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, Fields{Title: "Dune", Author: "Herbert", Tags: []string{"sf"}, Year: intp(1965)})
	require.NoError(t, err)
	created, _ := svc.Get(ctx, id)

	require.NoError(t, svc.Replace(ctx, id, Fields{Title: "Dune Messiah", Author: "Herbert"}))

	b, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", b.Title)
	assert.Empty(t, b.Tags)
	assert.Nil(t, b.Year)
	assert.Equal(t, created.CreatedAt, b.CreatedAt, "createdAt不可变")

	assert.ErrorIs(t, svc.Replace(ctx, "zz", Fields{Title: "x", Author: "y"}), ErrBookNotFound)
}

func TestDeleteTwice(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	id, err := svc.Create(ctx, Fields{Title: "Dune", Author: "Herbert"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrBookNotFound)
	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestGetInvalidID(t *testing.T) {
	_, err := NewService(newMemRepo()).Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidBookID)
}

func TestListMeta(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, Fields{Title: "Book", Author: "Author"})
		require.NoError(t, err)
	}

	items, meta, err := svc.List(ctx, ListQuery{Page: Page{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.LessOrEqual(t, len(items), meta.Limit)
	assert.Equal(t, PageMeta{Page: 2, Limit: 2, Total: 5, Pages: 3}, meta)
	assert.Equal(t, 1, repo.counted)

	// 超出范围的页返回空数组而不是nil
	items, meta, err = svc.List(ctx, ListQuery{Page: Page{Page: 9, Limit: 2}})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 3, meta.Pages)
}

func TestListPropagatesStoreError(t *testing.T) {
	repo := newMemRepo()
	repo.findErr = errors.New("connection reset")

	_, _, err := NewService(repo).List(context.Background(), ListQuery{Page: Page{Page: 1, Limit: 24}})
	assert.EqualError(t, err, "connection reset")
}

func TestNewBookDefaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b := NewBook(Fields{Title: "Dune", Author: "Herbert"}, now)
	assert.Equal(t, now, b.CreatedAt)
	assert.NotNil(t, b.Tags)
	assert.Equal(t, "", b.Description)
}

func TestCheckID(t *testing.T) {
	svc := NewService(newMemRepo())
	assert.NoError(t, svc.CheckID("b"))
	assert.ErrorIs(t, svc.CheckID("bad"), ErrInvalidBookID)
}
