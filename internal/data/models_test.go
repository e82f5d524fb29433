package data_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-catalog/internal/data"
	"github.com/aoideee/library-catalog/internal/testutil"
)

var start = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newestFirst(page, size int) data.Filters {
	return data.Filters{
		Page:         page,
		PageSize:     size,
		Sort:         "-created_at",
		SortSafeList: []string{"created_at", "-created_at"},
	}
}

func TestBookModel_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	model := testutil.NewBookModel(t, testutil.NewClock(start, time.Second))

	book := testutil.Book("Solaris")
	require.NoError(t, model.Insert(ctx, book))
	assert.Positive(t, book.ID)
	assert.Equal(t, start, book.CreatedAt)
	assert.Equal(t, start, book.UpdatedAt)

	got, err := model.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, "Solaris", got.Title)
	assert.Equal(t, book.Author, got.Author)
	assert.Equal(t, book.Genre, got.Genre)
	assert.Equal(t, book.PublicationDate, got.PublicationDate)
	assert.Equal(t, book.Edition, got.Edition)
	assert.Equal(t, book.Summary, got.Summary)
	assert.Equal(t, data.StatusAvailable, got.Status)
	assert.True(t, start.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)
	assert.True(t, start.Equal(got.UpdatedAt), "updated_at %v", got.UpdatedAt)
}

func TestBookModel_GetMissing(t *testing.T) {
	ctx := context.Background()
	model := testutil.NewBookModel(t, testutil.NewClock(start, time.Second))

	_, err := model.Get(ctx, 42)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	_, err = model.Get(ctx, 0)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestBookModel_Update(t *testing.T) {
	ctx := context.Background()
	model := testutil.NewBookModel(t, testutil.NewClock(start, time.Minute))

	book := testutil.Book("Roadside Picnic")
	require.NoError(t, model.Insert(ctx, book))

	book.Status = data.StatusDamaged
	book.Edition = "2nd"
	require.NoError(t, model.Update(ctx, book))
	assert.Equal(t, start.Add(time.Minute), book.UpdatedAt)

	got, err := model.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, data.StatusDamaged, got.Status)
	assert.Equal(t, "2nd", got.Edition)
	assert.True(t, start.Equal(got.CreatedAt))
	assert.True(t, start.Add(time.Minute).Equal(got.UpdatedAt))

	missing := testutil.Book("Ghost")
	missing.ID = 999
	assert.ErrorIs(t, model.Update(ctx, missing), data.ErrRecordNotFound)
}

func TestBookModel_Delete(t *testing.T) {
	ctx := context.Background()
	model := testutil.NewBookModel(t, testutil.NewClock(start, time.Second))

	book := testutil.Book("Hard to Be a God")
	require.NoError(t, model.Insert(ctx, book))

	require.NoError(t, model.Delete(ctx, book.ID))
	_, err := model.Get(ctx, book.ID)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	assert.ErrorIs(t, model.Delete(ctx, book.ID), data.ErrRecordNotFound)
	assert.ErrorIs(t, model.Delete(ctx, -1), data.ErrRecordNotFound)
}

func TestBookModel_CountAndGetAll(t *testing.T) {
	ctx := context.Background()
	model := testutil.NewBookModel(t, testutil.NewClock(start, time.Second))

	total, err := model.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	titles := []string{"first", "second", "third", "fourth", "fifth"}
	for _, title := range titles {
		require.NoError(t, model.Insert(ctx, testutil.Book(title)))
	}

	total, err = model.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	var seen []string
	for page := 1; page <= 3; page++ {
		books, err := model.GetAll(ctx, newestFirst(page, 2))
		require.NoError(t, err)
		for _, b := range books {
			seen = append(seen, b.Title)
		}
	}
	assert.Equal(t, []string{"fifth", "fourth", "third", "second", "first"}, seen)

	books, err := model.GetAll(ctx, newestFirst(4, 2))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookModel_GetAllTieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	model := testutil.NewBookModel(t, testutil.NewClock(start, 0))

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, model.Insert(ctx, testutil.Book(title)))
	}

	books, err := model.GetAll(ctx, newestFirst(1, 10))
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "c", books[0].Title)
	assert.Equal(t, "a", books[2].Title)
}

func TestBookModel_ContextCancelled(t *testing.T) {
	model := testutil.NewBookModel(t, testutil.NewClock(start, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := model.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
