package repository

import (
	"context"
	"regexp"
	"testing"

	"harnect/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	item := &models.ContentItem{AuthorID: 1, MediaRef: "abc.png", Caption: "hello", Kind: models.ContentKindPost}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "content_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, item)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	t.Run("Found with liked status", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "content_items"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "caption", "kind", "comments_count", "likes_count", "liked"}).
				AddRow(1, 101, "hello", "post", 2, 5, true))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(101).
			WillReturnRows(sqlmock.NewRows([]string{"id", "handle"}).AddRow(101, "alice"))

		item, err := repo.GetByID(ctx, 1, 7)
		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, 5, item.LikesCount)
		assert.Equal(t, 2, item.CommentsCount)
		assert.True(t, item.Liked)
		assert.Equal(t, "alice", item.Author.Handle)
	})

	t.Run("Missing item", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "content_items"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 404, 7)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_ListFeed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "content_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "caption", "kind"}).
			AddRow(2, 101, "newer", "post").
			AddRow(1, 101, "older", "post"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id", "handle"}).AddRow(101, "alice"))

	items, err := repo.ListFeed(ctx, models.ContentKindPost, 20, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Caption)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_DeleteCascade(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","kind" FROM "content_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind"}).AddRow(1, "post"))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE content_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE content_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "content_items"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteCascade(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_DeleteCascade_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","kind" FROM "content_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind"}))
	mock.ExpectRollback()

	err := repo.DeleteCascade(ctx, 404)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_Orphaned(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`LEFT JOIN users ON users.id = content_items.author_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "media_ref"}).AddRow(9, "stray.png"))

	items, err := repo.Orphaned(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "stray.png", items[0].MediaRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}
