package usecase

import (
	"testing"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentUpdateRecordsEditHistory(t *testing.T) {
	db := &fakeBlogDB{comment: &entity.Comment{ID: 11, AuthorID: 7, Body: "first draft"}}
	uc := newBlogFixture(t, db, newFakeBlogCache())

	err := uc.CommentUpdate(writerCtx(t), CommentUpdateInput{CommentID: 11, Body: "second draft"})
	require.NoError(t, err)

	// a fresh edit id goes along with the replacement body
	require.Len(t, db.editIDs, 1)
	assert.NotZero(t, db.editIDs[0])
	assert.Equal(t, []string{"second draft"}, db.newBodys)
}

func TestCommentUpdateOnlyByAuthor(t *testing.T) {
	db := &fakeBlogDB{comment: &entity.Comment{ID: 11, AuthorID: 99, Body: "first draft"}}
	uc := newBlogFixture(t, db, newFakeBlogCache())

	err := uc.CommentUpdate(writerCtx(t), CommentUpdateInput{CommentID: 11, Body: "second draft"})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Only the author can modify this comment", gerr.Msg())
	assert.Empty(t, db.editIDs)
}

func TestCommentUpdateDeletedCommentHidden(t *testing.T) {
	db := &fakeBlogDB{comment: &entity.Comment{ID: 11, AuthorID: 7, Deleted: true}}
	uc := newBlogFixture(t, db, newFakeBlogCache())

	err := uc.CommentUpdate(writerCtx(t), CommentUpdateInput{CommentID: 11, Body: "second draft"})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Comment not found", gerr.Msg())
	assert.Empty(t, db.editIDs)
}
