package inbound

import (
	"testing"
	"time"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/stretchr/testify/assert"
)

func TestParseIDs(t *testing.T) {
	assert.Equal(t, []int64{10, 20}, parseIDs([]string{"10", "garbage", "-1", "0", "20"}))
	assert.Empty(t, parseIDs(nil))
}

func TestToPostResponse(t *testing.T) {
	cover := "https://cdn.example.com/cover.png"
	p := entity.Post{
		ID:         1,
		AuthorID:   2,
		AuthorName: "Ada Writer",
		Slug:       "hello-world",
		Title:      "Hello World",
		Body:       "full body",
		CoverURL:   &cover,
		Status:     entity.PostStatusPublished,
		CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	listed := toPostResponse(p, false)
	assert.Empty(t, listed.Body, "listing omits the body")
	assert.Equal(t, "published", listed.Status)
	assert.Equal(t, cover, listed.CoverURL)

	detailed := toPostResponse(p, true)
	assert.Equal(t, "full body", detailed.Body)
}
