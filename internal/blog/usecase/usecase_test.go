package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Go 1.22 is out!  ", "go-1-22-is-out"},
		{"---already---dashed---", "already-dashed"},
		{"Çafé au lait", "caf-au-lait"},
		{"UPPER", "upper"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.raw), "raw %q", tt.raw)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", excerpt("short", 120))

	long := strings.Repeat("é", 150)
	got := excerpt(long, 120)
	assert.Equal(t, strings.Repeat("é", 120)+"…", got)

	exact := strings.Repeat("a", 120)
	assert.Equal(t, exact, excerpt(exact, 120))
}

func TestReadTimeMinutes(t *testing.T) {
	assert.Equal(t, int32(0), readTimeMinutes(""))
	assert.Equal(t, int32(0), readTimeMinutes("   \n\t "))
	assert.Equal(t, int32(1), readTimeMinutes("just a few words"))
	assert.Equal(t, int32(1), readTimeMinutes(strings.Repeat("word ", 225)))
	assert.Equal(t, int32(2), readTimeMinutes(strings.Repeat("word ", 226)))
}

func flatComment(id int64, parent *int64, offset time.Duration) entity.Comment {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	return entity.Comment{
		ID:        id,
		ParentID:  parent,
		Body:      "body",
		CreatedAt: base.Add(offset),
	}
}

func TestBuildThreadNesting(t *testing.T) {
	p1 := int64(1)
	p2 := int64(2)

	// 1 ── 2 ── 4
	//  └── 3
	// 5
	comments := []entity.Comment{
		flatComment(1, nil, 0),
		flatComment(2, &p1, time.Minute),
		flatComment(3, &p1, 2*time.Minute),
		flatComment(4, &p2, 3*time.Minute),
		flatComment(5, nil, 4*time.Minute),
	}

	roots := buildThread(comments)
	require.Len(t, roots, 2)

	assert.Equal(t, int64(1), roots[0].Comment.ID)
	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, int64(2), roots[0].Replies[0].Comment.ID)
	assert.Equal(t, int64(3), roots[0].Replies[1].Comment.ID)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, int64(4), roots[0].Replies[0].Replies[0].Comment.ID)

	assert.Equal(t, int64(5), roots[1].Comment.ID)
	assert.Empty(t, roots[1].Replies)
}

func TestBuildThreadOrphanPromotion(t *testing.T) {
	gone := int64(999)
	comments := []entity.Comment{
		flatComment(1, nil, 0),
		flatComment(2, &gone, time.Minute),
	}

	roots := buildThread(comments)
	require.Len(t, roots, 2)
	assert.Equal(t, int64(1), roots[0].Comment.ID)
	assert.Equal(t, int64(2), roots[1].Comment.ID)
}

func TestBuildThreadEmpty(t *testing.T) {
	assert.Empty(t, buildThread(nil))
}
