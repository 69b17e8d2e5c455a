package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePostStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want PostStatus
	}{
		{"draft", PostStatusDraft},
		{"Draft", PostStatusDraft},
		{" published ", PostStatusPublished},
		{"PUBLISHED", PostStatusPublished},
		{"", PostStatusUnknown},
		{"archived", PostStatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePostStatus(tt.raw), "raw %q", tt.raw)
	}
}

func TestPostStatusEnsure(t *testing.T) {
	assert.Equal(t, PostStatusDraft, PostStatusDraft.Ensure())
	assert.Equal(t, PostStatusPublished, PostStatusPublished.Ensure())
	assert.Equal(t, PostStatusUnknown, PostStatus(99).Ensure())
}

func TestPostStatusString(t *testing.T) {
	assert.Equal(t, "Draft", PostStatusDraft.String())
	assert.Equal(t, "Published", PostStatusPublished.String())
	assert.Equal(t, "Unknown", PostStatusUnknown.String())
}

func TestParseReactionKind(t *testing.T) {
	tests := []struct {
		raw  string
		want ReactionKind
	}{
		{"like", ReactionKindLike},
		{"Like", ReactionKindLike},
		{" dislike ", ReactionKindDislike},
		{"none", ReactionKindUnknown},
		{"", ReactionKindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseReactionKind(tt.raw), "raw %q", tt.raw)
	}
}
