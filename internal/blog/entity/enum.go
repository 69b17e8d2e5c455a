package entity

import "strings"

type PostStatus int16

const (
	// PostStatusUnknown is mean status is not known / not set.
	PostStatusUnknown PostStatus = 0

	// PostStatusDraft mean post is only visible to its author.
	PostStatusDraft PostStatus = 1

	// PostStatusPublished mean post is visible to everyone.
	PostStatusPublished PostStatus = 2
)

func (ps PostStatus) String() string {
	switch ps {
	case PostStatusDraft:
		return "Draft"
	case PostStatusPublished:
		return "Published"
	default:
		return "Unknown"
	}
}

func (ps PostStatus) Ensure() PostStatus {
	switch ps {
	case PostStatusDraft:
		return PostStatusDraft
	case PostStatusPublished:
		return PostStatusPublished
	default:
		return PostStatusUnknown
	}
}

// ParsePostStatus maps the request wording to a status. Anything
// unrecognized comes back unknown so callers can reject it.
func ParsePostStatus(raw string) PostStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "draft":
		return PostStatusDraft
	case "published":
		return PostStatusPublished
	default:
		return PostStatusUnknown
	}
}

type ReactionKind int16

const (
	ReactionKindUnknown ReactionKind = 0
	ReactionKindLike    ReactionKind = 1
	ReactionKindDislike ReactionKind = 2
)

func (rk ReactionKind) String() string {
	switch rk {
	case ReactionKindLike:
		return "Like"
	case ReactionKindDislike:
		return "Dislike"
	default:
		return "Unknown"
	}
}

func ParseReactionKind(raw string) ReactionKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "like":
		return ReactionKindLike
	case "dislike":
		return ReactionKindDislike
	default:
		return ReactionKindUnknown
	}
}
