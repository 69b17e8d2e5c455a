package event

const CommentCreatedDestination string = "comment_created"
const CommentCreatedConsumerNotification string = "comment_created_notification"

// CommentCreatedMessage fans out a new comment to the post author's
// notification channels.
type CommentCreatedMessage struct {
	CommentID     int64  `json:"comment_id"`
	PostID        int64  `json:"post_id"`
	PostSlug      string `json:"post_slug"`
	PostTitle     string `json:"post_title"`
	PostAuthorID  int64  `json:"post_author_id"`
	CommenterID   int64  `json:"commenter_id"`
	CommenterName string `json:"commenter_name"`
	Excerpt       string `json:"excerpt"`
}
