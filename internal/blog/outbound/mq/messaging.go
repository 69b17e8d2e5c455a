package mq

import (
	"context"
	"encoding/json"

	"github.com/inkpress/inkpress/internal/blog/usecase"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/messaging"
	"github.com/inkpress/inkpress/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, destination string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	_, err = m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	})

	return err
}

// PublishCommentCreated fans a fresh comment out to the notification
// module.
func (m *Messaging) PublishCommentCreated(ctx context.Context, msg usecase.CommentCreatedEvent) error {
	ctx, span := m.ins.Tracer("blog.outbound.mq").Start(ctx, "PublishCommentCreated")
	defer span.End()

	err := m.publish(ctx, event.CommentCreatedDestination, event.CommentCreatedMessage{
		CommentID:     msg.CommentID,
		PostID:        msg.PostID,
		PostSlug:      msg.PostSlug,
		PostTitle:     msg.PostTitle,
		PostAuthorID:  msg.PostAuthorID,
		CommenterID:   msg.CommenterID,
		CommenterName: msg.CommenterName,
		Excerpt:       msg.Excerpt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
