package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/inkpress/inkpress/internal/notification/usecase"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/messaging"
	"github.com/inkpress/inkpress/internal/pkg/uid"
	"github.com/inkpress/inkpress/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// OTPCodeNotification delivers a one-time code by email. The payload body
// carries the plaintext code, so it is never logged here.
func (h *MQHandler) OTPCodeNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPCodeNotification")
	defer span.End()

	var payload event.OTPCodeMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp code notification", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "consume: otp code notification", "scope", payload.Scope, "email", payload.Email)

	if err := h.uc.ConsumeOTPCode(ctx, usecase.ConsumeOTPCodeInput{
		Scope:    payload.Scope,
		Email:    payload.Email,
		FullName: payload.FullName,
		Code:     payload.Code,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp code", "scope", payload.Scope, "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) UserRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered notification", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		UserID:   payload.UserID,
		Email:    payload.Email,
		FullName: payload.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) CommentCreatedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "CommentCreatedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: comment created notification", "msg_body", string(body))

	var payload event.CommentCreatedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of comment created notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeCommentCreated(ctx, usecase.ConsumeCommentCreatedInput{
		CommentID:     payload.CommentID,
		PostID:        payload.PostID,
		PostSlug:      payload.PostSlug,
		PostTitle:     payload.PostTitle,
		PostAuthorID:  payload.PostAuthorID,
		CommenterID:   payload.CommenterID,
		CommenterName: payload.CommenterName,
		Excerpt:       payload.Excerpt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume comment created", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
