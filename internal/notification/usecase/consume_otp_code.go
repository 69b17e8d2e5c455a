package usecase

import (
	"context"
	"log/slog"

	"github.com/inkpress/inkpress/internal/notification/entity"
	"github.com/inkpress/inkpress/internal/pkg/mail"
)

type (
	ConsumeOTPCodeInput struct {
		Scope    string `validate:"required"`
		Email    string `validate:"required,email"`
		FullName string
		Code     string `validate:"required,numeric"`
	}
)

//nolint:gochecknoglobals // lookup table, never mutated
var otpTriggerKeys = map[string]entity.TriggerKey{
	"register":     entity.TriggerKeyOTPRegister,
	"mfa":          entity.TriggerKeyOTPLogin,
	"pwd_reset":    entity.TriggerKeyOTPPasswordReset,
	"email_change": entity.TriggerKeyOTPEmailChange,
	"invite":       entity.TriggerKeyOTPInvite,
}

// ConsumeOTPCode mails a one-time code to its recipient. The code exists
// only in flight, so the email is sent directly without an inbox row or
// delivery log; the recipient may not even have an account yet.
func (s *Usecase) ConsumeOTPCode(ctx context.Context, in ConsumeOTPCodeInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	tk, ok := otpTriggerKeys[in.Scope]
	if !ok {
		slog.WarnContext(ctx, "unknown one-time code scope", "scope", in.Scope)
		return nil
	}

	tpl := s.getTemplate(ctx, tk, entity.ChannelEmail)
	if tpl == nil {
		return nil
	}

	data := s.baseEmailTemplateData()
	data["full_name"] = in.FullName
	data["code"] = in.Code

	body, err := s.renderTemplate("body", tpl.Body, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email body", "trigger_key", tk.String(), "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  tpl.Subject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "trigger_key", tk.String(), "error", err)
		return err
	}

	return nil
}
