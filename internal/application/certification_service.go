package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// NotificationSender dispatches a message to an email address. Implementations
// may send directly (Mailgun) or enqueue for a worker (RabbitMQ).
type NotificationSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

const certificationSubject = "Please certify your email address"

// CertificationService composes and dispatches the email-ownership
// verification message. The body format is fixed; the link host comes from
// configuration.
type CertificationService struct {
	Sender  NotificationSender
	BaseURL string // e.g. http://localhost:8080
	Logger  *logrus.Logger
}

func NewCertificationService(sender NotificationSender, baseURL string, logger *logrus.Logger) *CertificationService {
	return &CertificationService{Sender: sender, BaseURL: baseURL, Logger: logger}
}

// Send dispatches the verification mail for the given user. Transport failure
// is surfaced as ErrNotification; no retry happens at this layer.
func (s *CertificationService) Send(ctx context.Context, toEmail string, userID int64, certificationCode string) error {
	link := fmt.Sprintf("%s/api/users/%d/verify?certificationCode=%s", s.BaseURL, userID, certificationCode)
	body := "Please click the following link to certify your email address: " + link

	if err := s.Sender.Send(ctx, toEmail, certificationSubject, body); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("certification mail dispatch failed")
		}
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}
	return nil
}
