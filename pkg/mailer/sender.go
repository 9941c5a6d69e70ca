package mailer

import (
	"context"

	"github.com/mkwon-dev/user-account-service/pkg/helpers"
)

// DirectSender sends notifications synchronously through Mailgun.
type DirectSender struct {
	MG *Mailgun
}

func NewDirectSender(m *Mailgun) *DirectSender {
	return &DirectSender{MG: m}
}

func (s *DirectSender) Send(ctx context.Context, to, subject, body string) error {
	return s.MG.Send(ctx, to, subject, body, "")
}

// QueuedSender enqueues notifications on RabbitMQ for the email worker.
// Delivery retries are the worker's concern; enqueue failure is the send
// failure from the caller's point of view.
type QueuedSender struct {
	Pub *helpers.RabbitPublisher
}

func NewQueuedSender(pub *helpers.RabbitPublisher) *QueuedSender {
	return &QueuedSender{Pub: pub}
}

func (s *QueuedSender) Send(ctx context.Context, to, subject, body string) error {
	return s.Pub.PublishJSON(ctx, EmailJob{To: to, Subject: subject, Text: body})
}
