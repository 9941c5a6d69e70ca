package application

import (
	"context"
	"errors"
	"testing"
)

func TestCertificationService_Send(t *testing.T) {
	t.Run("composes the exact verification message", func(t *testing.T) {
		sender := &fakeSender{}
		svc := NewCertificationService(sender, "http://localhost:8080", nil)

		if err := svc.Send(context.Background(), "test@test.com", 1, "bbbb-bbbb-bbbb"); err != nil {
			t.Fatalf("Send() error = %v", err)
		}

		if sender.to != "test@test.com" {
			t.Errorf("to = %q, want test@test.com", sender.to)
		}
		if sender.subject != "Please certify your email address" {
			t.Errorf("subject = %q", sender.subject)
		}
		wantBody := "Please click the following link to certify your email address: " +
			"http://localhost:8080/api/users/1/verify?certificationCode=bbbb-bbbb-bbbb"
		if sender.body != wantBody {
			t.Errorf("body = %q, want %q", sender.body, wantBody)
		}
	})

	t.Run("wraps transport failure as ErrNotification", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("connection refused")}
		svc := NewCertificationService(sender, "http://localhost:8080", nil)

		err := svc.Send(context.Background(), "test@test.com", 1, "bbbb-bbbb-bbbb")
		if !errors.Is(err, ErrNotification) {
			t.Errorf("Send() error = %v, want ErrNotification", err)
		}
	})
}
