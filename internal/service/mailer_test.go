package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glum-catalog/backend/internal/config"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+"|"+body)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestMailerDeliversVerification(t *testing.T) {
	sender := &fakeSender{}
	mailer := NewMailer(sender, config.MailConfig{VerifyBaseURL: "http://localhost:8080"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mailer.Run(ctx)

	mailer.EnqueueVerification("b@x.com", "Bea")

	deadline := time.Now().Add(2 * time.Second)
	for sender.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("verification mail was never delivered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if !strings.Contains(sender.sent[0], "b@x.com|") {
		t.Fatalf("unexpected recipient: %q", sender.sent[0])
	}
	if !strings.Contains(sender.sent[0], "http://localhost:8080/api/v1/users/verify-email/b@x.com") {
		t.Fatalf("verification link missing: %q", sender.sent[0])
	}
}

func TestMailerEnqueueNeverBlocks(t *testing.T) {
	// No worker running and a tiny queue: the overflow must be dropped,
	// not block the login path.
	mailer := NewMailer(&fakeSender{}, config.MailConfig{QueueSize: "1"})

	done := make(chan struct{})
	go func() {
		mailer.EnqueueVerification("one@x.com", "One")
		mailer.EnqueueVerification("two@x.com", "Two")
		mailer.EnqueueVerification("three@x.com", "Three")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("enqueue blocked on a full queue")
	}
}
