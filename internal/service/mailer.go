package service

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/glum-catalog/backend/internal/config"
)

const defaultMailQueueSize = 64

// Sender is the mail transport. The SMTP implementation is swapped for a
// fake in tests.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	addr     string
	username string
	password string
	from     string
	host     string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		host:     cfg.Host,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if s.host == "" {
		return fmt.Errorf("mail transport not configured")
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	var a smtp.Auth
	if s.username != "" {
		a = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	return smtp.SendMail(s.addr, a, s.from, []string{to}, []byte(msg))
}

type mailJob struct {
	id      string
	to      string
	subject string
	body    string
}

// Mailer is the asynchronous notification sink. Enqueue never blocks the
// caller; a full queue drops the message with a log line. Transport
// failures are logged and never propagate to the login or signup path.
type Mailer struct {
	sender        Sender
	queue         chan mailJob
	verifyBaseURL string
}

func NewMailer(sender Sender, cfg config.MailConfig) *Mailer {
	size := defaultMailQueueSize
	if strings.TrimSpace(cfg.QueueSize) != "" {
		if parsed, err := strconv.Atoi(cfg.QueueSize); err == nil && parsed > 0 {
			size = parsed
		}
	}

	return &Mailer{
		sender:        sender,
		queue:         make(chan mailJob, size),
		verifyBaseURL: strings.TrimRight(cfg.VerifyBaseURL, "/"),
	}
}

// Run drains the queue until the context is cancelled. Started once from
// main as a background goroutine.
func (m *Mailer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-m.queue:
			if err := m.sender.Send(job.to, job.subject, job.body); err != nil {
				log.Printf("[Mailer] Failed to deliver %s to %s: %v", job.id, job.to, err)
				continue
			}
			log.Printf("[Mailer] Delivered %s to %s", job.id, job.to)
		}
	}
}

func (m *Mailer) EnqueueVerification(email, firstName string) {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thanks for registering. Please click the link below to verify your email address:\n\n"+
			"%s/api/v1/users/verify-email/%s\n\n"+
			"If you did not request this email, you can ignore it.\n",
		firstName, m.verifyBaseURL, email,
	)

	m.enqueue(mailJob{
		id:      uuid.NewString(),
		to:      email,
		subject: "Verify your email address",
		body:    body,
	})
}

func (m *Mailer) enqueue(job mailJob) {
	select {
	case m.queue <- job:
	default:
		log.Printf("[Mailer] Queue full, dropping %s to %s", job.id, job.to)
	}
}
