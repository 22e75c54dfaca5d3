package mailer

import (
	"fmt"

	"spa-booking/pkg/utils"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Kind distinguishes the notification flavor sent on payment transitions.
type Kind string

const (
	KindPendingReview Kind = "pending_review"
	KindConfirmed     Kind = "confirmed"
	KindUpdated       Kind = "updated"
)

// Message is a rendered booking-confirmation payload.
type Message struct {
	Kind       Kind
	BookingRef string
	Service    string
	Date       string
	StartTime  string
	Deposit    float64
}

// Sender delivers a rendered booking notification to a recipient. Delivery
// failures are the caller's to log and swallow; a failed mail must never roll
// back a paid booking.
type Sender interface {
	Send(email, name string, msg Message) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (s *smtpSender) Send(email, name string, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", email, name)
	m.SetHeader("Subject", subjectFor(msg))
	m.SetBody("text/plain", bodyFor(name, msg))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", email, err)
	}

	s.log.Info("Notification sent",
		zap.String("to", email),
		zap.String("kind", string(msg.Kind)),
		zap.String("booking_ref", msg.BookingRef),
	)
	return nil
}

func subjectFor(msg Message) string {
	switch msg.Kind {
	case KindPendingReview:
		return fmt.Sprintf("Receipt received for booking %s", msg.BookingRef)
	case KindUpdated:
		return fmt.Sprintf("Booking %s updated", msg.BookingRef)
	default:
		return fmt.Sprintf("Booking %s confirmed", msg.BookingRef)
	}
}

func bodyFor(name string, msg Message) string {
	greeting := "Hi"
	if name != "" {
		greeting = fmt.Sprintf("Hi %s", name)
	}

	switch msg.Kind {
	case KindPendingReview:
		return fmt.Sprintf("%s,\n\nWe received your payment receipt for %s on %s at %s (booking %s). Our staff will verify it shortly.\n",
			greeting, msg.Service, msg.Date, msg.StartTime, msg.BookingRef)
	default:
		return fmt.Sprintf("%s,\n\nYour booking %s for %s on %s at %s is confirmed. Deposit paid: %.2f.\n",
			greeting, msg.BookingRef, msg.Service, msg.Date, msg.StartTime, msg.Deposit)
	}
}
