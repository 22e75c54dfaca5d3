package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"spa-booking/internal/data/entity"
	"spa-booking/internal/data/repository"
	"spa-booking/pkg/mailer"
	"spa-booking/pkg/storage"

	"go.uber.org/zap"
)

// notifier produces the side effects of a payment transition: a receipt
// artifact in file storage and a mail fan-out to everyone on the booking.
// Both are best-effort; a failure here never rolls back a paid booking.
type notifier struct {
	repo   *repository.Repository
	files  storage.FileStore
	sender mailer.Sender
	log    *zap.Logger
}

func newNotifier(repo *repository.Repository, files storage.FileStore, sender mailer.Sender, log *zap.Logger) *notifier {
	return &notifier{
		repo:   repo,
		files:  files,
		sender: sender,
		log:    log.With(zap.String("service", "notifier")),
	}
}

func (n *notifier) finalize(ctx context.Context, booking *entity.Booking, kind mailer.Kind) {
	msg := mailer.Message{
		Kind:       kind,
		BookingRef: booking.BookingRef,
		Deposit:    booking.DepositAmount,
	}

	slot, err := n.repo.Slot.FindByID(ctx, booking.SlotID)
	if err == nil && slot != nil {
		msg.Date = slot.SlotDate.Format("2006-01-02")
		msg.StartTime = slot.StartTime

		if svc, err := n.repo.Service.FindByID(ctx, slot.ServiceID); err == nil && svc != nil {
			msg.Service = svc.Name
		}
	}

	n.writeReceipt(ctx, booking, msg)
	n.fanOut(ctx, booking, msg)
}

// writeReceipt renders a plain-text receipt artifact and attaches its path to
// the booking.
func (n *notifier) writeReceipt(ctx context.Context, booking *entity.Booking, msg mailer.Message) {
	now := time.Now()

	var b strings.Builder
	fmt.Fprintf(&b, "Booking receipt %s\n", booking.BookingRef)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format(time.RFC3339))
	if msg.Service != "" {
		fmt.Fprintf(&b, "Service: %s\n", msg.Service)
	}
	if msg.Date != "" {
		fmt.Fprintf(&b, "Scheduled: %s %s\n", msg.Date, msg.StartTime)
	}
	fmt.Fprintf(&b, "Subtotal: %.2f\n", booking.TotalAmount)
	fmt.Fprintf(&b, "Discount: %.2f\n", booking.DiscountAmount)
	fmt.Fprintf(&b, "Total: %.2f\n", booking.FinalAmount)
	fmt.Fprintf(&b, "Deposit: %.2f\n", booking.DepositAmount)
	fmt.Fprintf(&b, "Payment status: %s\n", booking.PaymentStatus)

	filename := fmt.Sprintf("%s-%d.txt", booking.BookingRef, now.Unix())
	path, err := n.files.Save("receipts", filename, []byte(b.String()))
	if err != nil {
		n.log.Error("Failed to write receipt artifact",
			zap.String("booking_ref", booking.BookingRef),
			zap.Error(err),
		)
		return
	}

	if err := n.repo.Booking.AttachReceipt(ctx, booking.ID, path); err != nil {
		n.log.Error("Failed to attach receipt",
			zap.String("booking_ref", booking.BookingRef),
			zap.Error(err),
		)
		return
	}
	booking.DigitalReceipt = &path
}

// fanOut mails the customer and every participant with an email address,
// deduplicated by lowercased trimmed address.
func (n *notifier) fanOut(ctx context.Context, booking *entity.Booking, msg mailer.Message) {
	var emails []string
	names := make(map[string]string)

	add := func(email, name string) {
		key := strings.ToLower(strings.TrimSpace(email))
		emails = append(emails, email)
		if _, ok := names[key]; !ok {
			names[key] = name
		}
	}

	customer, err := n.repo.Customer.FindByID(ctx, booking.CustomerID)
	if err == nil && customer != nil {
		add(customer.Email, customer.Name)
	}

	participants, err := n.repo.Participant.FindByBookingID(ctx, booking.ID)
	if err == nil {
		for _, p := range participants {
			add(p.Email, p.Name)
		}
	}

	for _, email := range dedupeEmails(emails) {
		if err := n.sender.Send(email, names[email], msg); err != nil {
			n.log.Warn("Notification delivery failed",
				zap.String("booking_ref", booking.BookingRef),
				zap.String("to", email),
				zap.Error(err),
			)
		}
	}
}

// dedupeEmails is the fan-out's recipient normalization, split out so the
// rule is testable on its own. Order of first appearance wins.
func dedupeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		key := strings.ToLower(strings.TrimSpace(e))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
