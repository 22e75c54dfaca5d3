package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session maps a bearer token to a customer. Tokens are issued by the auth
// service; this side only reads them.
type Session struct {
	ID         uuid.UUID `db:"id"`
	CustomerID uuid.UUID `db:"customer_id"`
	Token      string    `db:"token"`
	Role       string    `db:"role"`
	ExpiresAt  time.Time `db:"expires_at"`
	CreatedAt  time.Time `db:"created_at"`
}
