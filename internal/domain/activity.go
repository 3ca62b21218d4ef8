package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity actions recorded in the append-only log.
const (
	ActivityOrderPlaced     = "order.placed"
	ActivityOrderStatus     = "order.status_changed"
	ActivityReturnRequested = "return.requested"
	ActivityReturnDecided   = "return.decided"
	ActivityStockRestocked  = "inventory.restocked"
	ActivityUserSignedUp    = "user.signed_up"
	ActivityUserLoggedIn    = "user.logged_in"
)

// ActivityEntry is one row of the append-only activity log. Entries are
// never updated or deleted.
type ActivityEntry struct {
	ID        int64
	UserID    uuid.UUID
	Action    string
	Entity    string
	EntityID  uuid.UUID
	CreatedAt time.Time
}
