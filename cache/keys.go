package cache

import (
	"fmt"
	"time"
)

// Cache keys and the invalidation pairs that go with them.
//
// ClientListKey is invalidated by any client create/update/delete and by a
// booking confirmation (which creates a client as a side effect).
// ClientCheckupsKey is invalidated by create/update/delete of any checkup
// under that client.

const ClientListKey = "clients:list"

// DefaultTTL bounds staleness if an invalidation is ever missed.
const DefaultTTL = 24 * time.Hour

func ClientCheckupsKey(clientID string) string {
	return fmt.Sprintf("client:%s:checkups", clientID)
}
