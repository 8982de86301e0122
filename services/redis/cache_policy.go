package redis

import (
	"fmt"
	"time"
)

// CachePolicy declares how one operation's results are cached: the key
// template its entries live under, how long they live, and which key
// patterns a mutation must sweep. Policies are plain data declared next
// to the operations that use them, so the full caching contract of a
// service is readable in one place.
type CachePolicy struct {
	KeyTemplate          string
	TTL                  time.Duration
	InvalidationPatterns []string
}

// Key renders the policy's key template with the given arguments.
func (p CachePolicy) Key(args ...interface{}) string {
	return fmt.Sprintf(p.KeyTemplate, args...)
}
