// Package storage provides the key-value persistence used for budgets,
// visit records and newsletter subscriptions. Values are opaque JSON blobs.
package storage

import (
	"context"
	"errors"
)

// Keys shared by the services.
const (
	KeyBudgets       = "budgets"
	KeyVisitRecord   = "visitRecord"
	KeySubscriptions = "newsletterSubscriptions"
)

// ErrUnavailable marks a backend that could not serve the call.
var ErrUnavailable = errors.New("storage unavailable")

// Store is a string-keyed blob store. A missing key is reported as
// ok == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Closer is implemented by stores holding an open file or connection.
type Closer interface {
	Close() error
}

// VisitKey returns the visit record key of one visitor. An empty visitor
// id maps to the shared key.
func VisitKey(visitorID string) string {
	if visitorID == "" {
		return KeyVisitRecord
	}
	return KeyVisitRecord + ":" + visitorID
}
