package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded files and resolves their public URLs.
type FileStore interface {
	// Save writes the file content under a generated object name and
	// returns that name. The caller owns content's lifecycle.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)

	// PublicURL resolves a stored object name to the URL it is served from.
	PublicURL(name string) string
}

// Publisher broadcasts realtime change events to subscribed clients.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
