package roster

import "context"

// Source loads the current employee roster.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
}
