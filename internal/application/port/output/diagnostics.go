package output

import (
	"context"

	"swaglabs-e2e/internal/domain/entity"
)

// DiagnosticsPort stores failure artifacts for a session. Capture returns
// the directory the artifacts were written to.
type DiagnosticsPort interface {
	Capture(ctx context.Context, session SessionPort, label string) (string, error)
	Snapshot(ctx context.Context, session SessionPort) (*entity.PageSnapshot, error)
}
