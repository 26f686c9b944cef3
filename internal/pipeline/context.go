package pipeline

import (
	"github.com/google/uuid"

	"github.com/banshee-data/sofind/internal/obslog"
	"github.com/banshee-data/sofind/internal/workerpool"
)

// Context carries the per-run state of one pipeline.Run call: a run
// identifier, the verbosity level, and the worker pool. It has no
// logger of its own; Run's progress messages go through the
// package-level obslog.Logf. Stage functions do not receive the
// Context: Run hands its pool to the S+C finder and the reliability
// stage through their Params.
type Context struct {
	RunID     string
	Verbosity int
	Pool      *workerpool.Pool
}

// NewContext builds a Context with a fresh run ID and a worker pool
// sized per poolSize (0 auto-detects the processor count).
func NewContext(verbosity, poolSize int) *Context {
	return &Context{
		RunID:     uuid.New().String(),
		Verbosity: verbosity,
		Pool:      workerpool.New(poolSize),
	}
}

func (c *Context) logf(format string, args ...any) {
	if c.Verbosity <= 0 {
		return
	}
	obslog.Logf("[%s] "+format, append([]any{c.RunID}, args...)...)
}
