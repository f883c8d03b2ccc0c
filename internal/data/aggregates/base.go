package aggregates

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// BaseDeps is shared by every aggregate. Runner and Hooks are optional.
type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	return d
}

// executeWrite runs fn in one transaction, maps the failure to an aggregate
// code and reports the outcome to the hooks under op.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	start := time.Now()

	raw := deps.Runner.InTx(ctx, fn)
	err := MapError(op, raw)
	code := domainagg.CodeOf(err)

	switch code {
	case domainagg.CodeConflict:
		deps.Hooks.IncConflict(op)
	case domainagg.CodeRetryable:
		deps.Hooks.IncRetry(op)
	case domainagg.CodeInternal:
		deps.Log.Error("aggregate write failed", "op", op, "error", raw)
	}
	deps.Hooks.ObserveOperation(op, writeStatus(err), time.Since(start))
	return err
}

// writeStatus is the metrics label for a write outcome.
func writeStatus(err error) string {
	if err == nil {
		return "success"
	}
	if code := domainagg.CodeOf(err); code != "" {
		return string(code)
	}
	return string(domainagg.CodeInternal)
}
