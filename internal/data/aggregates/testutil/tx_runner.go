package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

// InjectedTxRunner counts transaction outcomes and can fail on demand. With
// DB set the body runs in a real transaction, so FailCommit also undoes the
// body's writes.
type InjectedTxRunner struct {
	mu sync.Mutex

	DB *gorm.DB

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin, failCommit, db := r.FailBegin, r.FailCommit, r.DB
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failCommit
	}

	var err error
	if db != nil {
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return body(dbctx.Context{Ctx: ctx, Tx: tx})
		})
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
