package dbctx

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

// Context bundles a request context with an optional GORM transaction.
// Repos use Tx when set and fall back to their own handle otherwise.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// DB returns the handle a repo should query with: the transaction when one is
// open, otherwise fallback, scoped to Ctx.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	t := c.Tx
	if t == nil {
		t = fallback
	}
	return t.WithContext(ctxutil.Default(c.Ctx))
}
