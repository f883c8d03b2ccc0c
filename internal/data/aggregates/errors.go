package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

// SQLSTATE classes the postgres driver can surface from aggregate writes.
var pgCodes = map[string]domainagg.ErrorCode{
	"23505": domainagg.CodeConflict,
	"23503": domainagg.CodePreconditionFailed,
	"23514": domainagg.CodeValidation,
	"40001": domainagg.CodeRetryable,
	"40P01": domainagg.CodeRetryable,
	"55P03": domainagg.CodeRetryable,
}

// sqlite reports constraint failures only through the message text.
var messageCodes = []struct {
	fragment string
	code     domainagg.ErrorCode
}{
	{"unique constraint failed", domainagg.CodeConflict},
	{"duplicate key", domainagg.CodeConflict},
	{"foreign key constraint failed", domainagg.CodePreconditionFailed},
	{"check constraint failed", domainagg.CodeValidation},
	{"database is locked", domainagg.CodeRetryable},
	{"deadlock", domainagg.CodeRetryable},
	{"serialization", domainagg.CodeRetryable},
}

// MapError turns a repo or driver failure into a *domainagg.Error. Errors that
// already carry a code pass through untouched and unknown ones become
// CodeInternal.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return aggErr
	}
	return domainagg.Wrap(classify(err), op, err)
}

func classify(err error) domainagg.ErrorCode {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.CodeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainagg.CodeConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domainagg.CodePreconditionFailed
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.CodeRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, ok := pgCodes[pgErr.Code]; ok {
			return code
		}
	}

	msg := strings.ToLower(err.Error())
	for _, mc := range messageCodes {
		if strings.Contains(msg, mc.fragment) {
			return mc.code
		}
	}
	return domainagg.CodeInternal
}
