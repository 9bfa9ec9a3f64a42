package service

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
)

// MySQL lock wait timeout and deadlock error numbers. Either one means a
// concurrent writer held the contended rows; the unit of work is retried
// once before the conflict surfaces.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

func isLockConflict(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrLockWaitTimeout || mysqlErr.Number == mysqlErrDeadlock
	}
	return false
}

// runConflictRetry executes fn in a transaction, retrying once when the
// transaction layer reports a lock conflict. The surviving error carries the
// conflict kind so callers know retrying again is their decision.
func runConflictRetry(ctx context.Context, db *database.DB, logger *logrus.Logger, fn func(tx *database.Transaction) error) error {
	err := db.WithTransaction(ctx, fn)
	if err == nil || !isLockConflict(err) {
		return err
	}

	logger.WithError(err).Warn("Transaction lock conflict, retrying once")

	err = db.WithTransaction(ctx, fn)
	if err != nil && isLockConflict(err) {
		return serviceerror.Conflict(err.Error())
	}
	return err
}
