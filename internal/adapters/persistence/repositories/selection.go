package repositories

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Connector opens the expense store
type Connector func() (*gorm.DB, error)

// Fallback reasons reported by SelectGateway
const (
	ReasonNoConnectionString = "no connection string configured"
	ReasonPlaceholder        = "connection string is a placeholder"
	ReasonConnectFailed      = "could not connect to expense store"
)

var placeholderMarkers = []string{"yourserver", "your-server", "<server>", "changeme"}

// IsPlaceholderDSN reports whether dsn still carries template text
func IsPlaceholderDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// SelectGateway picks the stored-procedure gateway when dsn is usable and the
// store accepts a connection, otherwise the dummy gateway. The returned DB is
// nil in dummy mode. Every fallback is logged with its reason.
func SelectGateway(dsn string, connect Connector, logger *zap.Logger) (ExpenseGateway, *gorm.DB) {
	fallback := func(reason string, fields ...zap.Field) (ExpenseGateway, *gorm.DB) {
		logger.Warn("using dummy expense data", append(fields, zap.String("reason", reason))...)
		return NewDummyGateway(logger), nil
	}

	switch {
	case strings.TrimSpace(dsn) == "":
		return fallback(ReasonNoConnectionString)
	case IsPlaceholderDSN(dsn):
		return fallback(ReasonPlaceholder)
	}

	db, err := connect()
	if err != nil {
		return fallback(ReasonConnectFailed, zap.Error(err))
	}

	logger.Info("expense store connected", zap.String("mode", ModeDatabase))
	return NewStoredProcGateway(db), db
}
