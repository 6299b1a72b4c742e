package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"
)

// IsTransient reports whether err looks like the store being briefly
// unreachable rather than a query problem.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	switch {
	// PostgreSQL admin shutdown / cannot connect now (57P01, 57P03)
	case strings.Contains(msg, "sqlstate 57p01"),
		strings.Contains(msg, "sqlstate 57p03"),
		strings.Contains(msg, "the database system is starting up"):
		return true
	// MySQL server gone away (2006) / lost connection (2013)
	case strings.Contains(msg, "server has gone away"),
		strings.Contains(msg, "lost connection"):
		return true
	// SQLite lock contention
	case strings.Contains(msg, "database is locked"):
		return true
	case strings.Contains(msg, "connection reset by peer"),
		strings.Contains(msg, "broken pipe"):
		return true
	}
	return false
}
