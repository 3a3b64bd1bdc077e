// Package sqlerr turns database errors into API errors.
//
// It reads the SQLSTATE and constraint metadata of driver errors and
// converts them into user-friendly messages (e.g., a "foreign key
// violation" becomes a 400 "The referenced Badge does not exist").
//
// Both stores speak this package: the PostgreSQL repository hands back
// pgconn.PgError (converted here), and the in-memory repository builds
// *Error values directly so constraint failures look identical upstream.
package sqlerr

import "fmt"

// Code is the application-level category of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	TooManyConnections  Code = "too_many_connections"
	LockNotAvailable    Code = "lock_not_available"
	QueryCanceled       Code = "query_canceled"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
)

// Severity mirrors the PostgreSQL severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s: %s (constraint %s)", e.Code, e.Message, e.ConstraintName)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// sqlstates maps SQLSTATE codes to Code.
// https://www.postgresql.org/docs/current/errcodes-appendix.html
var sqlstates = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"53300": TooManyConnections,
	"55P03": LockNotAvailable,
	"57014": QueryCanceled,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
}

// MapCode converts a SQLSTATE into a Code.
func MapCode(sqlstate string) Code {
	if code, ok := sqlstates[sqlstate]; ok {
		return code
	}
	return Other
}

// MapSeverity converts a PostgreSQL severity string into a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
