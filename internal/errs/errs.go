// Package errs defines the error shapes returned to API clients.
//
// Every failure leaves the API as an HTTPError serialized to JSON, so
// clients see one consistent body whatever layer produced the error.
package errs

import "strings"

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
