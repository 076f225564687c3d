package http

import (
	"fmt"

	"reqlog-analytics/internal/shared/svcerrors"
)

// Query argument errors
const (
	codeBadQueryArgument = "HTTP_1000"
)

// errBadQueryArgument returns an error for an unparsable query argument.
func errBadQueryArgument(name, value string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeBadQueryArgument, fmt.Sprintf("bad query argument %s: %q", name, value), cause)
}
