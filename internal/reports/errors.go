package reports

import (
	"fmt"

	"reqlog-analytics/internal/shared/svcerrors"
)

// ReportService errors
const (
	codeValidationFailed = "RPT_1000"
	codeInvalidRange     = "RPT_1001"

	codeInternalRequestStoreFailed = "RPT_9000"
	codeInternalSelectionFailed    = "RPT_9001"
	codeInternalAggregationFailed  = "RPT_9002"
)

// errValidationFailed returns an error for report parameter validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInvalidRange returns an error when a report range has end <= start.
func errInvalidRange(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRange, "end time must be after start time", cause)
}

// errInternalRequestStoreFailed returns an error when a request store operation fails.
func errInternalRequestStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRequestStoreFailed, fmt.Errorf("requestStoreFailed: %w", cause))
}

// errInternalSelectionFailed returns an error when the selection pass fails.
func errInternalSelectionFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSelectionFailed, fmt.Errorf("selectionFailed: %w", cause))
}

// errInternalAggregationFailed returns an error when the rollup pass fails.
func errInternalAggregationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("aggregationFailed: %w", cause))
}
