package stores

import (
	"context"
	"errors"
	"strings"
	"time"

	"reqlog-analytics/internal/models"
)

var (
	// ErrStoreUnavailable is returned when the backing storage cannot be
	// reached or read. It is terminal for the current report invocation.
	ErrStoreUnavailable = errors.New("request store unavailable")
)

// Net-class query values: permanent networks vs temporary deployments
// (network codes starting with X, Y or Z).
const (
	NetClassAny       = "%"
	NetClassPermanent = "p"
	NetClassTemporary = "t"
)

// RequestQuery is the coarse filter resolved by the store before records
// reach the in-process selector. String fields use SQL-LIKE semantics: "%"
// matches any run of characters, an empty field means "%".
type RequestQuery struct {
	RequestID string
	UserID    string
	Start     time.Time
	End       time.Time
	Type      string
	Network   string
	Station   string
	Location  string
	Channel   string
	NetClass  string
}

// HasStreamFilter reports whether any stream segment or the net class
// narrows the query beyond "match everything".
func (q RequestQuery) HasStreamFilter() bool {
	for _, seg := range []string{q.Network, q.Station, q.Location, q.Channel} {
		if seg != "" && seg != "%" {
			return true
		}
	}
	return q.NetClass != "" && q.NetClass != NetClassAny
}

// RequestStore resolves coarse queries into request records and populates
// their nested sub-lines on demand. Both load operations are idempotent:
// they fill the respective sub-sequence if its loaded flag is unset and are
// no-ops otherwise. Records returned by Query carry no sub-lines and no
// loaded flags; records without a summary (unfinished requests) are dropped.
//
//go:generate mockgen -source=request_store.go -destination=./mocks/request_store_mock.go -package=mocks
type RequestStore interface {
	Query(ctx context.Context, q RequestQuery) ([]*models.RequestRecord, error)
	LoadStatusLines(ctx context.Context, record *models.RequestRecord) error
	LoadRequestLines(ctx context.Context, record *models.RequestRecord) error
}

// matchLike matches s against a SQL-LIKE pattern where '%' matches any run
// of characters (including none). An empty pattern matches everything.
func matchLike(pattern, s string) bool {
	if pattern == "" || pattern == "%" {
		return true
	}
	parts := strings.Split(pattern, "%")
	if len(parts) == 1 {
		return pattern == s
	}

	if parts[0] != "" {
		if !strings.HasPrefix(s, parts[0]) {
			return false
		}
		s = s[len(parts[0]):]
	}
	last := parts[len(parts)-1]
	if last != "" {
		if !strings.HasSuffix(s, last) {
			return false
		}
		s = s[:len(s)-len(last)]
	}
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
	return true
}

// netClassOf classifies a network code: X/Y/Z prefixes mark temporary or
// experimental deployments.
func netClassOf(network string) string {
	if network != "" && strings.ContainsRune("XYZ", rune(network[0])) {
		return NetClassTemporary
	}
	return NetClassPermanent
}
