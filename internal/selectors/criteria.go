package selectors

import "strings"

// StreamPattern is the fine-grained stream filter: each non-empty segment
// must match the request line's segment exactly; an empty segment means
// "don't filter on this segment".
type StreamPattern struct {
	Network  string
	Station  string
	Location string
	Channel  string
}

// ParseStreamPattern refines a raw "NET.STA.LOC.CHA" pattern for in-process
// matching: wildcard characters are stripped so the remaining non-empty
// segments are exact matches (the coarse store query keeps the wildcards —
// this is the second of the two refinement passes). A pattern that does not
// split into four segments filters nothing.
func ParseStreamPattern(raw string) StreamPattern {
	stripped := strings.NewReplacer("*", "", "?", "", "%", "").Replace(raw)
	parts := strings.Split(stripped, ".")
	if len(parts) != 4 {
		return StreamPattern{}
	}
	return StreamPattern{Network: parts[0], Station: parts[1], Location: parts[2], Channel: parts[3]}
}

// Criteria is the fine-grained, all-optional filter applied after records
// have been coarse-filtered by the store.
//
//   - Restricted: nil = any, otherwise must equal the line's restricted flag.
//   - UserIP/ClientIP: nil = unset; a pointer to the empty string matches
//     records with no recorded IP (the "unknown" category).
//   - VolumeID/Message: empty string = unset.
type Criteria struct {
	Restricted *bool
	OnlyErrors bool
	WantLines  bool
	VolumeID   string
	Message    string
	UserIP     *string
	ClientIP   *string
	Stream     StreamPattern
}

// Narrowing reports whether any fine-grained criterion is set. The stream
// pattern alone does not narrow: it only takes effect inside the
// request-line pass, which runs when WantLines or Restricted is set.
func (c Criteria) Narrowing() bool {
	return c.Restricted != nil ||
		c.OnlyErrors ||
		c.WantLines ||
		c.VolumeID != "" ||
		c.Message != "" ||
		c.UserIP != nil ||
		c.ClientIP != nil
}

func (c Criteria) wantRequestLines() bool {
	return c.WantLines || c.Restricted != nil
}
