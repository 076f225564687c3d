package models

import (
	"fmt"
	"strings"
)

type RequestType string

const (
	TypeWaveform  RequestType = "WAVEFORM"
	TypeRouting   RequestType = "ROUTING"
	TypeInventory RequestType = "INVENTORY"
	TypeResponse  RequestType = "RESPONSE"
	TypeQC        RequestType = "QC"
)

// NewRequestTypeFromString parses a request type, case-insensitively.
func NewRequestTypeFromString(s string) (RequestType, error) {
	switch t := RequestType(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeWaveform, TypeRouting, TypeInventory, TypeResponse, TypeQC:
		return t, nil
	default:
		return "", fmt.Errorf("invalid request type: %q", s)
	}
}
