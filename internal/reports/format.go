package reports

import "fmt"

// ByteSize renders a byte count in the report's human-readable form.
func ByteSize(bytes int64) string {
	b := float64(bytes)
	switch {
	case b < 1e3:
		return fmt.Sprintf("%d B", bytes)
	case b < 1e6:
		return fmt.Sprintf("%.1f KiB", b/1024)
	case b < 1e9:
		return fmt.Sprintf("%.1f MiB", b/(1024*1024))
	case b < 1e12:
		return fmt.Sprintf("%.1f GiB", b/(1024*1024*1024))
	case b < 1e15:
		return fmt.Sprintf("%.1f TiB", b/(1024*1024*1024*1024))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Seconds renders a duration in seconds in the report's human-readable form.
func Seconds(s int64) string {
	const (
		minute = 60
		hour   = 3600
		day    = 86400
		year   = 31536000
	)
	switch {
	case s < minute:
		return fmt.Sprintf("%ds", s)
	case s < hour:
		return fmt.Sprintf("%dm %ds", s/minute, s%minute)
	case s < day:
		return fmt.Sprintf("%dh %dm", s/hour, (s%hour)/minute)
	case s < year:
		return fmt.Sprintf("%dd %dh", s/day, (s%day)/hour)
	default:
		return fmt.Sprintf("%dy %dd", s/year, (s%year)/day)
	}
}
