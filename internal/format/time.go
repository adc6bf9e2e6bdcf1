package format

import "time"

// UnixToTime converts a record timestamp (seconds since the UNIX epoch) to a
// UTC time.Time.
func UnixToTime(v uint32) time.Time {
	return time.Unix(int64(v), 0).UTC()
}
