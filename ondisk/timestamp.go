package ondisk

import (
	"time"

	"github.com/tinyfs/tinyfs/util/timestamp"
)

// Now returns the current time in UTC, honoring SOURCE_DATE_EPOCH for
// reproducible test fixtures and builds.
func Now() time.Time {
	return timestamp.GetTime()
}

func putTimestamp(b []byte, offset int, t time.Time) {
	slot := b[offset : offset+TimestampSlotSize]
	for i := range slot {
		slot[i] = 0
	}
	copy(slot, t.UTC().Format(TimeLayout))
}

func getTimestamp(b []byte, offset int) (time.Time, error) {
	slot := b[offset : offset+TimestampSlotSize]
	n := 0
	for n < len(slot) && slot[n] != 0 {
		n++
	}
	return time.Parse(TimeLayout, string(slot[:n]))
}
