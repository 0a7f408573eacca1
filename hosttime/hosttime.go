// Package hosttime reports the backing file's own host filesystem
// timestamps, distinct from the textual created/modified/accessed fields
// tinyfs stores inside each inode. It is a thin, replaceable shell that
// nothing in the core mount/read/write path depends on.
package hosttime

import (
	"time"

	times "gopkg.in/djherbis/times.v1"
)

// Times reports the host filesystem's view of a backing file's timestamps.
type Times struct {
	Modified time.Time
	Accessed time.Time
	// Created is only populated when the host platform reports a birth
	// time; HasCreated distinguishes "unknown" from "the zero time".
	Created    time.Time
	HasCreated bool
}

// Stat reads the host timestamps for the backing file at path.
func Stat(path string) (Times, error) {
	t, err := times.Stat(path)
	if err != nil {
		return Times{}, err
	}
	result := Times{
		Modified: t.ModTime(),
		Accessed: t.AccessTime(),
	}
	if t.HasBirthTime() {
		result.Created = t.BirthTime()
		result.HasCreated = true
	}
	return result, nil
}
