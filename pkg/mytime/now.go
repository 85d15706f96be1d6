// Package mytime supplies the current time. Tests fix it by setting
// environment variable TEST_TIME, e.g. "2024-Feb-01 12:00:00".
package mytime

import (
	"os"
	"time"
)

const testLayout = "2006-Jan-02 15:04:05"

func Now() time.Time {
	if v := os.Getenv("TEST_TIME"); v != "" {
		t, err := time.Parse(testLayout, v)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// Fresh reports whether something last modified at mod is younger
// than ttl.
func Fresh(mod time.Time, ttl time.Duration) bool {
	return mod.Add(ttl).After(Now())
}

// OlderThan reports whether mod lies more than days days in the past.
// It is false for days <= 0.
func OlderThan(mod time.Time, days int) bool {
	if days <= 0 {
		return false
	}
	return Now().Sub(mod) > time.Duration(days)*24*time.Hour
}
