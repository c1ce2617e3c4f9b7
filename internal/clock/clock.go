// Package clock provides the wall clock used for event and progress
// timestamps and for picking a generator seed.
package clock

import "time"

// NowFunc returns the current time; tests replace it.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
