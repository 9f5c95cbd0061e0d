package application

import "time"

// Clock interface supaya gampang ditest. After ikut di sini supaya loop yang
// tidur antar iterasi bisa digerakkan clock yang sama dengan Now.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
