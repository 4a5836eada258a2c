// Package scroll holds the held-direction repeat timing for controls.
package scroll

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
)

// Default timings.
const (
	DefaultStart  = 400 * time.Millisecond
	DefaultRepeat = 100 * time.Millisecond
)

// Param is the delay before a held direction first repeats and the
// interval between later repeats.
type Param struct {
	Start  time.Duration
	Repeat time.Duration
}

// Default returns the default timing.
func Default() Param {
	return Param{Start: DefaultStart, Repeat: DefaultRepeat}
}

// Parse builds a Param from duration strings such as "400ms". Empty fields
// take the fallback value.
func Parse(start, repeat string, fallback Param) (Param, error) {
	p := fallback
	if start != "" {
		d, err := time.ParseDuration(start)
		if err != nil {
			return fallback, fmt.Errorf("scroll start %q: %w", start, err)
		}
		p.Start = d
	}
	if repeat != "" {
		d, err := time.ParseDuration(repeat)
		if err != nil {
			return fallback, fmt.Errorf("scroll repeat %q: %w", repeat, err)
		}
		p.Repeat = d
	}
	if !p.Valid() {
		return fallback, fmt.Errorf("scroll timing %s: delays must be positive", p)
	}
	return p, nil
}

// Valid reports whether both delays are positive.
func (p Param) Valid() bool {
	return p.Start > 0 && p.Repeat > 0
}

// IsZero reports whether p is unset.
func (p Param) IsZero() bool {
	return p.Start == 0 && p.Repeat == 0
}

// Or returns p unless it is unset.
func (p Param) Or(fallback Param) Param {
	if p.IsZero() {
		return fallback
	}
	return p
}

// String returns a readable form such as "start 400 milliseconds, repeat 100 milliseconds".
func (p Param) String() string {
	return fmt.Sprintf("start %s, repeat %s", human(p.Start), human(p.Repeat))
}

func human(d time.Duration) string {
	if d <= 0 {
		return d.String()
	}
	return durafmt.Parse(d).LimitFirstN(1).String()
}
