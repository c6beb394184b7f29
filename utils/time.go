// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/deploysdk/consts"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z"

	// MaxTimestamp is 9999-12-31T23:59:59.999Z, the last instant with a
	// four digit year.
	MaxTimestamp uint64 = 253402300799999
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDuration  = errors.New("invalid duration")

	durationToken = regexp.MustCompile(`^(\d+)\s*([a-z]+)$`)
	durationSplit = regexp.MustCompile(`(\d+)\s*([a-zA-Z]+)`)
)

const (
	msPerSecond = uint64(consts.MillisecondsPerSecond)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

var durationUnits = map[string]uint64{
	"ms":      1,
	"msec":    1,
	"s":       msPerSecond,
	"sec":     msPerSecond,
	"secs":    msPerSecond,
	"second":  msPerSecond,
	"seconds": msPerSecond,
	"m":       msPerMinute,
	"min":     msPerMinute,
	"mins":    msPerMinute,
	"minute":  msPerMinute,
	"minutes": msPerMinute,
	"h":       msPerHour,
	"hr":      msPerHour,
	"hrs":     msPerHour,
	"hour":    msPerHour,
	"hours":   msPerHour,
	"d":       msPerDay,
	"day":     msPerDay,
	"days":    msPerDay,
}

// UnixMilli returns [t] in milliseconds since the epoch, or 0 before it.
func UnixMilli(t time.Time) uint64 {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}

// FormatTimestamp renders [ms] as RFC3339 with millisecond precision in UTC.
func FormatTimestamp(ms uint64) string {
	return time.UnixMilli(int64(ms)).UTC().Format(timestampLayout)
}

func ParseTimestamp(s string) (uint64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}
	if t.UnixMilli() < 0 {
		return 0, fmt.Errorf("%w: %q is before the epoch", ErrInvalidTimestamp, s)
	}
	return uint64(t.UnixMilli()), nil
}

// FormatTTL renders [ms] the way the ledger's JSON does, e.g. "30m",
// "1h 30m" or "1day 2h".
func FormatTTL(ms uint64) string {
	if ms == 0 {
		return "0s"
	}
	var parts []string
	if days := ms / msPerDay; days > 0 {
		if days == 1 {
			parts = append(parts, "1day")
		} else {
			parts = append(parts, fmt.Sprintf("%ddays", days))
		}
		ms %= msPerDay
	}
	for _, u := range []struct {
		ms   uint64
		name string
	}{
		{msPerHour, "h"},
		{msPerMinute, "m"},
		{msPerSecond, "s"},
		{1, "ms"},
	} {
		if n := ms / u.ms; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, u.name))
			ms %= u.ms
		}
	}
	return strings.Join(parts, " ")
}

// ParseTTL reads a humanized duration ("1h 30m", "2days", "500ms") or a
// go duration ("90m0s") into milliseconds.
func ParseTTL(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidDuration)
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative", ErrInvalidDuration)
		}
		return uint64(d / time.Millisecond), nil
	}

	var total uint64
	rest := s
	for _, tok := range durationSplit.FindAllString(s, -1) {
		m := durationToken.FindStringSubmatch(strings.ToLower(tok))
		if m == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, tok)
		}
		unit, ok := durationUnits[m[2]]
		if !ok {
			return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, m[2])
		}
		n, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidDuration, err)
		}
		product, err := smath.Mul64(n, unit)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidDuration, s, err)
		}
		if total, err = smath.Add64(total, product); err != nil {
			return 0, fmt.Errorf("%w: %q: %w", ErrInvalidDuration, s, err)
		}
		rest = strings.Replace(rest, tok, "", 1)
	}
	if strings.TrimSpace(rest) != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return total, nil
}
