// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/codec"
)

func TestSaveLoadBytes(t *testing.T) {
	require := require.New(t)

	filename := filepath.Join(t.TempDir(), "nested", "SaveBytes")
	h := codec.Hash{1, 2, 3}
	require.NoError(SaveBytes(filename, h[:]))
	require.FileExists(filename)

	b, err := LoadBytes(filename, len(h))
	require.NoError(err)
	require.Equal(h[:], b)

	_, err = LoadBytes(filename, 5)
	require.ErrorIs(err, codec.ErrInvalidSize)

	_, err = LoadBytes(filepath.Join(t.TempDir(), "missing"), -1)
	require.ErrorIs(err, os.ErrNotExist)
}

func TestTimestamp(t *testing.T) {
	require := require.New(t)

	ms := uint64(1605573564072)
	s := FormatTimestamp(ms)
	require.Equal("2020-11-17T00:39:24.072Z", s)

	parsed, err := ParseTimestamp(s)
	require.NoError(err)
	require.Equal(ms, parsed)

	parsed, err = ParseTimestamp("2020-11-17T01:39:24.072+01:00")
	require.NoError(err)
	require.Equal(ms, parsed)

	_, err = ParseTimestamp("yesterday")
	require.ErrorIs(err, ErrInvalidTimestamp)

	require.Equal(uint64(0), UnixMilli(time.Unix(-10, 0)))
}

func TestFormatTTL(t *testing.T) {
	tests := []struct {
		ms   uint64
		want string
	}{
		{0, "0s"},
		{500, "500ms"},
		{30 * msPerMinute, "30m"},
		{msPerHour + 30*msPerMinute, "1h 30m"},
		{msPerDay, "1day"},
		{2*msPerDay + msPerHour + 1, "2days 1h 1ms"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatTTL(tt.ms))
		parsed, err := ParseTTL(tt.want)
		require.NoError(t, err, tt.want)
		require.Equal(t, tt.ms, parsed, tt.want)
	}
}

func TestParseTTL(t *testing.T) {
	require := require.New(t)

	ms, err := ParseTTL("90m0s")
	require.NoError(err)
	require.Equal(90*msPerMinute, ms)

	ms, err = ParseTTL("1 hour 2 minutes")
	require.NoError(err)
	require.Equal(msPerHour+2*msPerMinute, ms)

	for _, in := range []string{"", "fortnight", "3 weeks", "10m and more", "-5m"} {
		_, err := ParseTTL(in)
		require.ErrorIs(err, ErrInvalidDuration, in)
	}
}

func TestTryMap(t *testing.T) {
	require := require.New(t)

	out, i, err := TryMap(strconv.Atoi, []string{"1", "2", "3"})
	require.NoError(err)
	require.Equal(-1, i)
	require.Equal([]int{1, 2, 3}, out)

	_, i, err = TryMap(strconv.Atoi, []string{"1", "x", "3"})
	require.ErrorIs(err, strconv.ErrSyntax)
	require.Equal(1, i)

	require.Equal([]int{2, 4}, Map(func(v int) int { return v * 2 }, []int{1, 2}))
}

func TestParseTTLOverflow(t *testing.T) {
	require := require.New(t)

	_, err := ParseTTL("213503982334601days")
	require.ErrorIs(err, ErrInvalidDuration)

	_, err = ParseTTL("213503982334days 23h 59m")
	require.ErrorIs(err, ErrInvalidDuration)

	// The largest TTL still round trips.
	largest := ^uint64(0)
	got, err := ParseTTL(FormatTTL(largest))
	require.NoError(err)
	require.Equal(largest, got)
}

func TestFormatTimestampBounds(t *testing.T) {
	require := require.New(t)

	require.Equal("9999-12-31T23:59:59.999Z", FormatTimestamp(MaxTimestamp))
	ms, err := ParseTimestamp(FormatTimestamp(MaxTimestamp))
	require.NoError(err)
	require.Equal(MaxTimestamp, ms)

	_, err = ParseTimestamp(FormatTimestamp(MaxTimestamp + 1))
	require.ErrorIs(err, ErrInvalidTimestamp)
}
