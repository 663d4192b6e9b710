// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRegisterWritable(t *testing.T) {
	ranges := "0x10-0x19,0x56-0x5F,0x6B"

	assert.True(t, isRegisterWritable(0x10, ranges))
	assert.True(t, isRegisterWritable(0x15, ranges))
	assert.True(t, isRegisterWritable(0x19, ranges))
	assert.True(t, isRegisterWritable(0x56, ranges))
	assert.True(t, isRegisterWritable(0x5F, ranges))
	assert.True(t, isRegisterWritable(0x6B, ranges))

	assert.False(t, isRegisterWritable(0x0F, ranges))
	assert.False(t, isRegisterWritable(0x1A, ranges))
	assert.False(t, isRegisterWritable(0x55, ranges))
	assert.False(t, isRegisterWritable(0x60, ranges))
	assert.False(t, isRegisterWritable(0x6A, ranges))
}

func TestIsRegisterWritableEmptyDeniesAll(t *testing.T) {
	for addr := 0; addr < 0x80; addr++ {
		assert.False(t, isRegisterWritable(byte(addr), ""))
	}
}

func TestIsRegisterWritableMalformedRanges(t *testing.T) {
	// Malformed entries are skipped, valid ones still apply
	assert.True(t, isRegisterWritable(0x12, "garbage,0x10-0x19"))
	assert.False(t, isRegisterWritable(0x30, "garbage,0x10-0x19"))

	// Inverted range is rejected entirely
	assert.False(t, isRegisterWritable(0x15, "0x19-0x10"))

	// Whitespace is tolerated
	assert.True(t, isRegisterWritable(0x57, " 0x56 - 0x5F "))
}

func TestParseRange(t *testing.T) {
	lo, hi, ok := parseRange("0x10-0x19")
	assert.True(t, ok)
	assert.Equal(t, byte(0x10), lo)
	assert.Equal(t, byte(0x19), hi)

	lo, hi, ok = parseRange("0x6B")
	assert.True(t, ok)
	assert.Equal(t, byte(0x6B), lo)
	assert.Equal(t, byte(0x6B), hi)

	_, _, ok = parseRange("not-a-range")
	assert.False(t, ok)
}
