// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice() (*Device, *MockTransport) {
	m := NewMockTransport()
	return New(m), m
}

// requireIdleState asserts the canonical idle state: user bank selected,
// page selector at 0, burst enable bits cleared.
func requireIdleState(t *testing.T, m *MockTransport) {
	t.Helper()
	require.Equal(t, byte(0), m.Register(BankUser, RegFuncCfgAccess)>>funcCfgAccessShift&0x03, "bank not restored to user")
	require.Equal(t, byte(0), m.Register(BankEmbedded, RegPageSel)>>pageSelShift, "page selector not reset")
	require.Equal(t, byte(0), m.Register(BankEmbedded, RegPageRW)&pageRWMask, "burst enable not cleared")
}

func TestPagedWriteReadRoundTrip(t *testing.T) {
	d, m := newTestDevice()

	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = byte(0xA0 + i)
	}
	require.NoError(t, d.PagedWrite(0x0FA, buf))

	// Data landed at the right linear addresses, across the boundary.
	assert.Equal(t, byte(0xA0), m.PageByte(0x0FA))
	assert.Equal(t, byte(0xA5), m.PageByte(0x0FF))
	assert.Equal(t, byte(0xA6), m.PageByte(0x100))
	assert.Equal(t, byte(0xB3), m.PageByte(0x10D))

	got := make([]byte, 20)
	require.NoError(t, d.PagedRead(0x0FA, got))
	assert.Equal(t, buf, got)
	requireIdleState(t, m)
}

func TestPagedWriteSpansMultipleBoundaries(t *testing.T) {
	d, m := newTestDevice()

	buf := make([]byte, 600)
	for i := range buf {
		buf[i] = byte(i * 7)
	}
	m.ResetLog()
	require.NoError(t, d.PagedWrite(0x0F0, buf))

	// 0x0F0 + 600 runs through pages 0..3: three boundary crossings, so
	// PAGE_SEL is written at the start, once per wrap and once in cleanup.
	assert.Equal(t, 5, m.CountWrites(RegPageSel))
	// In-page address is issued once; the device auto-increments.
	assert.Equal(t, 1, m.CountWrites(RegPageAddress))
	assert.Equal(t, len(buf), m.CountWrites(RegPageValue))

	assert.Equal(t, buf[0], m.PageByte(0x0F0))
	assert.Equal(t, buf[16], m.PageByte(0x100))
	assert.Equal(t, buf[272], m.PageByte(0x200))
	assert.Equal(t, buf[599], m.PageByte(0x347))

	got := make([]byte, 600)
	require.NoError(t, d.PagedRead(0x0F0, got))
	assert.Equal(t, buf, got)
	requireIdleState(t, m)
}

func TestPagedReadAddressPerByte(t *testing.T) {
	d, m := newTestDevice()
	for i := 0; i < 40; i++ {
		m.SetPageByte(uint16(0x1F0+i), byte(i+1))
	}

	m.ResetLog()
	got := make([]byte, 40)
	require.NoError(t, d.PagedRead(0x1F0, got))
	for i := range got {
		require.Equal(t, byte(i+1), got[i])
	}

	// Reads re-issue the in-page address before every PAGE_VALUE access.
	assert.Equal(t, len(got), m.CountWrites(RegPageAddress))
	// One boundary crossing: PAGE_SEL at start, at the wrap and in cleanup.
	assert.Equal(t, 3, m.CountWrites(RegPageSel))
	requireIdleState(t, m)
}

func TestPagedSingleByteEdges(t *testing.T) {
	d, m := newTestDevice()
	for _, addr := range []uint16{0x000, 0x0FF, 0x100, 0x1D1, 0xFFF} {
		t.Run(fmt.Sprintf("addr_0x%03X", addr), func(t *testing.T) {
			require.NoError(t, d.PagedWriteByte(addr, 0x5A))
			v, err := d.PagedReadByte(addr)
			require.NoError(t, err)
			assert.Equal(t, byte(0x5A), v)
			assert.Equal(t, byte(0x5A), m.PageByte(addr))
			requireIdleState(t, m)
		})
	}
}

func TestPagedZeroLength(t *testing.T) {
	d, m := newTestDevice()

	m.ResetLog()
	require.NoError(t, d.PagedWrite(0x123, nil))
	require.NoError(t, d.PagedRead(0x123, nil))

	// Zero-length bursts only switch the bank there and back; the page
	// window registers are never touched.
	assert.Equal(t, 0, m.CountWrites(RegPageSel))
	assert.Equal(t, 0, m.CountWrites(RegPageAddress))
	assert.Equal(t, 0, m.CountWrites(RegPageValue))
	for _, txn := range m.Log() {
		assert.Equal(t, byte(RegFuncCfgAccess), txn.Reg)
	}
	requireIdleState(t, m)
}

func TestPagedWriteFailureRestoresState(t *testing.T) {
	d, m := newTestDevice()
	buf := []byte{1, 2, 3, 4, 5}

	// Baseline run to learn the transaction count.
	m.ResetLog()
	require.NoError(t, d.PagedWrite(0x050, buf))
	total := len(m.Log())

	for k := 1; k <= total; k++ {
		m.ResetLog()
		m.FailAt = k
		err := d.PagedWrite(0x050, buf)
		require.Error(t, err, "injected failure at transaction %d must surface", k)

		// The final bank restore is a read-modify-write pair; short of
		// one of those two transactions failing, the bank is always back
		// to user.
		if k <= total-2 {
			require.Equal(t, byte(0), m.Register(BankUser, RegFuncCfgAccess)>>funcCfgAccessShift&0x03,
				"bank not restored with failure at transaction %d", k)
		}
		// When the failure precedes the cleanup sequence (its last six
		// transactions), the cleanup runs to completion and the full idle
		// state holds.
		if k <= total-6 {
			requireIdleState(t, m)
		}
	}
}

func TestPagedReadFailureRestoresState(t *testing.T) {
	d, m := newTestDevice()
	got := make([]byte, 5)

	m.ResetLog()
	require.NoError(t, d.PagedRead(0x050, got))
	total := len(m.Log())

	for k := 1; k <= total; k++ {
		m.ResetLog()
		m.FailAt = k
		err := d.PagedRead(0x050, got)
		require.Error(t, err)
		if k <= total-6 {
			requireIdleState(t, m)
		}
	}
}

func TestPagedWriteAbortsEarly(t *testing.T) {
	d, m := newTestDevice()
	buf := make([]byte, 32)

	// Fail the third PAGE_VALUE write. Setup is bank (2 transactions),
	// burst enable (2), page select (2) and the in-page address (1).
	const k = 7 + 3
	m.ResetLog()
	m.FailAt = k
	err := d.PagedWrite(0x020, buf)
	require.Error(t, err)

	// Only the bytes before the failure were attempted, then the fixed
	// six-transaction cleanup ran. No further data transfer happened.
	assert.Equal(t, k+6, len(m.Log()))
	assert.Equal(t, 3, m.CountWrites(RegPageValue))
	requireIdleState(t, m)
}

func TestWithBankRestoresOnError(t *testing.T) {
	d, m := newTestDevice()

	wantErr := fmt.Errorf("boom")
	err := d.withBank(BankSensorHub, func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, byte(0), m.Register(BankUser, RegFuncCfgAccess)>>funcCfgAccessShift&0x03)
}

func TestPagedWriteConcurrentSafety(t *testing.T) {
	d, m := newTestDevice()

	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func(g int) {
			buf := make([]byte, 16)
			for i := range buf {
				buf[i] = byte(g)
			}
			done <- d.PagedWrite(uint16(g)<<8, buf)
		}(g)
	}
	for g := 0; g < 8; g++ {
		require.NoError(t, <-done)
	}
	// The device mutex serializes bursts, so each region holds exactly
	// one writer's bytes.
	for g := 0; g < 8; g++ {
		for i := 0; i < 16; i++ {
			require.Equal(t, byte(g), m.PageByte(uint16(g)<<8|uint16(i)))
		}
	}
	requireIdleState(t, m)
}
