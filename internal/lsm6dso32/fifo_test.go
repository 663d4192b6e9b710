// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOWatermark(t *testing.T) {
	d, m := newTestDevice()
	// The stop-on-watermark flag shares FIFO_CTRL2 with the watermark
	// high bit and must survive it.
	require.NoError(t, d.SetStopOnWatermark(true))

	for _, wtm := range []uint16{0, 1, 255, 256, 511} {
		require.NoError(t, d.SetFIFOWatermark(wtm))
		got, err := d.FIFOWatermark()
		require.NoError(t, err)
		assert.Equal(t, wtm, got)
		assert.NotZero(t, m.Register(BankUser, RegFIFOCtrl2)&0x80,
			"stop-on-watermark flag clobbered at wtm=%d", wtm)
	}
}

func TestFIFOMode(t *testing.T) {
	d, m := newTestDevice()
	for _, mode := range []FIFOMode{FIFOModeBypass, FIFOModeStopOnFull,
		FIFOModeContToFull, FIFOModeBypassToCont, FIFOModeContinuous,
		FIFOModeBypassToStop} {
		require.NoError(t, d.SetFIFOMode(mode))
		got, err := d.FIFOMode()
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	// Reserved patterns decode as bypass.
	m.SetRegister(BankUser, RegFIFOCtrl4, 0x02)
	got, err := d.FIFOMode()
	require.NoError(t, err)
	assert.Equal(t, FIFOModeBypass, got)
}

func TestFIFOBatchRates(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetAccelBatchRate(Batch104Hz))
	require.NoError(t, d.SetGyroBatchRate(Batch833Hz))
	assert.Equal(t, byte(0x74), m.Register(BankUser, RegFIFOCtrl3))

	require.NoError(t, d.SetTempBatchRate(2))
	require.NoError(t, d.SetTimestampDecimation(1))
	c4 := m.Register(BankUser, RegFIFOCtrl4)
	assert.Equal(t, byte(0x20), c4&0x30)
	assert.Equal(t, byte(0x40), c4&0xC0)
}

func TestFIFOStatusRead(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegFIFOStatus1, 0x2A)
	m.SetRegister(BankUser, RegFIFOStatus2, 0x81)
	st, err := d.FIFOStatusRead()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x12A), st.Level)
	assert.True(t, st.Watermark)
	assert.False(t, st.Overrun)
	assert.False(t, st.Full)
}

func TestNextFIFORecord(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegFIFODataTag, byte(TagAccel)<<3|1<<1)
	payload := []byte{0xE8, 0x03, 0x18, 0xFC, 0x00, 0x40}
	for i, b := range payload {
		m.SetRegister(BankUser, RegFIFODataXL+byte(i), b)
	}

	rec, err := d.NextFIFORecord()
	require.NoError(t, err)
	assert.Equal(t, TagAccel, rec.Tag)
	assert.Equal(t, byte(1), rec.Cnt)
	assert.Equal(t, [3]int16{1000, -1000, 16384}, rec.Vector())
}

func TestSetStepBatching(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetStepBatching(true))
	assert.NotZero(t, m.Register(BankEmbedded, RegEmbFuncFIFOCfg)&0x40)
	requireIdleState(t, m)

	require.NoError(t, d.SetStepBatching(false))
	assert.Zero(t, m.Register(BankEmbedded, RegEmbFuncFIFOCfg)&0x40)
}
