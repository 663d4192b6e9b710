// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWakeUpConfig(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetWakeUpThreshold(0x15))
	require.NoError(t, d.SetWakeUpDuration(2))
	require.NoError(t, d.SetSleepDuration(7))
	assert.Equal(t, byte(0x15), m.Register(BankUser, RegWakeUpThs)&0x3F)
	assert.Equal(t, byte(0x47), m.Register(BankUser, RegWakeUpDur))
}

func TestSetFreeFall(t *testing.T) {
	d, m := newTestDevice()
	// 6-bit duration splits: bit 5 into WAKE_UP_DUR, bits 4:0 into
	// FREE_FALL alongside the threshold.
	require.NoError(t, d.SetFreeFall(FreeFall312mg, 0x23))
	assert.Equal(t, byte(0x80), m.Register(BankUser, RegWakeUpDur)&0x80)
	assert.Equal(t, byte(0x03<<3|0x03), m.Register(BankUser, RegFreeFall))
}

func TestTapConfig(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.EnableTapAxes(true, false, true))
	assert.Equal(t, byte(0x0A), m.Register(BankUser, RegTapCfg0)&0x0E)

	require.NoError(t, d.SetTapThresholdX(0x09))
	require.NoError(t, d.SetTapThresholdY(0x0A))
	require.NoError(t, d.SetTapThresholdZ(0x0B))
	assert.Equal(t, byte(0x09), m.Register(BankUser, RegTapCfg1)&0x1F)
	assert.Equal(t, byte(0x0A), m.Register(BankUser, RegTapCfg2)&0x1F)
	assert.Equal(t, byte(0x0B), m.Register(BankUser, RegTapThs6D)&0x1F)

	require.NoError(t, d.SetTapPriority(TapPriorityZYX))
	assert.Equal(t, byte(TapPriorityZYX)<<5, m.Register(BankUser, RegTapCfg1)&0xE0)

	require.NoError(t, d.SetTapWindow(3, 1, 7))
	assert.Equal(t, byte(0x77), m.Register(BankUser, RegIntDur2))

	require.NoError(t, d.SetDoubleTap(true))
	assert.NotZero(t, m.Register(BankUser, RegWakeUpThs)&0x80)

	require.NoError(t, d.EnableInterrupts(true))
	assert.NotZero(t, m.Register(BankUser, RegTapCfg2)&0x80)
}

func TestActivityMode(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetActivityMode(ActivityGyroSleep))
	assert.Equal(t, byte(2)<<5, m.Register(BankUser, RegTapCfg2)&0x60)

	mode, err := d.ActivityMode()
	require.NoError(t, err)
	assert.Equal(t, ActivityGyroSleep, mode)
}

func TestSetLatchedInterrupts(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetLatchedInterrupts(true))
	assert.NotZero(t, m.Register(BankUser, RegTapCfg0)&0x01)
	assert.NotZero(t, m.Register(BankEmbedded, RegPageRW)&embFuncLIR)
	requireIdleState(t, m)

	require.NoError(t, d.SetLatchedInterrupts(false))
	assert.Zero(t, m.Register(BankUser, RegTapCfg0)&0x01)
	assert.Zero(t, m.Register(BankEmbedded, RegPageRW)&embFuncLIR)
}

func TestIntRouting(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.RouteInt1(IntRoute{SingleTap: true, DoubleTap: true}))
	assert.Equal(t, byte(0x48), m.Register(BankUser, RegMD1Cfg))

	require.NoError(t, d.RouteInt2(IntRoute{WakeUp: true, EmbFunc: true}))
	assert.Equal(t, byte(0x22), m.Register(BankUser, RegMD2Cfg))
}

func TestAllSources(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegAllIntSrc, 0x05)  // free fall + single tap
	m.SetRegister(BankUser, RegWakeUpSrc, 0x04)  // wake on X
	m.SetRegister(BankUser, RegTapSrc, 0x09)     // tap Z, negative sign
	m.SetRegister(BankUser, RegD6DSrc, 0x20)     // Z high
	m.SetRegister(BankUser, RegEmbStatusMain, 0x08)

	s, err := d.AllSources()
	require.NoError(t, err)
	assert.True(t, s.FreeFall)
	assert.True(t, s.SingleTap)
	assert.False(t, s.WakeUp)
	assert.True(t, s.WakeX)
	assert.True(t, s.TapZ)
	assert.True(t, s.TapSign)
	assert.True(t, s.ZH)
	assert.False(t, s.ZL)
	assert.True(t, s.StepDetected)
	assert.False(t, s.Tilt)
}
