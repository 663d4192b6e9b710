// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPedometerMode(t *testing.T) {
	d, m := newTestDevice()

	for _, mode := range []PedoMode{PedoBase, PedoBaseFPRejection, PedoBaseADDetect, PedoDisabled} {
		require.NoError(t, d.SetPedometerMode(mode))
		got, err := d.PedometerMode()
		require.NoError(t, err)
		assert.Equal(t, mode, got)
		requireIdleState(t, m)
	}

	require.NoError(t, d.SetPedometerMode(PedoBaseFPRejection))
	assert.NotZero(t, m.Register(BankEmbedded, RegEmbFuncEnA)&embEnAPedo)
	assert.NotZero(t, m.PageByte(PagePedoCmdReg)&pedoCmdFPRejection)
	assert.Zero(t, m.PageByte(PagePedoCmdReg)&pedoCmdADDet)
}

func TestSteps(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankEmbedded, RegStepCounterL, 0x2A)
	m.SetRegister(BankEmbedded, RegStepCounterH, 0x01)
	n, err := d.Steps()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x12A), n)
	requireIdleState(t, m)
}

func TestResetSteps(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.ResetSteps())
	assert.NotZero(t, m.Register(BankEmbedded, RegEmbFuncSrc)&embSrcPedoRstStep)
	requireIdleState(t, m)
}

func TestStepDetected(t *testing.T) {
	d, m := newTestDevice()
	got, err := d.StepDetected()
	require.NoError(t, err)
	assert.False(t, got)

	m.SetRegister(BankEmbedded, RegEmbFuncSrc, embSrcStepDetected)
	got, err = d.StepDetected()
	require.NoError(t, err)
	assert.True(t, got)
}

func TestPedometerTuning(t *testing.T) {
	d, _ := newTestDevice()
	require.NoError(t, d.SetDebounceSteps(10))
	n, err := d.DebounceSteps()
	require.NoError(t, err)
	assert.Equal(t, byte(10), n)

	require.NoError(t, d.SetStepPeriod(0x0432))
	p, err := d.StepPeriod()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0432), p)
}

func TestFSMEnable(t *testing.T) {
	d, m := newTestDevice()

	require.NoError(t, d.SetFSMEnable(0x8001))
	got, err := d.FSMEnable()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8001), got)
	assert.NotZero(t, m.Register(BankEmbedded, RegEmbFuncEnB)&embEnBFSM,
		"global FSM enable must follow a nonzero mask")

	require.NoError(t, d.SetFSMEnable(0))
	assert.Zero(t, m.Register(BankEmbedded, RegEmbFuncEnB)&embEnBFSM,
		"global FSM enable must clear with an empty mask")
	requireIdleState(t, m)
}

func TestFSMLongCounter(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetLongCounter(0xBEEF))
	v, err := d.LongCounter()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), v)

	require.NoError(t, d.ClearLongCounter())
	assert.NotZero(t, m.Register(BankEmbedded, RegFSMLongCntClr)&0x01)

	require.NoError(t, d.SetLongCounterTimeout(0x1234))
	to, err := d.LongCounterTimeout()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), to)
	requireIdleState(t, m)
}

func TestFSMOutputs(t *testing.T) {
	d, m := newTestDevice()
	for i := byte(0); i < 16; i++ {
		m.SetRegister(BankEmbedded, RegFSMOuts1+i, i+1)
	}
	out, err := d.FSMOutputs()
	require.NoError(t, err)
	for i := range out {
		assert.Equal(t, byte(i+1), out[i])
	}
}

func TestLoadFSMPrograms(t *testing.T) {
	d, m := newTestDevice()

	// A program image long enough to wrap into the next page.
	code := make([]byte, 300)
	for i := range code {
		code[i] = byte(i ^ 0x55)
	}
	const start = 0x1A0
	require.NoError(t, d.LoadFSMPrograms(start, 3, code))

	for i, b := range code {
		require.Equal(t, b, m.PageByte(uint16(start+i)), "byte %d", i)
	}
	n, err := d.FSMProgramCount()
	require.NoError(t, err)
	assert.Equal(t, byte(3), n)
	addr, err := d.FSMStartAddress()
	require.NoError(t, err)
	assert.Equal(t, uint16(start), addr)
	requireIdleState(t, m)
}

func TestLoadFSMProgramsRejectsEmpty(t *testing.T) {
	d, _ := newTestDevice()
	require.Error(t, d.LoadFSMPrograms(0x1A0, 0, nil))
}

func TestFSMStatus(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegFSMStatusAMain, 0x81)
	m.SetRegister(BankUser, RegFSMStatusBMain, 0x01)
	st, err := d.FSMStatus()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0181), st)
}

func TestMagCompensation(t *testing.T) {
	d, m := newTestDevice()

	require.NoError(t, d.SetMagSensitivity(0x1624))
	sens, err := d.MagSensitivity()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1624), sens)

	off := [3]int16{-120, 85, 3000}
	require.NoError(t, d.SetMagOffsets(off))
	gotOff, err := d.MagOffsets()
	require.NoError(t, err)
	assert.Equal(t, off, gotOff)

	si := [6]int16{1024, -3, 7, 980, 0, 1100}
	require.NoError(t, d.SetMagSoftIron(si))
	gotSI, err := d.MagSoftIron()
	require.NoError(t, err)
	assert.Equal(t, si, gotSI)
	requireIdleState(t, m)
}

func TestMagOrientation(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetMagOrientation(MagAxisNegY, MagAxisZ, MagAxisX))
	x, y, z, err := d.MagOrientation()
	require.NoError(t, err)
	assert.Equal(t, MagAxisNegY, x)
	assert.Equal(t, MagAxisZ, y)
	assert.Equal(t, MagAxisX, z)

	// Reserved patterns normalize to the positive axis of the slot.
	m.SetPageByte(PageMagCfgB, 0x07)
	x, _, _, err = d.MagOrientation()
	require.NoError(t, err)
	assert.Equal(t, MagAxisX, x)
}

func TestConfigureSlave(t *testing.T) {
	d, m := newTestDevice()

	cfg := SlaveConfig{Addr: 0x1E, SubAddr: 0x28, Len: 6, BatchExt: true}
	require.NoError(t, d.ConfigureSlave(1, cfg))

	assert.Equal(t, byte(0x1E<<1|0x01), m.Register(BankSensorHub, RegSlv1Add))
	assert.Equal(t, byte(0x28), m.Register(BankSensorHub, RegSlv1Subadd))
	assert.Equal(t, byte(0x0E), m.Register(BankSensorHub, RegSlv1Config))
	requireIdleState(t, m)

	require.Error(t, d.ConfigureSlave(4, cfg))
	require.Error(t, d.ConfigureSlave(-1, cfg))
}

func TestWriteSlave0(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.WriteSlave0(0x1E, 0x20, 0x70))
	assert.Equal(t, byte(0x1E<<1), m.Register(BankSensorHub, RegSlv0Add))
	assert.Equal(t, byte(0x20), m.Register(BankSensorHub, RegSlv0Subadd))
	assert.Equal(t, byte(0x70), m.Register(BankSensorHub, RegDataWriteSlv0))
	requireIdleState(t, m)
}

func TestHubMasterConfig(t *testing.T) {
	d, m := newTestDevice()

	require.NoError(t, d.SetSlavesConnected(2))
	require.NoError(t, d.EnableHubMaster(true))
	require.NoError(t, d.SetHubPullUp(true))
	require.NoError(t, d.SetHubWriteOnce(true))
	mc := m.Register(BankSensorHub, RegMasterConfig)
	assert.Equal(t, byte(2), mc&shAuxSensOnMask)
	assert.NotZero(t, mc&shMasterOn)
	assert.NotZero(t, mc&shPullUpEn)
	assert.NotZero(t, mc&shWriteOnce)

	require.NoError(t, d.EnableHubMaster(false))
	assert.Zero(t, m.Register(BankSensorHub, RegMasterConfig)&shMasterOn)
	requireIdleState(t, m)
}

func TestResetHubMaster(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.ResetHubMaster())
	// The reset bit is pulsed: set then cleared.
	assert.Zero(t, m.Register(BankSensorHub, RegMasterConfig)&shRstMasterRegs)
	requireIdleState(t, m)
}

func TestReadHubData(t *testing.T) {
	d, m := newTestDevice()
	for i := byte(0); i < 18; i++ {
		m.SetRegister(BankSensorHub, RegSensorHub1+i, 0xA0+i)
	}
	buf, err := d.ReadHubData(6)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5}, buf)

	_, err = d.ReadHubData(0)
	require.Error(t, err)
	_, err = d.ReadHubData(19)
	require.Error(t, err)
}

func TestHubStatus(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankSensorHub, RegStatusMaster, 0x09)
	st, err := d.HubStatus()
	require.NoError(t, err)
	assert.Equal(t, byte(0x09), st)
	requireIdleState(t, m)
}
