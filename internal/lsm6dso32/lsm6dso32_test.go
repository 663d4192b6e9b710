// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.Init())
	ctrl3 := m.Register(BankUser, RegCtrl3C)
	assert.NotZero(t, ctrl3&ctrl3BDU, "BDU not enabled")
	assert.NotZero(t, ctrl3&ctrl3IfInc, "auto-increment not enabled")
}

func TestInitRejectsUnknownDevice(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegWhoAmI, 0x6A)
	err := d.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WHO_AM_I")
}

func TestAccelScaleRoundTrip(t *testing.T) {
	d, m := newTestDevice()
	// Make sure the unrelated CTRL1_XL bits survive the read-modify-write.
	m.SetRegister(BankUser, RegCtrl1XL, 0xF2)

	for _, fs := range []AccelScale{AccelScale4G, AccelScale8G, AccelScale16G, AccelScale32G} {
		require.NoError(t, d.SetAccelScale(fs))
		got, err := d.AccelScale()
		require.NoError(t, err)
		assert.Equal(t, fs, got)
		assert.Equal(t, byte(0xF2), m.Register(BankUser, RegCtrl1XL)&0xF3)
	}
}

func TestGyroScaleRoundTrip(t *testing.T) {
	d, m := newTestDevice()
	for _, fs := range []GyroScale{GyroScale125DPS, GyroScale250DPS, GyroScale500DPS,
		GyroScale1000DPS, GyroScale2000DPS} {
		require.NoError(t, d.SetGyroScale(fs))
		got, err := d.GyroScale()
		require.NoError(t, err)
		assert.Equal(t, fs, got)
	}

	// Patterns outside the defined set read back as the default range.
	m.SetRegister(BankUser, RegCtrl2G, 0x07<<1)
	got, err := d.GyroScale()
	require.NoError(t, err)
	assert.Equal(t, GyroScale250DPS, got)
}

func TestAccelRateRoundTrip(t *testing.T) {
	d, m := newTestDevice()
	for _, r := range []AccelRate{AccelRateOff, AccelRate104Hz, AccelRate6k67,
		AccelRate52HzLowPower, AccelRate1Hz6ULP, AccelRate208HzULP} {
		require.NoError(t, d.SetAccelRate(r))
		got, err := d.AccelRate()
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	require.NoError(t, d.SetAccelRate(AccelRate52HzLowPower))
	assert.Equal(t, byte(0x30), m.Register(BankUser, RegCtrl1XL)&0xF0)
	assert.Equal(t, byte(0x10), m.Register(BankUser, RegCtrl6C)&0x10)
	assert.Equal(t, byte(0x00), m.Register(BankUser, RegCtrl5C)&0x80)

	require.NoError(t, d.SetAccelRate(AccelRate104HzULP))
	assert.Equal(t, byte(0x80), m.Register(BankUser, RegCtrl5C)&0x80)
	assert.Equal(t, byte(0x00), m.Register(BankUser, RegCtrl6C)&0x10)
}

func TestAccelRateParksODRWhileChangingMode(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetAccelRate(AccelRate104Hz))

	m.ResetLog()
	require.NoError(t, d.SetAccelRate(AccelRate52HzLowPower))
	// The ODR field is written twice: parked at off before the power mode
	// bits change, then set to the requested rate.
	assert.Equal(t, 2, m.CountWrites(RegCtrl1XL))
}

func TestGyroRateRoundTrip(t *testing.T) {
	d, m := newTestDevice()
	for _, r := range []GyroRate{GyroRateOff, GyroRate833Hz, GyroRate12Hz5LowPower} {
		require.NoError(t, d.SetGyroRate(r))
		got, err := d.GyroRate()
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	require.NoError(t, d.SetGyroRate(GyroRate12Hz5LowPower))
	assert.Equal(t, byte(0x80), m.Register(BankUser, RegCtrl7G)&0x80)
}

func TestStatus(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegStatus, statusXLDA|statusTDA)
	st, err := d.Status()
	require.NoError(t, err)
	assert.True(t, st.Accel)
	assert.False(t, st.Gyro)
	assert.True(t, st.Temp)
}

func seedVector(m *MockTransport, base byte, v [3]int16) {
	for i, s := range v {
		m.SetRegister(BankUser, base+byte(2*i), byte(s))
		m.SetRegister(BankUser, base+byte(2*i)+1, byte(uint16(s)>>8))
	}
}

func TestAcceleration(t *testing.T) {
	d, m := newTestDevice()
	want := [3]int16{1000, -2000, 16384}
	seedVector(m, RegOutXLA, want)
	got, err := d.Acceleration()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAngularRate(t *testing.T) {
	d, m := newTestDevice()
	want := [3]int16{-1, 0, 32767}
	seedVector(m, RegOutXLG, want)
	got, err := d.AngularRate()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTemperature(t *testing.T) {
	d, m := newTestDevice()
	m.SetRegister(BankUser, RegOutTempL, 0x00)
	m.SetRegister(BankUser, RegOutTempH, 0x01) // 256 LSB = +1 degree
	raw, err := d.Temperature()
	require.NoError(t, err)
	assert.Equal(t, int16(256), raw)
	assert.InDelta(t, 26.0, LSBToCelsius(raw), 1e-9)
}

func TestTimestamp(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.SetTimestamp(true))
	assert.NotZero(t, m.Register(BankUser, RegCtrl10C)&0x20)

	m.SetRegister(BankUser, RegTimestamp0, 0x78)
	m.SetRegister(BankUser, RegTimestamp0+1, 0x56)
	m.SetRegister(BankUser, RegTimestamp0+2, 0x34)
	m.SetRegister(BankUser, RegTimestamp0+3, 0x12)
	ts, err := d.Timestamp()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), ts)
}

func TestUserOffsets(t *testing.T) {
	d, _ := newTestDevice()
	require.NoError(t, d.SetUserOffsets(-5, 0, 127))
	x, y, z, err := d.UserOffsets()
	require.NoError(t, err)
	assert.Equal(t, int8(-5), x)
	assert.Equal(t, int8(0), y)
	assert.Equal(t, int8(127), z)
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, 122.0, FS4ToMilliG(1000), 1e-9)
	assert.InDelta(t, -244.0, FS8ToMilliG(-1000), 1e-9)
	assert.InDelta(t, 488.0, FS16ToMilliG(1000), 1e-9)
	assert.InDelta(t, 976.0, FS32ToMilliG(1000), 1e-9)

	assert.InDelta(t, 4375.0, FS125ToMilliDPS(1000), 1e-9)
	assert.InDelta(t, 8750.0, FS250ToMilliDPS(1000), 1e-9)
	assert.InDelta(t, 70000.0, FS2000ToMilliDPS(1000), 1e-9)

	assert.InDelta(t, 25.0, LSBToCelsius(0), 1e-9)
	assert.InDelta(t, 25000.0, LSBToNanoseconds(1), 1e-9)

	assert.InDelta(t, FS32ToMilliG(100), AccelToMilliG(100, AccelScale32G), 1e-9)
	assert.InDelta(t, FS125ToMilliDPS(100), GyroToMilliDPS(100, GyroScale125DPS), 1e-9)
}

func TestDebugRegisterAccess(t *testing.T) {
	d, m := newTestDevice()
	require.NoError(t, d.WriteRegister(RegCtrl8XL, 0xE0))
	assert.Equal(t, byte(0xE0), m.Register(BankUser, RegCtrl8XL))
	v, err := d.ReadRegister(RegCtrl8XL)
	require.NoError(t, err)
	assert.Equal(t, byte(0xE0), v)
}
