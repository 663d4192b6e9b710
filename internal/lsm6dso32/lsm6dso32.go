// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package lsm6dso32 is a register-level driver for the ST LSM6DSO32
// accelerometer/gyroscope. It covers the user register file, the FIFO,
// the embedded functions (pedometer, tap/wake/free-fall detection, finite
// state machines, magnetometer compensation) and the sensor hub, all
// through a caller-supplied byte-oriented Transport.
package lsm6dso32

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// Bank selects one of the three register address spaces of the chip.
// The selector itself (FUNC_CFG_ACCESS) lives in the user bank and is
// global hardware state: every multi-register operation in this driver
// leaves the device back in BankUser.
type Bank byte

const (
	BankUser      Bank = 0
	BankSensorHub Bank = 1
	BankEmbedded  Bank = 2
)

// Device drives a single LSM6DSO32. All operations are synchronous and
// blocking; an internal mutex serializes multi-register sequences, since
// the chip's bank and page selection have no hardware atomicity.
type Device struct {
	mu sync.Mutex
	tr Transport
}

// New wraps a transport. It performs no bus traffic; call Init to probe
// and configure the device.
func New(tr Transport) *Device {
	return &Device{tr: tr}
}

// Init verifies the device identity and applies the baseline register
// setup: block data update and register address auto-increment.
func (d *Device) Init() error {
	id, err := d.ID()
	if err != nil {
		return fmt.Errorf("lsm6dso32: read WHO_AM_I: %w", err)
	}
	if id != WhoAmI {
		return fmt.Errorf("lsm6dso32: unexpected WHO_AM_I 0x%02X (want 0x%02X)", id, WhoAmI)
	}
	if err := d.SetBlockDataUpdate(true); err != nil {
		return fmt.Errorf("lsm6dso32: enable BDU: %w", err)
	}
	if err := d.SetAutoIncrement(true); err != nil {
		return fmt.Errorf("lsm6dso32: enable auto-increment: %w", err)
	}
	return nil
}

// ID reads the WHO_AM_I register.
func (d *Device) ID() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readByte(RegWhoAmI)
}

// Reset requests a software reset of the configuration registers.
func (d *Device) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl3C, ctrl3SWReset, ctrl3SWReset)
}

// Resetting reports whether a software reset is still in progress.
func (d *Device) Resetting() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegCtrl3C)
	return v&ctrl3SWReset != 0, err
}

// Boot reloads the trimming parameters from non-volatile memory.
func (d *Device) Boot() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl3C, ctrl3Boot, ctrl3Boot)
}

// SetBlockDataUpdate gates output register updates until both bytes of a
// sample have been read.
func (d *Device) SetBlockDataUpdate(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl3C, ctrl3BDU, flag(on, ctrl3BDU))
}

// BlockDataUpdate reads back the BDU bit.
func (d *Device) BlockDataUpdate() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegCtrl3C)
	return v&ctrl3BDU != 0, err
}

// SetAutoIncrement enables register address auto-increment on multi-byte
// bus transactions.
func (d *Device) SetAutoIncrement(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl3C, ctrl3IfInc, flag(on, ctrl3IfInc))
}

// AccelScale is the accelerometer full-scale range (CTRL1_XL.FS_XL).
type AccelScale byte

const (
	AccelScale4G  AccelScale = 0
	AccelScale32G AccelScale = 1
	AccelScale8G  AccelScale = 2
	AccelScale16G AccelScale = 3
)

// SetAccelScale selects the accelerometer full-scale range.
func (d *Device) SetAccelScale(fs AccelScale) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl1XL, 0x0C, byte(fs&0x03)<<2)
}

// AccelScale reads back the accelerometer full-scale range. Unknown bit
// patterns fall back to ±4 g, matching the datasheet default.
func (d *Device) AccelScale() (AccelScale, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegCtrl1XL)
	if err != nil {
		return AccelScale4G, err
	}
	switch fs := AccelScale(v >> 2 & 0x03); fs {
	case AccelScale4G, AccelScale8G, AccelScale16G, AccelScale32G:
		return fs, nil
	default:
		return AccelScale4G, nil
	}
}

// AccelRate encodes the accelerometer output data rate together with the
// power mode: bits 3:0 are CTRL1_XL.ODR_XL, bit 4 the high-performance
// disable (CTRL6_C.XL_HM_MODE), bit 5 ultra-low-power (CTRL5_C.XL_ULP_EN).
type AccelRate byte

const (
	AccelRateOff   AccelRate = 0x00
	AccelRate12Hz5 AccelRate = 0x01
	AccelRate26Hz  AccelRate = 0x02
	AccelRate52Hz  AccelRate = 0x03
	AccelRate104Hz AccelRate = 0x04
	AccelRate208Hz AccelRate = 0x05
	AccelRate417Hz AccelRate = 0x06
	AccelRate833Hz AccelRate = 0x07
	AccelRate1k67  AccelRate = 0x08
	AccelRate3k33  AccelRate = 0x09
	AccelRate6k67  AccelRate = 0x0A

	AccelRate1Hz6LowPower  AccelRate = 0x1B
	AccelRate12Hz5LowPower AccelRate = 0x11
	AccelRate26HzLowPower  AccelRate = 0x12
	AccelRate52HzLowPower  AccelRate = 0x13
	AccelRate104HzNormal   AccelRate = 0x14
	AccelRate208HzNormal   AccelRate = 0x15

	AccelRate1Hz6ULP  AccelRate = 0x2B
	AccelRate12Hz5ULP AccelRate = 0x21
	AccelRate26HzULP  AccelRate = 0x22
	AccelRate52HzULP  AccelRate = 0x23
	AccelRate104HzULP AccelRate = 0x24
	AccelRate208HzULP AccelRate = 0x25
)

// SetAccelRate programs the accelerometer data rate and power mode.
// The ODR is parked at off while the mode bits are changed, as the mode
// bits must not change while the accelerometer is running.
func (d *Device) SetAccelRate(r AccelRate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.updateReg(RegCtrl1XL, 0xF0, byte(AccelRateOff)<<4); err != nil {
		return err
	}
	if err := d.updateReg(RegCtrl5C, 0x80, byte(r)&0x20<<2); err != nil {
		return err
	}
	if err := d.updateReg(RegCtrl6C, 0x10, byte(r)&0x10); err != nil {
		return err
	}
	return d.updateReg(RegCtrl1XL, 0xF0, byte(r)&0x0F<<4)
}

// AccelRate reads back the accelerometer data rate and power mode.
func (d *Device) AccelRate() (AccelRate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c1, err := d.readByte(RegCtrl1XL)
	if err != nil {
		return AccelRateOff, err
	}
	c5, err := d.readByte(RegCtrl5C)
	if err != nil {
		return AccelRateOff, err
	}
	c6, err := d.readByte(RegCtrl6C)
	if err != nil {
		return AccelRateOff, err
	}
	r := AccelRate(c5 & 0x80 >> 2)
	r |= AccelRate(c6 & 0x10)
	r |= AccelRate(c1 >> 4 & 0x0F)
	switch r {
	case AccelRateOff, AccelRate12Hz5, AccelRate26Hz, AccelRate52Hz,
		AccelRate104Hz, AccelRate208Hz, AccelRate417Hz, AccelRate833Hz,
		AccelRate1k67, AccelRate3k33, AccelRate6k67,
		AccelRate1Hz6LowPower, AccelRate12Hz5LowPower, AccelRate26HzLowPower,
		AccelRate52HzLowPower, AccelRate104HzNormal, AccelRate208HzNormal,
		AccelRate1Hz6ULP, AccelRate12Hz5ULP, AccelRate26HzULP,
		AccelRate52HzULP, AccelRate104HzULP, AccelRate208HzULP:
		return r, nil
	default:
		return AccelRateOff, nil
	}
}

// GyroScale is the gyroscope full-scale range: CTRL2_G bits 3:1, the low
// bit being the dedicated ±125 dps selector.
type GyroScale byte

const (
	GyroScale250DPS  GyroScale = 0x0
	GyroScale125DPS  GyroScale = 0x1
	GyroScale500DPS  GyroScale = 0x2
	GyroScale1000DPS GyroScale = 0x4
	GyroScale2000DPS GyroScale = 0x6
)

// SetGyroScale selects the gyroscope full-scale range.
func (d *Device) SetGyroScale(fs GyroScale) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl2G, 0x0E, byte(fs&0x07)<<1)
}

// GyroScale reads back the gyroscope full-scale range; unknown patterns
// fall back to ±250 dps.
func (d *Device) GyroScale() (GyroScale, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegCtrl2G)
	if err != nil {
		return GyroScale250DPS, err
	}
	switch fs := GyroScale(v >> 1 & 0x07); fs {
	case GyroScale250DPS, GyroScale125DPS, GyroScale500DPS,
		GyroScale1000DPS, GyroScale2000DPS:
		return fs, nil
	default:
		return GyroScale250DPS, nil
	}
}

// GyroRate encodes the gyroscope data rate and power mode: bits 3:0 are
// CTRL2_G.ODR_G, bit 4 the high-performance disable (CTRL7_G.G_HM_MODE).
type GyroRate byte

const (
	GyroRateOff   GyroRate = 0x00
	GyroRate12Hz5 GyroRate = 0x01
	GyroRate26Hz  GyroRate = 0x02
	GyroRate52Hz  GyroRate = 0x03
	GyroRate104Hz GyroRate = 0x04
	GyroRate208Hz GyroRate = 0x05
	GyroRate417Hz GyroRate = 0x06
	GyroRate833Hz GyroRate = 0x07
	GyroRate1k67  GyroRate = 0x08
	GyroRate3k33  GyroRate = 0x09
	GyroRate6k67  GyroRate = 0x0A

	GyroRate12Hz5LowPower GyroRate = 0x11
	GyroRate26HzLowPower  GyroRate = 0x12
	GyroRate52HzLowPower  GyroRate = 0x13
	GyroRate104HzNormal   GyroRate = 0x14
	GyroRate208HzNormal   GyroRate = 0x15
)

// SetGyroRate programs the gyroscope data rate and power mode.
func (d *Device) SetGyroRate(r GyroRate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.updateReg(RegCtrl7G, 0x80, byte(r)&0x10<<3); err != nil {
		return err
	}
	return d.updateReg(RegCtrl2G, 0xF0, byte(r)&0x0F<<4)
}

// GyroRate reads back the gyroscope data rate and power mode.
func (d *Device) GyroRate() (GyroRate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c2, err := d.readByte(RegCtrl2G)
	if err != nil {
		return GyroRateOff, err
	}
	c7, err := d.readByte(RegCtrl7G)
	if err != nil {
		return GyroRateOff, err
	}
	r := GyroRate(c7&0x80>>3) | GyroRate(c2>>4&0x0F)
	switch r {
	case GyroRateOff, GyroRate12Hz5, GyroRate26Hz, GyroRate52Hz,
		GyroRate104Hz, GyroRate208Hz, GyroRate417Hz, GyroRate833Hz,
		GyroRate1k67, GyroRate3k33, GyroRate6k67,
		GyroRate12Hz5LowPower, GyroRate26HzLowPower, GyroRate52HzLowPower,
		GyroRate104HzNormal, GyroRate208HzNormal:
		return r, nil
	default:
		return GyroRateOff, nil
	}
}

// DataReady reports per-source new-data flags from STATUS_REG.
type DataReady struct {
	Accel bool
	Gyro  bool
	Temp  bool
}

// Status reads STATUS_REG.
func (d *Device) Status() (DataReady, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegStatus)
	return DataReady{
		Accel: v&statusXLDA != 0,
		Gyro:  v&statusGDA != 0,
		Temp:  v&statusTDA != 0,
	}, err
}

// Acceleration reads the raw accelerometer sample (X, Y, Z LSBs).
func (d *Device) Acceleration() ([3]int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readVector(RegOutXLA)
}

// AngularRate reads the raw gyroscope sample (X, Y, Z LSBs).
func (d *Device) AngularRate() ([3]int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readVector(RegOutXLG)
}

// Temperature reads the raw temperature sample.
func (d *Device) Temperature() (int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	err := d.tr.ReadReg(RegOutTempL, buf[:])
	return int16(binary.LittleEndian.Uint16(buf[:])), err
}

// SetTimestamp enables or disables the internal timestamp counter.
func (d *Device) SetTimestamp(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl10C, 0x20, flag(on, 0x20))
}

// Timestamp reads the 32-bit timestamp counter (25 µs per LSB).
func (d *Device) Timestamp() (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [4]byte
	err := d.tr.ReadReg(RegTimestamp0, buf[:])
	return binary.LittleEndian.Uint32(buf[:]), err
}

// SetUserOffsets programs the accelerometer user offset correction
// registers (X_OFS_USR..Z_OFS_USR, weight selected separately).
func (d *Device) SetUserOffsets(x, y, z int8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tr.WriteReg(RegXOfsUsr, []byte{byte(x), byte(y), byte(z)})
}

// UserOffsets reads back the accelerometer user offsets.
func (d *Device) UserOffsets() (x, y, z int8, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [3]byte
	err = d.tr.ReadReg(RegXOfsUsr, buf[:])
	return int8(buf[0]), int8(buf[1]), int8(buf[2]), err
}

// SetOffsetWeight selects the user offset weight: false = 2^-10 g/LSB,
// true = 2^-6 g/LSB (CTRL6_C.USR_OFF_W).
func (d *Device) SetOffsetWeight(heavy bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl6C, 0x08, flag(heavy, 0x08))
}

// EnableUserOffsets applies the user offsets to the output path
// (CTRL7_G.USR_OFF_ON_OUT).
func (d *Device) EnableUserOffsets(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegCtrl7G, 0x02, flag(on, 0x02))
}

// ReadRegister exposes a raw user-bank register read for debug tooling.
func (d *Device) ReadRegister(reg byte) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readByte(reg)
}

// WriteRegister exposes a raw user-bank register write for debug tooling.
func (d *Device) WriteRegister(reg, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tr.WriteReg(reg, []byte{value})
}

// readByte reads a single register. Callers hold d.mu.
func (d *Device) readByte(reg byte) (byte, error) {
	var buf [1]byte
	err := d.tr.ReadReg(reg, buf[:])
	return buf[0], err
}

// updateReg read-modify-writes the masked bits of a register.
// Callers hold d.mu.
func (d *Device) updateReg(reg, mask, value byte) error {
	v, err := d.readByte(reg)
	if err != nil {
		return err
	}
	return d.tr.WriteReg(reg, []byte{v&^mask | value&mask})
}

// readVector reads three consecutive little-endian s16 output registers.
// Callers hold d.mu.
func (d *Device) readVector(reg byte) ([3]int16, error) {
	var buf [6]byte
	var out [3]int16
	if err := d.tr.ReadReg(reg, buf[:]); err != nil {
		return out, err
	}
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	return out, nil
}

func flag(on bool, bit byte) byte {
	if on {
		return bit
	}
	return 0
}
