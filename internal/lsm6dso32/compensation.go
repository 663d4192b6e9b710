// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import "encoding/binary"

// Magnetometer compensation for an external sensor-hub magnetometer.
// All parameters live in page 0 of the embedded-advanced memory and are
// accessed exclusively through the paged window.

// SetMagSensitivity programs the magnetometer sensitivity used by the
// compensation block (half-precision float encoding, as stored by ST's
// configuration tools).
func (d *Device) SetMagSensitivity(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return d.PagedWrite(PageMagSensitivityL, buf[:])
}

// MagSensitivity reads back the magnetometer sensitivity.
func (d *Device) MagSensitivity() (uint16, error) {
	var buf [2]byte
	err := d.PagedRead(PageMagSensitivityL, buf[:])
	return binary.LittleEndian.Uint16(buf[:]), err
}

// SetMagOffsets programs the hard-iron offsets (X, Y, Z).
func (d *Device) SetMagOffsets(off [3]int16) error {
	var buf [6]byte
	for i, v := range off {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return d.PagedWrite(PageMagOffXL, buf[:])
}

// MagOffsets reads back the hard-iron offsets.
func (d *Device) MagOffsets() ([3]int16, error) {
	var buf [6]byte
	var off [3]int16
	if err := d.PagedRead(PageMagOffXL, buf[:]); err != nil {
		return off, err
	}
	for i := range off {
		off[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	return off, nil
}

// SetMagSoftIron programs the symmetric soft-iron matrix as six values
// in the order XX, XY, XZ, YY, YZ, ZZ.
func (d *Device) SetMagSoftIron(si [6]int16) error {
	var buf [12]byte
	for i, v := range si {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return d.PagedWrite(PageMagSIXXL, buf[:])
}

// MagSoftIron reads back the soft-iron matrix values.
func (d *Device) MagSoftIron() ([6]int16, error) {
	var buf [12]byte
	var si [6]int16
	if err := d.PagedRead(PageMagSIXXL, buf[:]); err != nil {
		return si, err
	}
	for i := range si {
		si[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	return si, nil
}

// MagAxisOrder maps a magnetometer axis onto the device frame
// (MAG_CFG_A/B fields, 3 bits each).
type MagAxisOrder byte

const (
	MagAxisX    MagAxisOrder = 0
	MagAxisNegX MagAxisOrder = 1
	MagAxisY    MagAxisOrder = 2
	MagAxisNegY MagAxisOrder = 3
	MagAxisZ    MagAxisOrder = 4
	MagAxisNegZ MagAxisOrder = 5
)

// SetMagOrientation programs the axis mapping of the external
// magnetometer: Z and Y in MAG_CFG_A, X in MAG_CFG_B.
func (d *Device) SetMagOrientation(x, y, z MagAxisOrder) error {
	a, err := d.PagedReadByte(PageMagCfgA)
	if err != nil {
		return err
	}
	a = a&^0x3F | byte(y)&0x07<<3 | byte(z)&0x07
	if err := d.PagedWriteByte(PageMagCfgA, a); err != nil {
		return err
	}
	b, err := d.PagedReadByte(PageMagCfgB)
	if err != nil {
		return err
	}
	b = b&^0x07 | byte(x)&0x07
	return d.PagedWriteByte(PageMagCfgB, b)
}

// MagOrientation reads back the magnetometer axis mapping. Unknown bit
// patterns fall back to the positive axis of the respective slot.
func (d *Device) MagOrientation() (x, y, z MagAxisOrder, err error) {
	a, err := d.PagedReadByte(PageMagCfgA)
	if err != nil {
		return
	}
	b, err := d.PagedReadByte(PageMagCfgB)
	if err != nil {
		return
	}
	norm := func(v byte, dflt MagAxisOrder) MagAxisOrder {
		if v <= byte(MagAxisNegZ) {
			return MagAxisOrder(v)
		}
		return dflt
	}
	x = norm(b&0x07, MagAxisX)
	y = norm(a>>3&0x07, MagAxisY)
	z = norm(a&0x07, MagAxisZ)
	return
}
