// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import "encoding/binary"

// FIFOMode selects the FIFO operating mode (FIFO_CTRL4.FIFO_MODE).
type FIFOMode byte

const (
	FIFOModeBypass          FIFOMode = 0
	FIFOModeStopOnFull      FIFOMode = 1
	FIFOModeContToFull      FIFOMode = 3
	FIFOModeBypassToCont    FIFOMode = 4
	FIFOModeContinuous      FIFOMode = 6
	FIFOModeBypassToStop    FIFOMode = 7
)

// BatchRate selects the per-sensor FIFO batching data rate
// (FIFO_CTRL3.BDR_XL / BDR_GY).
type BatchRate byte

const (
	BatchOff     BatchRate = 0x0
	Batch12Hz5   BatchRate = 0x1
	Batch26Hz    BatchRate = 0x2
	Batch52Hz    BatchRate = 0x3
	Batch104Hz   BatchRate = 0x4
	Batch208Hz   BatchRate = 0x5
	Batch417Hz   BatchRate = 0x6
	Batch833Hz   BatchRate = 0x7
	Batch1k67    BatchRate = 0x8
	Batch3k33    BatchRate = 0x9
	Batch6k67    BatchRate = 0xA
	Batch1Hz6    BatchRate = 0xB
)

// Tag identifies the sensor source of a FIFO record
// (FIFO_DATA_OUT_TAG bits 7:3).
type Tag byte

const (
	TagGyro         Tag = 0x01
	TagAccel        Tag = 0x02
	TagTemperature  Tag = 0x03
	TagTimestamp    Tag = 0x04
	TagCfgChange    Tag = 0x05
	TagAccelNCT     Tag = 0x06
	TagAccelNC2T    Tag = 0x07
	TagAccel2C      Tag = 0x08
	TagAccel3C      Tag = 0x09
	TagGyroNCT      Tag = 0x0A
	TagGyroNC2T     Tag = 0x0B
	TagGyro2C       Tag = 0x0C
	TagGyro3C       Tag = 0x0D
	TagSensorHub0   Tag = 0x0E
	TagSensorHub1   Tag = 0x0F
	TagSensorHub2   Tag = 0x10
	TagSensorHub3   Tag = 0x11
	TagStepCounter  Tag = 0x12
	TagSensorHubNack Tag = 0x19
)

// SetFIFOWatermark programs the 9-bit FIFO watermark in records.
// The high bit lands in FIFO_CTRL2 alongside the mode flags, which are
// preserved.
func (d *Device) SetFIFOWatermark(wtm uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	c2, err := d.readByte(RegFIFOCtrl2)
	if err != nil {
		return err
	}
	if err := d.tr.WriteReg(RegFIFOCtrl1, []byte{byte(wtm)}); err != nil {
		return err
	}
	c2 = c2&^0x01 | byte(wtm>>8)&0x01
	return d.tr.WriteReg(RegFIFOCtrl2, []byte{c2})
}

// FIFOWatermark reads back the 9-bit watermark.
func (d *Device) FIFOWatermark() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c1, err := d.readByte(RegFIFOCtrl1)
	if err != nil {
		return 0, err
	}
	c2, err := d.readByte(RegFIFOCtrl2)
	return uint16(c2&0x01)<<8 | uint16(c1), err
}

// SetFIFOMode selects the FIFO operating mode.
func (d *Device) SetFIFOMode(m FIFOMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegFIFOCtrl4, 0x07, byte(m)&0x07)
}

// FIFOMode reads back the FIFO mode; unknown patterns fall back to bypass.
func (d *Device) FIFOMode() (FIFOMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegFIFOCtrl4)
	if err != nil {
		return FIFOModeBypass, err
	}
	switch m := FIFOMode(v & 0x07); m {
	case FIFOModeBypass, FIFOModeStopOnFull, FIFOModeContToFull,
		FIFOModeBypassToCont, FIFOModeContinuous, FIFOModeBypassToStop:
		return m, nil
	default:
		return FIFOModeBypass, nil
	}
}

// SetAccelBatchRate selects the accelerometer FIFO batching rate.
func (d *Device) SetAccelBatchRate(r BatchRate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegFIFOCtrl3, 0x0F, byte(r)&0x0F)
}

// SetGyroBatchRate selects the gyroscope FIFO batching rate.
func (d *Device) SetGyroBatchRate(r BatchRate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegFIFOCtrl3, 0xF0, byte(r)&0x0F<<4)
}

// SetTempBatchRate selects the temperature batching rate
// (FIFO_CTRL4.ODR_T_BATCH: 0=off, 1=1.6Hz, 2=12.5Hz, 3=52Hz).
func (d *Device) SetTempBatchRate(r byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegFIFOCtrl4, 0x30, r&0x03<<4)
}

// SetTimestampDecimation selects timestamp batching decimation
// (FIFO_CTRL4.DEC_TS_BATCH: 0=off, 1=1, 2=8, 3=32).
func (d *Device) SetTimestampDecimation(dec byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegFIFOCtrl4, 0xC0, dec&0x03<<6)
}

// SetStopOnWatermark limits the FIFO depth to the watermark level.
func (d *Device) SetStopOnWatermark(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegFIFOCtrl2, 0x80, flag(on, 0x80))
}

// FIFOStatus is the decoded pair of FIFO status registers.
type FIFOStatus struct {
	Level      uint16 // unread records
	Watermark  bool
	Overrun    bool
	Full       bool
	CounterBDR bool
	OverrunLatched bool
}

// FIFOStatusRead reads FIFO_STATUS1/2 in one transaction.
func (d *Device) FIFOStatusRead() (FIFOStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	err := d.tr.ReadReg(RegFIFOStatus1, buf[:])
	return FIFOStatus{
		Level:          uint16(buf[1]&0x03)<<8 | uint16(buf[0]),
		Watermark:      buf[1]&0x80 != 0,
		Overrun:        buf[1]&0x40 != 0,
		Full:           buf[1]&0x20 != 0,
		CounterBDR:     buf[1]&0x10 != 0,
		OverrunLatched: buf[1]&0x08 != 0,
	}, err
}

// FIFORecord is one tagged 6-byte FIFO entry.
type FIFORecord struct {
	Tag  Tag
	Cnt  byte // 2-bit tag counter
	Data [6]byte
}

// NextFIFORecord pops one record from the FIFO output registers.
func (d *Device) NextFIFORecord() (FIFORecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var rec FIFORecord
	tag, err := d.readByte(RegFIFODataTag)
	if err != nil {
		return rec, err
	}
	rec.Tag = Tag(tag >> 3)
	rec.Cnt = tag >> 1 & 0x03
	err = d.tr.ReadReg(RegFIFODataXL, rec.Data[:])
	return rec, err
}

// Vector decodes the record payload as three little-endian s16 values.
func (r FIFORecord) Vector() [3]int16 {
	var out [3]int16
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(r.Data[2*i:]))
	}
	return out
}

// SetStepBatching routes step counter data into the FIFO
// (EMB_FUNC_FIFO_CFG.PEDO_FIFO_EN, embedded bank).
func (d *Device) SetStepBatching(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankEmbedded, func() error {
		return d.updateReg(RegEmbFuncFIFOCfg, 0x40, flag(on, 0x40))
	})
}
