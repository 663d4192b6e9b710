// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import "fmt"

// Sensor hub: the chip's auxiliary I2C master, able to poll up to four
// external slaves and expose their data in the sensor-hub register bank.

// maxHubBytes is the size of the SENSOR_HUB_1..18 read-out window.
const maxHubBytes = 18

// hubSlaves is the number of configurable external slaves.
const hubSlaves = 4

// SlaveConfig describes one external slave to poll.
type SlaveConfig struct {
	Addr       byte // 7-bit I2C address
	SubAddr    byte // register to read from
	Len        byte // bytes to read (0-7)
	BatchExt   bool // route this slave's data into the FIFO
	ODRDivMask byte // SHUB_ODR field (bits 7:6 of SLVx_CONFIG)
}

// ConfigureSlave programs one of the four sensor hub slave slots for
// reading. Slot 0 is also the only slot capable of writes.
func (d *Device) ConfigureSlave(slot int, cfg SlaveConfig) error {
	if slot < 0 || slot >= hubSlaves {
		return fmt.Errorf("lsm6dso32: sensor hub slave slot %d out of range", slot)
	}
	base := byte(RegSlv0Add + 3*slot)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		if err := d.tr.WriteReg(base, []byte{cfg.Addr<<1 | 0x01}); err != nil {
			return err
		}
		if err := d.tr.WriteReg(base+1, []byte{cfg.SubAddr}); err != nil {
			return err
		}
		conf := cfg.Len&0x07 | flag(cfg.BatchExt, 0x08) | cfg.ODRDivMask&0xC0
		return d.tr.WriteReg(base+2, []byte{conf})
	})
}

// WriteSlave0 programs slot 0 for a one-byte register write on the
// external slave.
func (d *Device) WriteSlave0(addr, subAddr, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		if err := d.tr.WriteReg(RegSlv0Add, []byte{addr << 1}); err != nil {
			return err
		}
		if err := d.tr.WriteReg(RegSlv0Subadd, []byte{subAddr}); err != nil {
			return err
		}
		return d.tr.WriteReg(RegDataWriteSlv0, []byte{value})
	})
}

// SetSlavesConnected declares how many slave slots the hub polls
// (MASTER_CONFIG.AUX_SENS_ON: 0 → slot 0 only, 3 → slots 0-3).
func (d *Device) SetSlavesConnected(n byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		return d.updateReg(RegMasterConfig, shAuxSensOnMask, n&shAuxSensOnMask)
	})
}

// EnableHubMaster switches the auxiliary I2C master on or off.
func (d *Device) EnableHubMaster(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		return d.updateReg(RegMasterConfig, shMasterOn, flag(on, shMasterOn))
	})
}

// SetHubPassThrough connects the external sensor I2C lines straight to
// the primary interface, bypassing the hub master.
func (d *Device) SetHubPassThrough(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		return d.updateReg(RegMasterConfig, shPassThrough, flag(on, shPassThrough))
	})
}

// SetHubPullUp enables the internal pull-ups on the auxiliary bus.
func (d *Device) SetHubPullUp(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		return d.updateReg(RegMasterConfig, shPullUpEn, flag(on, shPullUpEn))
	})
}

// SetHubTriggerOnInt2 selects the hub trigger: false = accel/gyro data
// ready, true = the INT2 pin (MASTER_CONFIG.START_CONFIG).
func (d *Device) SetHubTriggerOnInt2(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		return d.updateReg(RegMasterConfig, shStartConfig, flag(on, shStartConfig))
	})
}

// SetHubWriteOnce restricts slave 0 writes to a single shot instead of
// every output data rate cycle.
func (d *Device) SetHubWriteOnce(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		return d.updateReg(RegMasterConfig, shWriteOnce, flag(on, shWriteOnce))
	})
}

// ResetHubMaster pulses the master reset bit.
func (d *Device) ResetHubMaster() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankSensorHub, func() error {
		if err := d.updateReg(RegMasterConfig, shRstMasterRegs, shRstMasterRegs); err != nil {
			return err
		}
		return d.updateReg(RegMasterConfig, shRstMasterRegs, 0)
	})
}

// ReadHubData reads the first n bytes of the sensor hub output window.
func (d *Device) ReadHubData(n int) ([]byte, error) {
	if n < 1 || n > maxHubBytes {
		return nil, fmt.Errorf("lsm6dso32: sensor hub read length %d out of range", n)
	}
	buf := make([]byte, n)
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.withBank(BankSensorHub, func() error {
		return d.tr.ReadReg(RegSensorHub1, buf)
	})
	return buf, err
}

// HubStatus reports the sensor hub master status byte: bit 0 is the
// end-of-operation flag, bits 3-6 per-slave NACK flags.
func (d *Device) HubStatus() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var v byte
	err := d.withBank(BankSensorHub, func() error {
		var err error
		v, err = d.readByte(RegStatusMaster)
		return err
	})
	return v, err
}
