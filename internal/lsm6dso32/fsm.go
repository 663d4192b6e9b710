// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"encoding/binary"
	"fmt"
)

// Finite state machine engine: sixteen programmable machines running on
// sensor data. Programs live in the embedded-function page memory and are
// uploaded through the paged window; control registers sit in the
// embedded-function bank.

// FSMRate is the state machine evaluation rate (EMB_FUNC_ODR_CFG_B).
type FSMRate byte

const (
	FSMRate12Hz5 FSMRate = 0
	FSMRate26Hz  FSMRate = 1
	FSMRate52Hz  FSMRate = 2
	FSMRate104Hz FSMRate = 3
)

// SetFSMEnable programs the per-machine enable mask (machine 1 = bit 0).
// The global FSM enable in EMB_FUNC_EN_B follows the mask: set when any
// machine is enabled, cleared when none is.
func (d *Device) SetFSMEnable(mask uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankEmbedded, func() error {
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], mask)
		if err := d.tr.WriteReg(RegFSMEnableA, buf[:1]); err != nil {
			return err
		}
		if err := d.tr.WriteReg(RegFSMEnableB, buf[1:]); err != nil {
			return err
		}
		return d.updateReg(RegEmbFuncEnB, embEnBFSM, flag(mask != 0, embEnBFSM))
	})
}

// FSMEnable reads back the per-machine enable mask.
func (d *Device) FSMEnable() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	err := d.withBank(BankEmbedded, func() error {
		return d.tr.ReadReg(RegFSMEnableA, buf[:])
	})
	return binary.LittleEndian.Uint16(buf[:]), err
}

// SetFSMRate selects the FSM evaluation rate.
func (d *Device) SetFSMRate(r FSMRate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankEmbedded, func() error {
		return d.updateReg(RegEmbFuncODRCfgB, 0x18, byte(r)&0x03<<3)
	})
}

// FSMOutputs reads the sixteen FSM output registers.
func (d *Device) FSMOutputs() ([16]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out [16]byte
	err := d.withBank(BankEmbedded, func() error {
		return d.tr.ReadReg(RegFSMOuts1, out[:])
	})
	return out, err
}

// SetLongCounter presets the FSM long counter (16 bits).
func (d *Device) SetLongCounter(v uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankEmbedded, func() error {
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], v)
		return d.tr.WriteReg(RegFSMLongCntL, buf[:])
	})
}

// LongCounter reads the FSM long counter.
func (d *Device) LongCounter() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	err := d.withBank(BankEmbedded, func() error {
		return d.tr.ReadReg(RegFSMLongCntL, buf[:])
	})
	return binary.LittleEndian.Uint16(buf[:]), err
}

// ClearLongCounter requests a long counter reset.
func (d *Device) ClearLongCounter() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankEmbedded, func() error {
		return d.updateReg(RegFSMLongCntClr, 0x01, 0x01)
	})
}

// SetLongCounterTimeout programs the long counter interrupt threshold
// (FSM_LC_TIMEOUT, paged memory).
func (d *Device) SetLongCounterTimeout(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return d.PagedWrite(PageFSMLCTimeoutL, buf[:])
}

// LongCounterTimeout reads back the long counter interrupt threshold.
func (d *Device) LongCounterTimeout() (uint16, error) {
	var buf [2]byte
	err := d.PagedRead(PageFSMLCTimeoutL, buf[:])
	return binary.LittleEndian.Uint16(buf[:]), err
}

// SetFSMProgramCount declares the number of uploaded programs
// (FSM_PROGRAMS, paged memory).
func (d *Device) SetFSMProgramCount(n byte) error {
	return d.PagedWriteByte(PageFSMPrograms, n)
}

// FSMProgramCount reads back the declared program count.
func (d *Device) FSMProgramCount() (byte, error) {
	return d.PagedReadByte(PageFSMPrograms)
}

// SetFSMStartAddress sets the linear page address of the first program
// (FSM_START_ADD, paged memory).
func (d *Device) SetFSMStartAddress(addr uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], addr)
	return d.PagedWrite(PageFSMStartAddL, buf[:])
}

// FSMStartAddress reads back the program start address.
func (d *Device) FSMStartAddress() (uint16, error) {
	var buf [2]byte
	err := d.PagedRead(PageFSMStartAddL, buf[:])
	return binary.LittleEndian.Uint16(buf[:]), err
}

// LoadFSMPrograms uploads concatenated program bytecode to the page
// memory at addr, declares the program count and the start address.
// Program images routinely span page boundaries; PagedWrite handles the
// page wrap.
func (d *Device) LoadFSMPrograms(addr uint16, count byte, code []byte) error {
	if len(code) == 0 {
		return fmt.Errorf("lsm6dso32: empty FSM program image")
	}
	if err := d.PagedWrite(addr, code); err != nil {
		return fmt.Errorf("lsm6dso32: upload FSM programs: %w", err)
	}
	if err := d.SetFSMProgramCount(count); err != nil {
		return fmt.Errorf("lsm6dso32: set FSM program count: %w", err)
	}
	if err := d.SetFSMStartAddress(addr); err != nil {
		return fmt.Errorf("lsm6dso32: set FSM start address: %w", err)
	}
	return nil
}

// FSMStatus reports, per machine, whether it raised an interrupt
// (FSM_STATUS_A/B on the main page).
func (d *Device) FSMStatus() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	err := d.tr.ReadReg(RegFSMStatusAMain, buf[:])
	return binary.LittleEndian.Uint16(buf[:]), err
}
