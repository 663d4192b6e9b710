// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import "encoding/binary"

// PedoMode bundles the pedometer enable bits: bit 0 the base algorithm
// (EMB_FUNC_EN_A.PEDO_EN), bit 1 the advanced detection features
// (EMB_FUNC_EN_B.PEDO_ADV_EN), bits 4/5 the false-positive rejection and
// adaptive debounce flags that live in paged memory (PEDO_CMD_REG).
type PedoMode byte

const (
	PedoDisabled       PedoMode = 0x00
	PedoBase           PedoMode = 0x01
	PedoBaseFPRejection PedoMode = 0x11
	PedoBaseADDetect   PedoMode = 0x31
)

// SetPedometerMode configures and enables the pedometer. The command
// flags are read-modified-written through the paged window; the enable
// bits through the embedded-function bank.
func (d *Device) SetPedometerMode(mode PedoMode) error {
	cmd, err := d.PagedReadByte(PagePedoCmdReg)
	if err != nil {
		return err
	}
	cmd &^= pedoCmdFPRejection | pedoCmdADDet
	if mode&0x10 != 0 {
		cmd |= pedoCmdFPRejection
	}
	if mode&0x20 != 0 {
		cmd |= pedoCmdADDet
	}

	d.mu.Lock()
	err = d.withBank(BankEmbedded, func() error {
		if err := d.updateReg(RegEmbFuncEnA, embEnAPedo, flag(mode&0x01 != 0, embEnAPedo)); err != nil {
			return err
		}
		return d.updateReg(RegEmbFuncEnB, embEnBPedoAdv, flag(mode&0x02 != 0, embEnBPedoAdv))
	})
	d.mu.Unlock()
	if err != nil {
		return err
	}

	return d.PagedWriteByte(PagePedoCmdReg, cmd)
}

// PedometerMode reads back the combined pedometer configuration.
// Unknown combinations fall back to disabled.
func (d *Device) PedometerMode() (PedoMode, error) {
	cmd, err := d.PagedReadByte(PagePedoCmdReg)
	if err != nil {
		return PedoDisabled, err
	}

	d.mu.Lock()
	var enA, enB byte
	err = d.withBank(BankEmbedded, func() error {
		var err error
		if enA, err = d.readByte(RegEmbFuncEnA); err != nil {
			return err
		}
		enB, err = d.readByte(RegEmbFuncEnB)
		return err
	})
	d.mu.Unlock()
	if err != nil {
		return PedoDisabled, err
	}

	mode := PedoMode(flag(enA&embEnAPedo != 0, 0x01) |
		flag(enB&embEnBPedoAdv != 0, 0x02) |
		flag(cmd&pedoCmdFPRejection != 0, 0x10) |
		flag(cmd&pedoCmdADDet != 0, 0x20))
	switch mode {
	case PedoDisabled, PedoBase, PedoBaseFPRejection, PedoBaseADDetect:
		return mode, nil
	default:
		return PedoDisabled, nil
	}
}

// Steps reads the 16-bit step counter.
func (d *Device) Steps() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	err := d.withBank(BankEmbedded, func() error {
		return d.tr.ReadReg(RegStepCounterL, buf[:])
	})
	return binary.LittleEndian.Uint16(buf[:]), err
}

// ResetSteps zeroes the step counter via EMB_FUNC_SRC.PEDO_RST_STEP.
func (d *Device) ResetSteps() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.withBank(BankEmbedded, func() error {
		return d.updateReg(RegEmbFuncSrc, embSrcPedoRstStep, embSrcPedoRstStep)
	})
}

// StepDetected reads and reports the step-detected flag in EMB_FUNC_SRC.
func (d *Device) StepDetected() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var src byte
	err := d.withBank(BankEmbedded, func() error {
		var err error
		src, err = d.readByte(RegEmbFuncSrc)
		return err
	})
	return src&embSrcStepDetected != 0, err
}

// SetDebounceSteps programs the number of steps confirming a walk
// (PEDO_DEB_STEPS_CONF, paged memory).
func (d *Device) SetDebounceSteps(steps byte) error {
	return d.PagedWriteByte(PagePedoDebStepsConf, steps)
}

// DebounceSteps reads back the debounce step count.
func (d *Device) DebounceSteps() (byte, error) {
	return d.PagedReadByte(PagePedoDebStepsConf)
}

// SetStepPeriod programs the time period register for step detection
// (PEDO_SC_DELTAT, paged memory, 16 bits).
func (d *Device) SetStepPeriod(period uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], period)
	return d.PagedWrite(PagePedoSCDeltaTL, buf[:])
}

// StepPeriod reads back the step detection time period.
func (d *Device) StepPeriod() (uint16, error) {
	var buf [2]byte
	err := d.PagedRead(PagePedoSCDeltaTL, buf[:])
	return binary.LittleEndian.Uint16(buf[:]), err
}
