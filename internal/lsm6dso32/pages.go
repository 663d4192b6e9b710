// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import "fmt"

// Paged register window.
//
// The embedded-function subsystem exposes its advanced configuration as a
// flat memory of sixteen 256-byte pages, reachable only through the
// PAGE_SEL / PAGE_ADDRESS / PAGE_VALUE registers of the embedded-function
// bank. PagedWrite and PagedRead hide the bank switch, the burst enable
// bit and the page-boundary crossings; on every exit path the device is
// left in its canonical idle state (user bank, page 0, burst disabled).

// setBank writes the register bank selector. Callers hold d.mu.
func (d *Device) setBank(b Bank) error {
	if err := d.updateReg(RegFuncCfgAccess, funcCfgAccessMask, byte(b)<<funcCfgAccessShift); err != nil {
		return fmt.Errorf("select bank %d: %w", b, err)
	}
	return nil
}

// withBank runs fn with the given bank selected and always switches back
// to the user bank afterwards, even when fn fails. fn's error wins over a
// restore error so the first failing step is the one reported.
func (d *Device) withBank(b Bank, fn func() error) error {
	if err := d.setBank(b); err != nil {
		return err
	}
	opErr := fn()
	restoreErr := d.setBank(BankUser)
	if opErr != nil {
		return opErr
	}
	return restoreErr
}

// selectPage writes the page index into PAGE_SEL. Bit 0 of the register
// must be written as 1 (reserved, reads back set). Callers hold d.mu and
// have the embedded bank selected.
func (d *Device) selectPage(page byte) error {
	v, err := d.readByte(RegPageSel)
	if err != nil {
		return fmt.Errorf("read PAGE_SEL: %w", err)
	}
	v = v&^pageSelMask | page<<pageSelShift | pageSelReserved
	if err := d.tr.WriteReg(RegPageSel, []byte{v}); err != nil {
		return fmt.Errorf("select page %d: %w", page, err)
	}
	return nil
}

// setPageMode read-modify-writes the burst enable field of PAGE_RW.
// Callers hold d.mu and have the embedded bank selected.
func (d *Device) setPageMode(mode byte) error {
	v, err := d.readByte(RegPageRW)
	if err != nil {
		return fmt.Errorf("read PAGE_RW: %w", err)
	}
	v = v&^pageRWMask | mode<<pageRWShift
	if err := d.tr.WriteReg(RegPageRW, []byte{v}); err != nil {
		return fmt.Errorf("set page mode 0x%02X: %w", mode, err)
	}
	return nil
}

// pagedBurst brackets a transfer loop with the bank switch, the burst
// enable and the unconditional cleanup. The cleanup (page selector back
// to 0, burst disabled, user bank restored) runs on success and failure
// alike; the transfer error, if any, is the one returned.
func (d *Device) pagedBurst(mode byte, transfer func() error) error {
	return d.withBank(BankEmbedded, func() error {
		opErr := d.setPageMode(mode)
		if opErr == nil {
			opErr = transfer()
		}
		cleanupErr := d.selectPage(0)
		if err := d.setPageMode(pageModeIdle); cleanupErr == nil {
			cleanupErr = err
		}
		if opErr != nil {
			return opErr
		}
		return cleanupErr
	})
}

// PagedWrite writes buf to the embedded-function page memory starting at
// a linear address: page index in bits 11:8, in-page offset in bits 7:0.
// The in-page address is issued once per page; the device auto-increments
// it after each PAGE_VALUE write, so only the page selector is re-issued
// when the offset wraps past 255.
//
// The transfer aborts on the first transport error. The caller cannot
// learn how many bytes reached the device before a failure; retry the
// whole operation if that matters.
func (d *Device) PagedWrite(addr uint16, buf []byte) error {
	page := byte(addr>>8) & 0x0F
	offset := byte(addr)

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(buf) == 0 {
		return d.withBank(BankEmbedded, func() error { return nil })
	}

	return d.pagedBurst(pageModeWrite, func() error {
		if err := d.selectPage(page); err != nil {
			return err
		}
		if err := d.tr.WriteReg(RegPageAddress, []byte{offset}); err != nil {
			return fmt.Errorf("set page address 0x%02X: %w", offset, err)
		}
		for i := range buf {
			if err := d.tr.WriteReg(RegPageValue, buf[i:i+1]); err != nil {
				return fmt.Errorf("write page byte %d: %w", i, err)
			}
			offset++
			if offset == 0 {
				page++
				if err := d.selectPage(page); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// PagedRead reads into buf from the embedded-function page memory at a
// linear address. Unlike PagedWrite, the in-page address register is
// re-written immediately before every PAGE_VALUE read; the hardware
// requires this for reads, it is not redundant.
func (d *Device) PagedRead(addr uint16, buf []byte) error {
	page := byte(addr>>8) & 0x0F
	offset := byte(addr)

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(buf) == 0 {
		return d.withBank(BankEmbedded, func() error { return nil })
	}

	return d.pagedBurst(pageModeRead, func() error {
		if err := d.selectPage(page); err != nil {
			return err
		}
		for i := range buf {
			if err := d.tr.WriteReg(RegPageAddress, []byte{offset}); err != nil {
				return fmt.Errorf("set page address 0x%02X: %w", offset, err)
			}
			if err := d.tr.ReadReg(RegPageValue, buf[i:i+1]); err != nil {
				return fmt.Errorf("read page byte %d: %w", i, err)
			}
			offset++
			if offset == 0 {
				page++
				if err := d.selectPage(page); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// PagedWriteByte writes one byte of page memory.
func (d *Device) PagedWriteByte(addr uint16, value byte) error {
	return d.PagedWrite(addr, []byte{value})
}

// PagedReadByte reads one byte of page memory.
func (d *Device) PagedReadByte(addr uint16) (byte, error) {
	var buf [1]byte
	err := d.PagedRead(addr, buf[:])
	return buf[0], err
}
