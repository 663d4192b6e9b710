// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"fmt"
	"sync"
)

// TxnOp distinguishes read and write transactions in the mock's log.
type TxnOp byte

const (
	TxnRead  TxnOp = 'R'
	TxnWrite TxnOp = 'W'
)

// Txn is one byte-level register transaction seen by the mock.
type Txn struct {
	Op  TxnOp
	Reg byte
	Val byte
}

// MockTransport simulates the chip's register file: the three banked
// register spaces, the 16x256-byte embedded page memory and the page
// cursor auto-increment. It records every byte-level transaction and can
// inject a failure at a chosen transaction index, which is what the
// driver tests use to exercise cleanup paths.
type MockTransport struct {
	mu    sync.Mutex
	user  [256]byte
	emb   [256]byte
	hub   [256]byte
	pages [16 * 256]byte

	// pageOffset is the device-side in-page cursor: set by PAGE_ADDRESS
	// writes, auto-incremented (with 8-bit wrap) on every PAGE_VALUE
	// access. The page index itself never auto-increments; the host must
	// re-select the page after a wrap.
	pageOffset byte

	log []Txn

	// FailAt, when nonzero, makes the FailAt-th transaction (1-based)
	// return an error before touching any state.
	FailAt int
}

// NewMockTransport returns a simulator with the identity register
// pre-seeded.
func NewMockTransport() *MockTransport {
	m := &MockTransport{}
	m.user[RegWhoAmI] = WhoAmI
	return m
}

func (m *MockTransport) bank() Bank {
	return Bank(m.user[RegFuncCfgAccess] >> funcCfgAccessShift & 0x03)
}

func (m *MockTransport) space() *[256]byte {
	switch m.bank() {
	case BankEmbedded:
		return &m.emb
	case BankSensorHub:
		return &m.hub
	default:
		return &m.user
	}
}

func (m *MockTransport) step(op TxnOp, reg, val byte) error {
	m.log = append(m.log, Txn{Op: op, Reg: reg, Val: val})
	if m.FailAt != 0 && len(m.log) == m.FailAt {
		return fmt.Errorf("mock: injected failure at transaction %d", m.FailAt)
	}
	return nil
}

func (m *MockTransport) ReadReg(reg byte, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range buf {
		r := reg + byte(i)
		var v byte
		switch {
		case r == RegFuncCfgAccess:
			v = m.user[RegFuncCfgAccess]
		case m.bank() == BankEmbedded && r == RegPageValue:
			page := m.emb[RegPageSel] >> pageSelShift
			v = m.pages[int(page)<<8|int(m.pageOffset)]
		default:
			v = m.space()[r]
		}
		if err := m.step(TxnRead, r, v); err != nil {
			return err
		}
		if m.bank() == BankEmbedded && r == RegPageValue {
			m.pageOffset++
		}
		buf[i] = v
	}
	return nil
}

func (m *MockTransport) WriteReg(reg byte, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range buf {
		r := reg + byte(i)
		v := buf[i]
		if err := m.step(TxnWrite, r, v); err != nil {
			return err
		}
		switch {
		case r == RegFuncCfgAccess:
			m.user[RegFuncCfgAccess] = v
		case m.bank() == BankEmbedded && r == RegPageAddress:
			m.pageOffset = v
			m.emb[RegPageAddress] = v
		case m.bank() == BankEmbedded && r == RegPageValue:
			page := m.emb[RegPageSel] >> pageSelShift
			m.pages[int(page)<<8|int(m.pageOffset)] = v
			m.pageOffset++
		default:
			m.space()[r] = v
		}
	}
	return nil
}

// Register returns the current value of a register in the given bank.
func (m *MockTransport) Register(b Bank, reg byte) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch b {
	case BankEmbedded:
		return m.emb[reg]
	case BankSensorHub:
		return m.hub[reg]
	default:
		return m.user[reg]
	}
}

// SetRegister seeds a register value in the given bank, bypassing the
// transaction log.
func (m *MockTransport) SetRegister(b Bank, reg, val byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch b {
	case BankEmbedded:
		m.emb[reg] = val
	case BankSensorHub:
		m.hub[reg] = val
	default:
		m.user[reg] = val
	}
}

// PageByte returns the page memory content at a linear address.
func (m *MockTransport) PageByte(addr uint16) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pages[addr&0x0FFF]
}

// SetPageByte seeds page memory at a linear address.
func (m *MockTransport) SetPageByte(addr uint16, val byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[addr&0x0FFF] = val
}

// Log returns a copy of the recorded transactions.
func (m *MockTransport) Log() []Txn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Txn(nil), m.log...)
}

// ResetLog clears the transaction log (state is kept).
func (m *MockTransport) ResetLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = nil
	m.FailAt = 0
}

// CountWrites counts write transactions addressing reg since the last
// ResetLog.
func (m *MockTransport) CountWrites(reg byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.log {
		if t.Op == TxnWrite && t.Reg == reg {
			n++
		}
	}
	return n
}
