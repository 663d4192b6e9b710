// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Transport is the byte-oriented register access the driver is built on.
// The register address space is flat 8-bit; the transport performs the
// bus framing (SPI read bit, I2C addressing) and reports a plain pass/fail.
// The driver never retries: any policy beyond propagation belongs to the
// transport or its caller.
type Transport interface {
	ReadReg(reg byte, buf []byte) error
	WriteReg(reg byte, buf []byte) error
}

// spiReadBit marks a register address as a read in the SPI frame.
const spiReadBit = 0x80

// SPITransport talks to the sensor over a periph.io SPI port.
// The LSM6DSO32 SPI interface runs in mode 3 at up to 10 MHz.
type SPITransport struct {
	port spi.PortCloser
	conn spi.Conn
}

// NewSPITransport opens the named SPI device (e.g. "/dev/spidev0.0").
func NewSPITransport(device string, speed physic.Frequency) (*SPITransport, error) {
	if speed == 0 {
		speed = 10 * physic.MegaHertz
	}
	port, err := spireg.Open(device)
	if err != nil {
		return nil, fmt.Errorf("SPI open (%s): %w", device, err)
	}
	conn, err := port.Connect(speed, spi.Mode3, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("SPI connect (%s): %w", device, err)
	}
	return &SPITransport{port: port, conn: conn}, nil
}

func (t *SPITransport) ReadReg(reg byte, buf []byte) error {
	w := make([]byte, len(buf)+1)
	r := make([]byte, len(buf)+1)
	w[0] = reg | spiReadBit
	if err := t.conn.Tx(w, r); err != nil {
		return fmt.Errorf("SPI read reg 0x%02X: %w", reg, err)
	}
	copy(buf, r[1:])
	return nil
}

func (t *SPITransport) WriteReg(reg byte, buf []byte) error {
	w := make([]byte, len(buf)+1)
	w[0] = reg &^ spiReadBit
	copy(w[1:], buf)
	if err := t.conn.Tx(w, nil); err != nil {
		return fmt.Errorf("SPI write reg 0x%02X: %w", reg, err)
	}
	return nil
}

// Close releases the SPI port.
func (t *SPITransport) Close() error {
	return t.port.Close()
}

// I2CTransport talks to the sensor over a periph.io I2C bus.
type I2CTransport struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewI2CTransport opens the named I2C bus ("" selects the first available)
// and addresses the sensor at addr (0x6A or 0x6B depending on SDO/SA0).
func NewI2CTransport(bus string, addr uint16) (*I2CTransport, error) {
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("I2C open (%q): %w", bus, err)
	}
	return &I2CTransport{bus: b, dev: i2c.Dev{Bus: b, Addr: addr}}, nil
}

func (t *I2CTransport) ReadReg(reg byte, buf []byte) error {
	if err := t.dev.Tx([]byte{reg}, buf); err != nil {
		return fmt.Errorf("I2C read reg 0x%02X: %w", reg, err)
	}
	return nil
}

func (t *I2CTransport) WriteReg(reg byte, buf []byte) error {
	w := make([]byte, len(buf)+1)
	w[0] = reg
	copy(w[1:], buf)
	if err := t.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("I2C write reg 0x%02X: %w", reg, err)
	}
	return nil
}

// Close releases the I2C bus.
func (t *I2CTransport) Close() error {
	return t.bus.Close()
}
