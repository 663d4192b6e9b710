// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"

	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/lsm6dso32"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// newTransport opens the bus selected by IMU_TRANSPORT. The "mock"
// transport backs the device with an in-memory register file and needs
// no hardware, which keeps the producer usable on a dev machine.
func newTransport(cfg *config.Config) (lsm6dso32.Transport, error) {
	switch cfg.IMUTransport {
	case "spi":
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("IMU: periph host init: %w", err)
		}
		speed := physic.Frequency(cfg.IMUSPISpeedHz) * physic.Hertz
		tr, err := lsm6dso32.NewSPITransport(cfg.IMUSPIDevice, speed)
		if err != nil {
			return nil, fmt.Errorf("IMU: SPI transport (%s): %w", cfg.IMUSPIDevice, err)
		}
		return tr, nil
	case "i2c":
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("IMU: periph host init: %w", err)
		}
		tr, err := lsm6dso32.NewI2CTransport(cfg.IMUI2CBus, cfg.IMUI2CAddr)
		if err != nil {
			return nil, fmt.Errorf("IMU: I2C transport (bus %q, addr 0x%02X): %w", cfg.IMUI2CBus, cfg.IMUI2CAddr, err)
		}
		return tr, nil
	case "mock":
		log.Printf("IMU: using mock transport (no hardware access)")
		return lsm6dso32.NewMockTransport(), nil
	default:
		return nil, fmt.Errorf("IMU: unknown transport %q", cfg.IMUTransport)
	}
}

// newDevice opens the configured transport, probes the device and
// applies the full sensor configuration from cfg.
func newDevice(cfg *config.Config) (*lsm6dso32.Device, error) {
	tr, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}

	dev := lsm6dso32.New(tr)
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("IMU: initialization: %w", err)
	}
	log.Printf("IMU: LSM6DSO32 detected on %s transport", cfg.IMUTransport)

	if err := applyConfig(dev, cfg); err != nil {
		return nil, err
	}
	return dev, nil
}

// applyConfig pushes the configured ranges, rates, FIFO setup and
// event detection onto the device.
func applyConfig(dev *lsm6dso32.Device, cfg *config.Config) error {
	if err := dev.SetAccelScale(lsm6dso32.AccelScale(cfg.IMUAccelScale)); err != nil {
		return fmt.Errorf("IMU: set accel scale: %w", err)
	}
	log.Printf("IMU: accelerometer full scale set to %d (±%dg)",
		cfg.IMUAccelScale, []int{4, 32, 8, 16}[cfg.IMUAccelScale])

	if err := dev.SetAccelRate(lsm6dso32.AccelRate(cfg.IMUAccelRate)); err != nil {
		return fmt.Errorf("IMU: set accel rate: %w", err)
	}
	log.Printf("IMU: accelerometer rate code set to 0x%02X", cfg.IMUAccelRate)

	if err := dev.SetGyroScale(lsm6dso32.GyroScale(cfg.IMUGyroScale)); err != nil {
		return fmt.Errorf("IMU: set gyro scale: %w", err)
	}
	log.Printf("IMU: gyroscope full scale set to %d (±%d°/s)",
		cfg.IMUGyroScale, map[byte]int{0: 250, 1: 125, 2: 500, 4: 1000, 6: 2000}[cfg.IMUGyroScale])

	if err := dev.SetGyroRate(lsm6dso32.GyroRate(cfg.IMUGyroRate)); err != nil {
		return fmt.Errorf("IMU: set gyro rate: %w", err)
	}
	log.Printf("IMU: gyroscope rate code set to 0x%02X", cfg.IMUGyroRate)

	// FIFO
	if err := dev.SetFIFOWatermark(cfg.FIFOWatermark); err != nil {
		return fmt.Errorf("IMU: set FIFO watermark: %w", err)
	}
	if err := dev.SetAccelBatchRate(lsm6dso32.BatchRate(cfg.AccelBatchRate)); err != nil {
		return fmt.Errorf("IMU: set accel batch rate: %w", err)
	}
	if err := dev.SetGyroBatchRate(lsm6dso32.BatchRate(cfg.GyroBatchRate)); err != nil {
		return fmt.Errorf("IMU: set gyro batch rate: %w", err)
	}
	if err := dev.SetFIFOMode(lsm6dso32.FIFOMode(cfg.FIFOMode)); err != nil {
		return fmt.Errorf("IMU: set FIFO mode: %w", err)
	}
	log.Printf("IMU: FIFO mode %d, watermark %d records", cfg.FIFOMode, cfg.FIFOWatermark)

	// Pedometer
	if err := dev.SetPedometerMode(lsm6dso32.PedoMode(cfg.PedoMode)); err != nil {
		return fmt.Errorf("IMU: set pedometer mode: %w", err)
	}
	if cfg.PedoMode != 0 {
		if cfg.PedoDebounceSteps > 0 {
			if err := dev.SetDebounceSteps(cfg.PedoDebounceSteps); err != nil {
				return fmt.Errorf("IMU: set pedometer debounce: %w", err)
			}
		}
		log.Printf("IMU: pedometer enabled (mode 0x%02X, debounce %d steps)",
			cfg.PedoMode, cfg.PedoDebounceSteps)
	}

	// Tap detection
	if cfg.TapEnabled {
		if err := dev.EnableTapAxes(true, true, true); err != nil {
			return fmt.Errorf("IMU: enable tap axes: %w", err)
		}
		for _, set := range []func(byte) error{
			dev.SetTapThresholdX, dev.SetTapThresholdY, dev.SetTapThresholdZ,
		} {
			if err := set(cfg.TapThreshold); err != nil {
				return fmt.Errorf("IMU: set tap threshold: %w", err)
			}
		}
		if err := dev.SetDoubleTap(cfg.DoubleTapEnabled); err != nil {
			return fmt.Errorf("IMU: set double tap: %w", err)
		}
		if err := dev.EnableInterrupts(true); err != nil {
			return fmt.Errorf("IMU: enable interrupts: %w", err)
		}
		log.Printf("IMU: tap detection enabled (threshold %d, double=%v)",
			cfg.TapThreshold, cfg.DoubleTapEnabled)
	}

	// Wake-up detection
	if cfg.WakeUpThreshold > 0 {
		if err := dev.SetWakeUpThreshold(cfg.WakeUpThreshold); err != nil {
			return fmt.Errorf("IMU: set wake-up threshold: %w", err)
		}
		if err := dev.EnableInterrupts(true); err != nil {
			return fmt.Errorf("IMU: enable interrupts: %w", err)
		}
		log.Printf("IMU: wake-up detection enabled (threshold %d)", cfg.WakeUpThreshold)
	}

	if err := dev.SetTimestamp(true); err != nil {
		return fmt.Errorf("IMU: enable timestamp counter: %w", err)
	}

	return nil
}
