// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"sync"
	"time"

	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/imu"
	"github.com/relabs-tech/motion_node/internal/lsm6dso32"
)

// Manager owns the single LSM6DSO32 device and serializes access to it
// across the producer loop, the register debug tool and the calibration
// tool. All methods are safe for concurrent use.
type Manager struct {
	mu         sync.Mutex
	dev        *lsm6dso32.Device
	source     string // transport name, tags published samples
	accelScale lsm6dso32.AccelScale
	gyroScale  lsm6dso32.GyroScale
}

// Package-level unexported variables for singleton pattern:
//   - imuManager: the single Manager instance shared by all callers.
//   - imuOnce: ensures the Manager is only constructed once.
//
// External code must use GetIMUManager(); the device itself is opened
// lazily by Init().
var (
	imuManager *Manager
	imuOnce    sync.Once
)

// GetIMUManager returns the process-wide IMU manager. The returned
// manager is not yet connected to hardware; call Init() first.
func GetIMUManager() *Manager {
	imuOnce.Do(func() {
		imuManager = &Manager{}
	})
	return imuManager
}

// Init opens the transport selected by the global config and configures
// the device. Calling Init on an already initialized manager is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dev != nil {
		return nil
	}
	return m.initLocked()
}

func (m *Manager) initLocked() error {
	cfg := config.Get()
	if cfg == nil {
		return fmt.Errorf("IMU manager: config not initialized")
	}

	dev, err := newDevice(cfg)
	if err != nil {
		return err
	}

	m.dev = dev
	m.source = cfg.IMUTransport
	m.accelScale = lsm6dso32.AccelScale(cfg.IMUAccelScale)
	m.gyroScale = lsm6dso32.GyroScale(cfg.IMUGyroScale)
	return nil
}

// Reinitialize tears down the cached device and reruns the full init
// sequence. Used by the register debug tool after a software reset.
func (m *Manager) Reinitialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dev = nil
	return m.initLocked()
}

// Available reports whether Init has completed successfully.
func (m *Manager) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dev != nil
}

func (m *Manager) device() (*lsm6dso32.Device, error) {
	if m.dev == nil {
		return nil, fmt.Errorf("IMU manager: not initialized")
	}
	return m.dev, nil
}

// ReadSample reads one accelerometer/gyro/temperature sample and fills
// in the converted values using the active full-scale settings.
func (m *Manager) ReadSample() (imu.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return imu.Sample{}, err
	}

	accel, err := dev.Acceleration()
	if err != nil {
		return imu.Sample{}, fmt.Errorf("IMU accel read: %w", err)
	}
	gyro, err := dev.AngularRate()
	if err != nil {
		return imu.Sample{}, fmt.Errorf("IMU gyro read: %w", err)
	}
	temp, err := dev.Temperature()
	if err != nil {
		return imu.Sample{}, fmt.Errorf("IMU temperature read: %w", err)
	}

	s := imu.Sample{
		Source: m.source,
		Ax:     accel[0], Ay: accel[1], Az: accel[2],
		Gx: gyro[0], Gy: gyro[1], Gz: gyro[2],
		Temp: temp,
	}
	s.AxMilliG = lsm6dso32.AccelToMilliG(accel[0], m.accelScale)
	s.AyMilliG = lsm6dso32.AccelToMilliG(accel[1], m.accelScale)
	s.AzMilliG = lsm6dso32.AccelToMilliG(accel[2], m.accelScale)
	s.GxMilliDPS = lsm6dso32.GyroToMilliDPS(gyro[0], m.gyroScale)
	s.GyMilliDPS = lsm6dso32.GyroToMilliDPS(gyro[1], m.gyroScale)
	s.GzMilliDPS = lsm6dso32.GyroToMilliDPS(gyro[2], m.gyroScale)
	s.TempC = lsm6dso32.LSBToCelsius(temp)
	return s, nil
}

// Steps returns the current pedometer step count.
func (m *Manager) Steps() (imu.StepCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return imu.StepCount{}, err
	}
	steps, err := dev.Steps()
	if err != nil {
		return imu.StepCount{}, fmt.Errorf("IMU step count read: %w", err)
	}
	return imu.StepCount{
		Steps: steps,
		Time:  time.Now().Format(time.RFC3339),
	}, nil
}

// ResetSteps zeroes the pedometer step counter.
func (m *Manager) ResetSteps() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return err
	}
	return dev.ResetSteps()
}

// Events drains the latched interrupt sources and returns one Event per
// detection that fired since the previous call.
func (m *Manager) Events() ([]imu.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return nil, err
	}
	src, err := dev.AllSources()
	if err != nil {
		return nil, fmt.Errorf("IMU event sources read: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	var events []imu.Event
	if src.SingleTap {
		events = append(events, imu.Event{Type: "single_tap", Axis: tapAxis(src), Sign: tapSign(src), Time: now})
	}
	if src.DoubleTap {
		events = append(events, imu.Event{Type: "double_tap", Axis: tapAxis(src), Sign: tapSign(src), Time: now})
	}
	if src.WakeUp {
		events = append(events, imu.Event{Type: "wake_up", Axis: wakeAxis(src), Time: now})
	}
	if src.FreeFall {
		events = append(events, imu.Event{Type: "free_fall", Time: now})
	}
	if src.StepDetected {
		events = append(events, imu.Event{Type: "step", Time: now})
	}
	return events, nil
}

func tapAxis(s lsm6dso32.Sources) string {
	switch {
	case s.TapX:
		return "x"
	case s.TapY:
		return "y"
	case s.TapZ:
		return "z"
	}
	return ""
}

func tapSign(s lsm6dso32.Sources) string {
	if s.TapSign {
		return "-"
	}
	return "+"
}

func wakeAxis(s lsm6dso32.Sources) string {
	switch {
	case s.WakeX:
		return "x"
	case s.WakeY:
		return "y"
	case s.WakeZ:
		return "z"
	}
	return ""
}

// ReadRegister reads a single user-bank register. Used by the register
// debug tool.
func (m *Manager) ReadRegister(reg byte) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return 0, err
	}
	return dev.ReadRegister(reg)
}

// WriteRegister writes a single user-bank register. Used by the
// register debug tool; range policy is enforced by the caller.
func (m *Manager) WriteRegister(reg, value byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return err
	}
	return dev.WriteRegister(reg, value)
}

// ReadAllRegisters dumps the full user-bank register space.
func (m *Manager) ReadAllRegisters() (map[byte]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return nil, err
	}

	values := make(map[byte]byte, 0x80)
	for reg := byte(0x01); reg < 0x7F; reg++ {
		v, err := dev.ReadRegister(reg)
		if err != nil {
			return nil, fmt.Errorf("IMU register dump at 0x%02X: %w", reg, err)
		}
		values[reg] = v
	}
	return values, nil
}

// PagedRead reads from the embedded function page space.
func (m *Manager) PagedRead(addr uint16, n int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := dev.PagedRead(addr, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PagedWrite writes into the embedded function page space.
func (m *Manager) PagedWrite(addr uint16, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return err
	}
	return dev.PagedWrite(addr, data)
}

// SetupHubMagnetometer programs sensor hub slot 0 to poll six bytes of
// magnetometer output from an external slave and starts the hub master.
func (m *Manager) SetupHubMagnetometer(addr, dataReg byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return err
	}
	if err := dev.ConfigureSlave(0, lsm6dso32.SlaveConfig{
		Addr:    addr,
		SubAddr: dataReg,
		Len:     6,
	}); err != nil {
		return fmt.Errorf("IMU hub slave config: %w", err)
	}
	if err := dev.SetSlavesConnected(0); err != nil {
		return fmt.Errorf("IMU hub slave count: %w", err)
	}
	if err := dev.SetHubPullUp(true); err != nil {
		return fmt.Errorf("IMU hub pull-up: %w", err)
	}
	if err := dev.EnableHubMaster(true); err != nil {
		return fmt.Errorf("IMU hub master enable: %w", err)
	}
	return nil
}

// ReadHubMag reads the six magnetometer output bytes gathered by the
// sensor hub and decodes them as little-endian x/y/z.
func (m *Manager) ReadHubMag() ([3]int16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return [3]int16{}, err
	}
	buf, err := dev.ReadHubData(6)
	if err != nil {
		return [3]int16{}, fmt.Errorf("IMU hub data read: %w", err)
	}
	return [3]int16{
		int16(uint16(buf[0]) | uint16(buf[1])<<8),
		int16(uint16(buf[2]) | uint16(buf[3])<<8),
		int16(uint16(buf[4]) | uint16(buf[5])<<8),
	}, nil
}

// ApplyUserOffsets programs the accelerometer hardware offset registers.
// Offsets use the 2^-10 g/LSB weight.
func (m *Manager) ApplyUserOffsets(x, y, z int8) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return err
	}
	if err := dev.SetUserOffsets(x, y, z); err != nil {
		return fmt.Errorf("IMU user offsets: %w", err)
	}
	return dev.EnableUserOffsets(true)
}

// ApplyMagCompensation programs the magnetometer compensation block
// from a calibration parameter set.
func (m *Manager) ApplyMagCompensation(cal imu.MagCalibration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dev, err := m.device()
	if err != nil {
		return err
	}
	if err := dev.SetMagSensitivity(cal.Sensitivity); err != nil {
		return fmt.Errorf("IMU mag sensitivity: %w", err)
	}
	if err := dev.SetMagOffsets(cal.Offsets); err != nil {
		return fmt.Errorf("IMU mag offsets: %w", err)
	}
	if err := dev.SetMagSoftIron(cal.SoftIron); err != nil {
		return fmt.Errorf("IMU mag soft-iron: %w", err)
	}
	if err := dev.SetMagOrientation(
		lsm6dso32.MagAxisOrder(cal.OrientX),
		lsm6dso32.MagAxisOrder(cal.OrientY),
		lsm6dso32.MagAxisOrder(cal.OrientZ)); err != nil {
		return fmt.Errorf("IMU mag orientation: %w", err)
	}
	return nil
}
