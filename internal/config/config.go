// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicMotion      string
	TopicSteps       string
	TopicEvents      string
	TopicTemperature string

	// IMU transport: "spi", "i2c" or "mock"
	IMUTransport  string
	IMUSPIDevice  string
	IMUSPISpeedHz int64
	IMUI2CBus     string
	IMUI2CAddr    uint16

	// Accelerometer: rate is the driver's combined ODR+power-mode code,
	// scale 0=±4g, 1=±32g, 2=±8g, 3=±16g
	IMUAccelRate  byte
	IMUAccelScale byte
	// Gyroscope: scale 0=±250°/s, 1=±125°/s, 2=±500°/s, 4=±1000°/s, 6=±2000°/s
	IMUGyroRate  byte
	IMUGyroScale byte

	// FIFO
	FIFOWatermark  uint16 // records, 0-511
	FIFOMode       byte   // 0=bypass, 1=stop-on-full, 6=continuous
	AccelBatchRate byte
	GyroBatchRate  byte

	// Pedometer: 0x00=off, 0x01=base, 0x11=+FP rejection, 0x31=+adaptive debounce
	PedoMode          byte
	PedoDebounceSteps byte

	// Tap detection
	TapEnabled       bool
	TapThreshold     byte // 0-31, applies to all axes
	DoubleTapEnabled bool

	// Wake-up detection threshold (0 disables)
	WakeUpThreshold byte

	// Timing
	IMUSampleInterval   int // milliseconds
	StepPublishInterval int // milliseconds
	ConsoleLogInterval  int // milliseconds

	// Web Server
	WebServerPort int

	// Register debug tool
	DebugServerPort            int
	RegisterDebugAllowedRanges string // e.g. "0x10-0x19,0x56-0x5F"

	// Display
	DisplayI2CAddr        uint16
	DisplayUpdateInterval int    // milliseconds
	DisplayContent        string // "motion" or "steps"

	// External magnetometer polled through the sensor hub
	MagHubAddr        byte   // 7-bit I2C address of the external mag
	MagHubDataReg     byte   // first output register to read
	MagSampleInterval int    // milliseconds, 0 disables the producer
	TopicMag          string // publish topic for hub magnetometer data
	MQTTClientIDMag   string

	// Magnetometer compensation parameter file (JSON), applied by the
	// calibration tool
	CalibrationFile string
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported (lowercase) so other packages cannot access it directly.
//     This enforces encapsulation and prevents external code from modifying config without proper locking.
//     Has package-level scope (visible to all functions in this package, persists for program lifetime).
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access. Write lock (Lock) for initialization,
//     read lock (RLock) for Get() allows multiple concurrent readers without blocking each other.
//
// External code must use InitGlobal() to set and Get() to read, ensuring thread safety.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseByteRange parses value as an integer (decimal or 0x-prefixed hex)
// and checks it against an inclusive upper bound.
func parseByteRange(key, value string, max int) (byte, error) {
	v, err := strconv.ParseUint(value, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if int(v) > max {
		return 0, fmt.Errorf("%s must be 0-%d, got %d", key, max, v)
	}
	return byte(v), nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func parseMillis(key, value string) (int, error) {
	ms, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if ms < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", key, ms)
	}
	return ms, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	var err error
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_MOTION":
		c.TopicMotion = value
	case "TOPIC_STEPS":
		c.TopicSteps = value
	case "TOPIC_EVENTS":
		c.TopicEvents = value
	case "TOPIC_TEMPERATURE":
		c.TopicTemperature = value

	// IMU transport
	case "IMU_TRANSPORT":
		if value != "spi" && value != "i2c" && value != "mock" {
			return fmt.Errorf("IMU_TRANSPORT must be spi, i2c or mock, got %q", value)
		}
		c.IMUTransport = value
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_SPI_SPEED_HZ":
		speed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid IMU_SPI_SPEED_HZ %q: %w", value, err)
		}
		if speed < 0 || speed > 10_000_000 {
			return fmt.Errorf("IMU_SPI_SPEED_HZ must be 0-10000000, got %d", speed)
		}
		c.IMUSPISpeedHz = speed
	case "IMU_I2C_BUS":
		c.IMUI2CBus = value
	case "IMU_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid IMU_I2C_ADDR %q: %w", value, err)
		}
		if addr != 0x6A && addr != 0x6B {
			return fmt.Errorf("IMU_I2C_ADDR must be 0x6A or 0x6B, got 0x%02X", addr)
		}
		c.IMUI2CAddr = uint16(addr)

	// Sensor configuration
	case "IMU_ACCEL_RATE":
		if c.IMUAccelRate, err = parseByteRange(key, value, 0x3F); err != nil {
			return err
		}
	case "IMU_ACCEL_SCALE":
		if c.IMUAccelScale, err = parseByteRange(key, value, 3); err != nil {
			return err
		}
	case "IMU_GYRO_RATE":
		if c.IMUGyroRate, err = parseByteRange(key, value, 0x1F); err != nil {
			return err
		}
	case "IMU_GYRO_SCALE":
		v, err := parseByteRange(key, value, 6)
		if err != nil {
			return err
		}
		switch v {
		case 0, 1, 2, 4, 6:
			c.IMUGyroScale = v
		default:
			return fmt.Errorf("IMU_GYRO_SCALE must be 0, 1, 2, 4 or 6, got %d", v)
		}

	// FIFO
	case "FIFO_WATERMARK":
		wtm, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid FIFO_WATERMARK %q: %w", value, err)
		}
		if wtm > 511 {
			return fmt.Errorf("FIFO_WATERMARK must be 0-511, got %d", wtm)
		}
		c.FIFOWatermark = uint16(wtm)
	case "FIFO_MODE":
		if c.FIFOMode, err = parseByteRange(key, value, 7); err != nil {
			return err
		}
	case "FIFO_ACCEL_BATCH_RATE":
		if c.AccelBatchRate, err = parseByteRange(key, value, 0x0B); err != nil {
			return err
		}
	case "FIFO_GYRO_BATCH_RATE":
		if c.GyroBatchRate, err = parseByteRange(key, value, 0x0B); err != nil {
			return err
		}

	// Pedometer
	case "PEDO_MODE":
		v, err := parseByteRange(key, value, 0x31)
		if err != nil {
			return err
		}
		switch v {
		case 0x00, 0x01, 0x11, 0x31:
			c.PedoMode = v
		default:
			return fmt.Errorf("PEDO_MODE must be 0x00, 0x01, 0x11 or 0x31, got 0x%02X", v)
		}
	case "PEDO_DEBOUNCE_STEPS":
		if c.PedoDebounceSteps, err = parseByteRange(key, value, 255); err != nil {
			return err
		}

	// Tap detection
	case "TAP_ENABLED":
		if c.TapEnabled, err = parseBool(key, value); err != nil {
			return err
		}
	case "TAP_THRESHOLD":
		if c.TapThreshold, err = parseByteRange(key, value, 31); err != nil {
			return err
		}
	case "DOUBLE_TAP_ENABLED":
		if c.DoubleTapEnabled, err = parseBool(key, value); err != nil {
			return err
		}

	// Wake-up
	case "WAKE_UP_THRESHOLD":
		if c.WakeUpThreshold, err = parseByteRange(key, value, 63); err != nil {
			return err
		}

	// Timing
	case "IMU_SAMPLE_INTERVAL":
		if c.IMUSampleInterval, err = parseMillis(key, value); err != nil {
			return err
		}
	case "STEP_PUBLISH_INTERVAL":
		if c.StepPublishInterval, err = parseMillis(key, value); err != nil {
			return err
		}
	case "CONSOLE_LOG_INTERVAL":
		if c.ConsoleLogInterval, err = parseMillis(key, value); err != nil {
			return err
		}

	// Web server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Register debug tool
	case "DEBUG_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DEBUG_SERVER_PORT %q: %w", value, err)
		}
		c.DebugServerPort = port
	case "REGISTER_DEBUG_ALLOWED_RANGES":
		c.RegisterDebugAllowedRanges = value

	// Display
	case "DISPLAY_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_I2C_ADDR %q: %w", value, err)
		}
		c.DisplayI2CAddr = uint16(addr)
	case "DISPLAY_UPDATE_INTERVAL":
		if c.DisplayUpdateInterval, err = parseMillis(key, value); err != nil {
			return err
		}
	case "DISPLAY_CONTENT":
		if value != "motion" && value != "steps" {
			return fmt.Errorf("DISPLAY_CONTENT must be motion or steps, got %q", value)
		}
		c.DisplayContent = value

	// Sensor hub magnetometer
	case "MAG_HUB_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid MAG_HUB_I2C_ADDR %q: %w", value, err)
		}
		if addr > 0x7F {
			return fmt.Errorf("MAG_HUB_I2C_ADDR must be a 7-bit address, got 0x%02X", addr)
		}
		c.MagHubAddr = byte(addr)
	case "MAG_HUB_DATA_REG":
		if c.MagHubDataReg, err = parseByteRange(key, value, 255); err != nil {
			return err
		}
	case "MAG_SAMPLE_INTERVAL":
		if c.MagSampleInterval, err = parseMillis(key, value); err != nil {
			return err
		}
	case "TOPIC_MAG":
		c.TopicMag = value
	case "MQTT_CLIENT_ID_MAG":
		c.MQTTClientIDMag = value

	// Calibration
	case "CALIBRATION_FILE":
		c.CalibrationFile = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.IMUTransport == "" {
		return fmt.Errorf("IMU_TRANSPORT is required")
	}
	if c.IMUTransport == "spi" && c.IMUSPIDevice == "" {
		return fmt.Errorf("IMU_SPI_DEVICE is required for the spi transport")
	}
	if c.IMUTransport == "i2c" && c.IMUI2CAddr == 0 {
		return fmt.Errorf("IMU_I2C_ADDR is required for the i2c transport")
	}
	if c.IMUSampleInterval == 0 {
		return fmt.Errorf("IMU_SAMPLE_INTERVAL is required")
	}
	if c.TopicMotion == "" {
		return fmt.Errorf("TOPIC_MOTION is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
// Acquires write lock (configMu.Lock) during initialization to prevent concurrent access.
// This is the only function that can set globalConfig.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
// Uses read lock (configMu.RLock) to allow multiple concurrent readers without blocking.
// This is thread-safe and efficient for concurrent access across goroutines.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the global configuration. Intended for tests and for
// tools that assemble a Config programmatically.
func SetGlobal(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = cfg
}
