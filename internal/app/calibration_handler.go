// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/relabs-tech/motion_node/internal/imu"
	"github.com/relabs-tech/motion_node/internal/sensors"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// CalibrationSession holds the state of an active calibration
type CalibrationSession struct {
	Conn         *websocket.Conn
	mu           sync.Mutex
	currentPhase string
	currentStep  int
	// per-position accel means, indexed by the six-position step order
	accelStepBias [6][3]float64
	results       CalibrationResult
}

// CalibrationResult is the JSON structure written at the end of a run
type CalibrationResult struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	// Gyroscope calibration
	GyroBiasX        float64 `json:"gyro_bias_x"`
	GyroBiasY        float64 `json:"gyro_bias_y"`
	GyroBiasZ        float64 `json:"gyro_bias_z"`
	GyroConfidence   float64 `json:"gyro_confidence"`
	GyroStaticStdDev float64 `json:"gyro_static_stddev"`

	// Accelerometer calibration (bias in mg, six-position method)
	AccelBiasX      float64 `json:"accel_bias_x"`
	AccelBiasY      float64 `json:"accel_bias_y"`
	AccelBiasZ      float64 `json:"accel_bias_z"`
	AccelConfidence float64 `json:"accel_confidence"`
	AccelAvgStdDev  float64 `json:"accel_avg_stddev"`

	// Hardware offsets programmed into the device (2^-10 g/LSB)
	OffsetLSBX int8 `json:"offset_lsb_x"`
	OffsetLSBY int8 `json:"offset_lsb_y"`
	OffsetLSBZ int8 `json:"offset_lsb_z"`

	TotalSamples int `json:"total_samples"`
}

// WebSocket message types
type WSMessage struct {
	Action string `json:"action"` // init, next, cancel
}

type WSResponse struct {
	Type     string                 `json:"type"` // phase, step, progress, stats, complete, error
	Phase    string                 `json:"phase,omitempty"`
	Step     string                 `json:"step,omitempty"`
	Progress float64                `json:"progress,omitempty"`
	Stats    map[string]interface{} `json:"stats,omitempty"`
	Results  interface{}            `json:"results,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

// HandleCalibrationWS handles the WebSocket connection for calibration
func HandleCalibrationWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("calibration: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := &CalibrationSession{
		Conn: conn,
		results: CalibrationResult{
			Version:   1,
			Timestamp: time.Now(),
		},
	}

	// Main message loop
	for {
		var msg WSMessage
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Printf("calibration: websocket read error: %v", err)
			break
		}

		switch msg.Action {
		case "init":
			log.Printf("calibration: session initialized")

		case "next":
			session.mu.Lock()
			err := session.runNextStep()
			session.mu.Unlock()
			if err != nil {
				session.sendError(err.Error())
			}

		case "cancel":
			log.Printf("calibration: cancelled by user")
			return
		}
	}
}

func (s *CalibrationSession) runNextStep() error {
	// State machine for calibration phases
	switch s.currentPhase {
	case "":
		// Start with gyroscope
		s.currentPhase = "gyro"
		s.currentStep = 0
		return s.runGyroStep()

	case "gyro":
		// Move to accelerometer
		s.currentPhase = "accel"
		s.currentStep = 0
		return s.runAccelStep()

	case "accel":
		s.currentStep++
		if s.currentStep >= 6 {
			return s.complete()
		}
		return s.runAccelStep()
	}

	return nil
}

func (s *CalibrationSession) runGyroStep() error {
	s.sendPhase("gyro")
	s.sendStep("gyro-static", "gyro")

	mgr := sensors.GetIMUManager()
	if !mgr.Available() {
		return fmt.Errorf("IMU manager not initialized")
	}

	s.sendProgress(5)
	time.Sleep(1 * time.Second) // Give user time to place device

	samples := make([][3]float64, 0, 100)
	for i := 0; i < 100; i++ {
		reading, err := mgr.ReadSample()
		if err != nil {
			return err
		}
		samples = append(samples, [3]float64{
			reading.GxMilliDPS,
			reading.GyMilliDPS,
			reading.GzMilliDPS,
		})
		s.sendProgress(5 + float64(i)*0.9)
		time.Sleep(100 * time.Millisecond)
	}

	// Calculate bias
	s.results.GyroBiasX = mean(samples, 0)
	s.results.GyroBiasY = mean(samples, 1)
	s.results.GyroBiasZ = mean(samples, 2)
	s.results.GyroStaticStdDev = (stddev(samples, 0) + stddev(samples, 1) + stddev(samples, 2)) / 3.0
	s.results.TotalSamples += len(samples)

	// Calculate confidence
	if s.results.GyroStaticStdDev > 0 {
		s.results.GyroConfidence = 100.0 / (1.0 + s.results.GyroStaticStdDev)
	}

	s.sendStats()
	s.sendActionReady()
	return nil
}

func (s *CalibrationSession) runAccelStep() error {
	s.sendPhase("accel")

	mgr := sensors.GetIMUManager()
	if !mgr.Available() {
		return fmt.Errorf("IMU manager not initialized")
	}

	steps := []string{"accel-up", "accel-down", "accel-right", "accel-left", "accel-forward", "accel-back"}
	stepID := steps[s.currentStep]
	s.sendStep(stepID, "accel")
	s.sendProgress(float64(s.currentStep) * 16.67)

	time.Sleep(2 * time.Second) // Give user time to position device

	// Collect samples for this orientation
	samples := make([][3]float64, 0, 50)
	for i := 0; i < 50; i++ {
		reading, err := mgr.ReadSample()
		if err != nil {
			return err
		}
		samples = append(samples, [3]float64{
			reading.AxMilliG,
			reading.AyMilliG,
			reading.AzMilliG,
		})
		s.sendProgress(float64(s.currentStep)*16.67 + float64(i)*0.33)
		time.Sleep(100 * time.Millisecond)
	}

	s.accelStepBias[s.currentStep] = [3]float64{
		mean(samples, 0),
		mean(samples, 1),
		mean(samples, 2),
	}
	s.results.TotalSamples += len(samples)

	// Averaging opposing positions cancels gravity and leaves twice the
	// bias on the exercised axis.
	switch s.currentStep {
	case 1: // Z up/down done
		s.results.AccelBiasZ = (s.accelStepBias[0][2] + s.accelStepBias[1][2]) / 2.0
	case 3: // X right/left done
		s.results.AccelBiasX = (s.accelStepBias[2][0] + s.accelStepBias[3][0]) / 2.0
	case 5: // Y forward/back done
		s.results.AccelBiasY = (s.accelStepBias[4][1] + s.accelStepBias[5][1]) / 2.0
	}

	// Calculate standard deviation for this orientation
	avgStdDev := (stddev(samples, 0) + stddev(samples, 1) + stddev(samples, 2)) / 3.0
	if s.currentStep == 0 {
		s.results.AccelAvgStdDev = avgStdDev
	} else {
		s.results.AccelAvgStdDev = (s.results.AccelAvgStdDev*float64(s.currentStep) + avgStdDev) / float64(s.currentStep+1)
	}

	// Calculate confidence
	if s.results.AccelAvgStdDev > 0 {
		s.results.AccelConfidence = 100.0 / (1.0 + s.results.AccelAvgStdDev/10.0)
	}

	s.sendStats()
	s.sendActionReady()
	return nil
}

func (s *CalibrationSession) complete() error {
	// Convert the measured bias (mg) into hardware offset LSBs at the
	// 2^-10 g/LSB weight and program it, sign-flipped to cancel.
	s.results.OffsetLSBX = offsetLSB(-s.results.AccelBiasX)
	s.results.OffsetLSBY = offsetLSB(-s.results.AccelBiasY)
	s.results.OffsetLSBZ = offsetLSB(-s.results.AccelBiasZ)

	mgr := sensors.GetIMUManager()
	if err := mgr.ApplyUserOffsets(s.results.OffsetLSBX, s.results.OffsetLSBY, s.results.OffsetLSBZ); err != nil {
		return err
	}
	log.Printf("calibration: programmed user offsets x=%d y=%d z=%d LSB",
		s.results.OffsetLSBX, s.results.OffsetLSBY, s.results.OffsetLSBZ)

	// Save results to file
	filename := fmt.Sprintf("%d_motion_calibration.json", time.Now().Unix())
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, filename)

	data, err := json.MarshalIndent(s.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal calibration results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write calibration file: %w", err)
	}
	log.Printf("calibration: saved results to %s", path)

	// Send completion message
	s.Conn.WriteJSON(WSResponse{
		Type:    "complete",
		Results: map[string]interface{}{"filename": filename},
	})

	return nil
}

// offsetLSB converts milli-g to the offset register's 2^-10 g/LSB
// weight, clamped to the int8 register range.
func offsetLSB(mg float64) int8 {
	lsb := math.Round(mg * 1024.0 / 1000.0)
	if lsb > 127 {
		lsb = 127
	}
	if lsb < -128 {
		lsb = -128
	}
	return int8(lsb)
}

func (s *CalibrationSession) sendPhase(phase string) {
	s.Conn.WriteJSON(WSResponse{
		Type:  "phase",
		Phase: phase,
	})
}

func (s *CalibrationSession) sendStep(step, phase string) {
	s.Conn.WriteJSON(WSResponse{
		Type:  "step",
		Step:  step,
		Phase: phase,
	})
}

func (s *CalibrationSession) sendProgress(progress float64) {
	s.Conn.WriteJSON(WSResponse{
		Type:     "progress",
		Progress: progress,
	})
}

func (s *CalibrationSession) sendStats() {
	stats := map[string]interface{}{
		"gyro":    s.results.GyroConfidence,
		"accel":   s.results.AccelConfidence,
		"samples": s.results.TotalSamples,
	}
	s.Conn.WriteJSON(WSResponse{
		Type:  "stats",
		Stats: stats,
	})
}

func (s *CalibrationSession) sendActionReady() {
	s.Conn.WriteJSON(WSResponse{
		Type:    "action",
		Message: "ready",
	})
}

func (s *CalibrationSession) sendError(message string) {
	s.Conn.WriteJSON(WSResponse{
		Type:    "error",
		Message: message,
	})
}

// ApplyMagCalibrationFile loads a magnetometer compensation parameter
// file and programs the sensor hub compensation block.
func ApplyMagCalibrationFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read calibration file: %w", err)
	}

	var cal imu.MagCalibration
	if err := json.Unmarshal(data, &cal); err != nil {
		return fmt.Errorf("failed to parse calibration file: %w", err)
	}

	mgr := sensors.GetIMUManager()
	if err := mgr.ApplyMagCompensation(cal); err != nil {
		return err
	}
	log.Printf("calibration: applied magnetometer compensation from %s", path)
	return nil
}

// Helper functions for statistics
func mean(data [][3]float64, axis int) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v[axis]
	}
	return sum / float64(len(data))
}

func stddev(data [][3]float64, axis int) float64 {
	if len(data) == 0 {
		return 0
	}
	m := mean(data, axis)
	variance := 0.0
	for _, v := range data {
		diff := v[axis] - m
		variance += diff * diff
	}
	variance /= float64(len(data))
	return math.Sqrt(variance)
}
