// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


// ./cmd/calibration/main.go
//
// Guided calibration for the LSM6DSO32 in this project.
// Calibrates:
//  1. Gyro: static bias (still) + dynamic refinement via guided rotations (X/Y/Z)
//  2. Accel: 6-point (±X, ±Y, ±Z) static poses to estimate bias + per-axis scale
//
// The accel bias is also programmed into the chip's user offset
// registers (X/Y/Z_OFS_USR) so every later reading is corrected in
// hardware.
//
// Output:
//
//	Writes a JSON file in the working directory including calibration
//	date/time and quality/confidence.
//
// Run:
//
//	go run ./cmd/calibration
//	go run ./cmd/calibration -apply-mag mag_calibration.json
//
// Notes / assumptions:
//   - Reads converted samples via internal/sensors Manager, so all values
//     here are in mg (accel) and mdps (gyro).
//   - The LSM6DSO32 has no magnetometer; -apply-mag programs an externally
//     produced compensation file into the sensor hub correction block and
//     exits without running the guided flow.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/relabs-tech/motion_node/internal/app"
	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/imu"
	"github.com/relabs-tech/motion_node/internal/sensors"
)

const (
	sampleHz = 100 // target loop frequency (best-effort)

	// Gyro
	gyroStaticDuration = 10 * time.Second
	gyroRotMinDur      = 8 * time.Second
	gyroRotMaxDur      = 30 * time.Second

	// Accel 6-point
	accelPoseDuration = 6 * time.Second

	// Quality heuristics, gyro in mdps and accel in mg
	gyroStillStdGood = 70.0
	gyroStillStdBad  = 300.0

	accelStillStdGood = 5.0
	accelStillStdBad  = 25.0

	dominanceGood = 0.70 // dominant-axis ratio for guided single-axis rotations
	dominanceBad  = 0.45

	minMeanAbsRate = 20000.0 // minimal mean abs gyro rate (mdps) to consider "real rotation"

	// Confidence floor (we never want hard zero unless we error out)
	confFloor = 0.05
)

// ---------- Data model (JSON output) ----------

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type PhaseStats struct {
	Samples       int      `json:"samples"`
	DurationSec   float64  `json:"duration_sec"`
	Mean          Vec3     `json:"mean"`
	MeanAbs       Vec3     `json:"mean_abs"`
	StdDev        Vec3     `json:"stddev"`
	AxisDominance Vec3     `json:"axis_dominance,omitempty"`
	Integrated    Vec3     `json:"integrated,omitempty"` // ∫(rate) dt in mdps*sec for gyro rotations
	Notes         []string `json:"notes,omitempty"`
}

type AccelPoseStats struct {
	Pose        string  `json:"pose"`
	Samples     int     `json:"samples"`
	DurationSec float64 `json:"duration_sec"`
	Mean        Vec3    `json:"mean"`
	StdDev      Vec3    `json:"stddev"`
	Confidence  float64 `json:"confidence"`
}

type CalibrationResult struct {
	SchemaVersion int    `json:"schema_version"`
	CalibrationAt string `json:"calibration_at"` // RFC3339
	Transport     string `json:"transport"`      // "spi", "i2c" or "mock"

	// Gyro bias (mdps)
	GyroBiasStatic Vec3 `json:"gyro_bias_static"`
	GyroBiasDyn    Vec3 `json:"gyro_bias_dynamic"`
	GyroBiasFinal  Vec3 `json:"gyro_bias_final"`

	// Accel bias + scale (mg)
	// CorrectedAccelAxis = (raw - bias) / scale
	AccelBias  Vec3 `json:"accel_bias"`
	AccelScale Vec3 `json:"accel_scale"`

	// Offsets programmed into X/Y/Z_OFS_USR (2^-10 g/LSB)
	OffsetLSB struct {
		X int8 `json:"x"`
		Y int8 `json:"y"`
		Z int8 `json:"z"`
	} `json:"offset_lsb"`
	OffsetsWritten bool `json:"offsets_written"`

	// Confidence components and overall
	Confidence struct {
		GyroStatic float64 `json:"gyro_static"`
		GyroRot    float64 `json:"gyro_rotation"`
		Accel6Pt   float64 `json:"accel_6pt"`
		Overall    float64 `json:"overall"`
	} `json:"confidence"`

	// Supporting stats
	GyroStaticStats PhaseStats            `json:"gyro_static_stats"`
	GyroRotStats    map[string]PhaseStats `json:"gyro_rotation_stats"` // keys: "x", "y", "z"

	AccelPoseStats []AccelPoseStats `json:"accel_pose_stats"`

	Notes []string `json:"notes,omitempty"`
}

// ---------- Main ----------

func main() {
	in := bufio.NewReader(os.Stdin)

	configPath := flag.String("config", "motion_config.txt", "Path to configuration file")
	applyMag := flag.String("apply-mag", "", "Apply a magnetometer compensation JSON file and exit")
	flag.Parse()

	// Initialize configuration
	if err := config.InitGlobal(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load config from %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	mgr := sensors.GetIMUManager()
	if err := mgr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: IMU init failed: %v\n", err)
		os.Exit(1)
	}

	if *applyMag != "" {
		if err := app.ApplyMagCalibrationFile(*applyMag); err != nil {
			fatal(err)
		}
		fmt.Printf("Applied magnetometer compensation from %s\n", *applyMag)
		return
	}

	fmt.Println("=== Guided Calibration (Accel + Gyro) ===")
	fmt.Println("This workflow will prompt you in the console and store results in a JSON file.")
	fmt.Println()

	readFn := func() (imu.Sample, error) { return mgr.ReadSample() }

	res := CalibrationResult{
		SchemaVersion: 1,
		CalibrationAt: time.Now().Format(time.RFC3339),
		Transport:     config.Get().IMUTransport,
		GyroRotStats:  map[string]PhaseStats{},
	}

	// ---------------- Gyro calibration ----------------
	fmt.Println("Step 1/2 — Gyro static bias")
	fmt.Println("Place the device on a stable surface and do not touch it.")
	waitEnter(in, "Press ENTER to start static gyro bias capture (10s)...")

	_, sStats, err := captureSamples(readFn, gyroStaticDuration, func(s imu.Sample) Vec3 {
		return Vec3{X: s.GxMilliDPS, Y: s.GyMilliDPS, Z: s.GzMilliDPS}
	})
	if err != nil {
		fatal(err)
	}
	res.GyroStaticStats = sStats
	res.GyroBiasStatic = sStats.Mean

	gyroStaticConf := stillnessConfidence(sStats.StdDev, gyroStillStdGood, gyroStillStdBad)
	res.Confidence.GyroStatic = gyroStaticConf

	fmt.Printf("Static gyro bias (mdps): X=%.2f Y=%.2f Z=%.2f | confidence=%.2f\n",
		res.GyroBiasStatic.X, res.GyroBiasStatic.Y, res.GyroBiasStatic.Z, gyroStaticConf)

	// Gyro dynamic refinement
	fmt.Println("\nStep 1b/2 — Gyro dynamic refinement via guided rotations")
	fmt.Println("For each axis (X, Y, Z), rotate the device 2–3 full turns around that axis.")
	fmt.Println("Try to keep the rotation mostly around the prompted axis.")
	fmt.Println("You will press ENTER to start capture and ENTER again to stop (or it stops automatically).")
	fmt.Println()

	gyroDynBias, gyroRotConf := guidedGyroRotations(in, readFn, res.GyroBiasStatic, &res)
	res.GyroBiasDyn = gyroDynBias

	// Combine static and dynamic (favor static but incorporate motion-validated bias)
	alpha := 0.75
	res.GyroBiasFinal = Vec3{
		X: alpha*res.GyroBiasStatic.X + (1-alpha)*res.GyroBiasDyn.X,
		Y: alpha*res.GyroBiasStatic.Y + (1-alpha)*res.GyroBiasDyn.Y,
		Z: alpha*res.GyroBiasStatic.Z + (1-alpha)*res.GyroBiasDyn.Z,
	}
	res.Confidence.GyroRot = gyroRotConf

	fmt.Printf("Dynamic gyro bias (mdps): X=%.2f Y=%.2f Z=%.2f | confidence=%.2f\n",
		res.GyroBiasDyn.X, res.GyroBiasDyn.Y, res.GyroBiasDyn.Z, gyroRotConf)
	fmt.Printf("Final gyro bias (mdps):   X=%.2f Y=%.2f Z=%.2f\n",
		res.GyroBiasFinal.X, res.GyroBiasFinal.Y, res.GyroBiasFinal.Z)

	// ---------------- Accel calibration (6-point) ----------------
	fmt.Println("\nStep 2/2 — Accelerometer 6-point calibration (bias + scale)")
	fmt.Println("You will place the device still in 6 orientations: +X, -X, +Y, -Y, +Z, -Z (axis UP).")
	fmt.Println("Each pose captures 6 seconds. Keep it as still as possible.")
	fmt.Println()

	accBias, accScale, accConf, poseStats, err := guidedAccel6Point(in, readFn)
	if err != nil {
		fatal(err)
	}
	res.AccelBias = accBias
	res.AccelScale = accScale
	res.Confidence.Accel6Pt = accConf
	res.AccelPoseStats = poseStats

	fmt.Printf("Accel bias (mg):  X=%.2f Y=%.2f Z=%.2f\n", accBias.X, accBias.Y, accBias.Z)
	fmt.Printf("Accel scale (mg): X=%.2f Y=%.2f Z=%.2f | confidence=%.2f\n", accScale.X, accScale.Y, accScale.Z, accConf)

	// ---------------- Hardware offset registers ----------------
	res.OffsetLSB.X = offsetLSB(-accBias.X)
	res.OffsetLSB.Y = offsetLSB(-accBias.Y)
	res.OffsetLSB.Z = offsetLSB(-accBias.Z)

	fmt.Printf("\nUser offset registers (2^-10 g/LSB): X=%d Y=%d Z=%d\n",
		res.OffsetLSB.X, res.OffsetLSB.Y, res.OffsetLSB.Z)
	fmt.Print("Write these offsets to the chip now? [y/N]: ")
	line, _ := in.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(line)) == "y" {
		if err := mgr.ApplyUserOffsets(res.OffsetLSB.X, res.OffsetLSB.Y, res.OffsetLSB.Z); err != nil {
			fmt.Printf("Warning: writing user offsets failed: %v\n", err)
			res.Notes = append(res.Notes, "offset_write_error: "+err.Error())
		} else {
			res.OffsetsWritten = true
			fmt.Println("Offsets written and enabled.")
		}
	}

	// ---------------- Overall confidence + store ----------------
	res.Confidence.Overall = overallConfidence(res.Confidence.GyroStatic, res.Confidence.GyroRot, res.Confidence.Accel6Pt)

	if err := writeResult(res); err != nil {
		fatal(err)
	}

	fmt.Println("\nCalibration complete.")
	fmt.Printf("Overall confidence: %.2f\n", res.Confidence.Overall)
}

// ---------- Guided gyro rotations ----------

func guidedGyroRotations(in *bufio.Reader, readFn func() (imu.Sample, error), bStatic Vec3, res *CalibrationResult) (Vec3, float64) {
	type axisResult struct {
		axis string
		bias float64
		conf float64
	}
	results := []axisResult{}

	for _, axis := range []string{"x", "y", "z"} {
		fmt.Printf("Axis %s rotation: rotate mostly around %s-axis (2–3 full turns).\n", strings.ToUpper(axis), strings.ToUpper(axis))
		waitEnter(in, "Press ENTER to start capture, then ENTER again to stop...")

		rotSamples, stats, err := captureUntilEnterOrTimeout(in, readFn, gyroRotMaxDur, func(s imu.Sample) Vec3 {
			// subtract static bias before integrating & stats
			return Vec3{
				X: s.GxMilliDPS - bStatic.X,
				Y: s.GyMilliDPS - bStatic.Y,
				Z: s.GzMilliDPS - bStatic.Z,
			}
		})
		if err != nil {
			fmt.Printf("Warning: rotation capture failed for axis %s: %v\n", axis, err)
			stats.Notes = append(stats.Notes, "capture_error: "+err.Error())
			res.GyroRotStats[axis] = stats
			results = append(results, axisResult{axis: axis, bias: 0, conf: confFloor})
			continue
		}

		// Enforce minimum duration
		if stats.DurationSec < gyroRotMinDur.Seconds() {
			stats.Notes = append(stats.Notes, fmt.Sprintf("too_short: %.2fs < %.2fs", stats.DurationSec, gyroRotMinDur.Seconds()))
		}

		// Compute per-axis dominance and integrated angle proxy
		intg := integrate(rotSamples)
		stats.Integrated = intg
		stats.AxisDominance = axisDominance(stats.MeanAbs)

		// Residual bias estimate: b = ∫ω dt / T (mdps)
		var b float64
		switch axis {
		case "x":
			b = intg.X / stats.DurationSec
		case "y":
			b = intg.Y / stats.DurationSec
		case "z":
			b = intg.Z / stats.DurationSec
		}

		// Confidence heuristic for this axis
		conf := rotationConfidence(axis, stats)

		res.GyroRotStats[axis] = stats
		results = append(results, axisResult{axis: axis, bias: b, conf: conf})

		fmt.Printf("  Axis %s: residual bias=%.2f mdps | dominance=%.2f | meanAbs=%.2f | conf=%.2f\n",
			strings.ToUpper(axis), b, dominantForAxis(axis, stats.AxisDominance), meanAbsForAxis(axis, stats.MeanAbs), conf)
	}

	// Combine axis biases
	bDyn := Vec3{}
	conf := 0.0
	weights := 0.0

	for _, r := range results {
		w := clamp01(r.conf)
		weights += w
		conf += w * r.conf
		switch r.axis {
		case "x":
			bDyn.X = r.bias
		case "y":
			bDyn.Y = r.bias
		case "z":
			bDyn.Z = r.bias
		}
	}
	if weights > 0 {
		conf = conf / weights
	} else {
		conf = confFloor
	}
	return bDyn, clamp01(conf)
}

// ---------- Guided accel 6-point ----------

func guidedAccel6Point(in *bufio.Reader, readFn func() (imu.Sample, error)) (bias Vec3, scale Vec3, confidence float64, poseStats []AccelPoseStats, err error) {
	poses := []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

	type poseData struct {
		pose string
		mean Vec3
		std  Vec3
		conf float64
	}
	data := map[string]poseData{}

	for _, p := range poses {
		fmt.Printf("Pose %s UP: place the device so %s axis points upward, then keep it still.\n", p, p)
		waitEnter(in, "Press ENTER to start capture (6s)...")

		_, stats, e := captureSamples(readFn, accelPoseDuration, func(s imu.Sample) Vec3 {
			return Vec3{X: s.AxMilliG, Y: s.AyMilliG, Z: s.AzMilliG}
		})
		if e != nil {
			return Vec3{}, Vec3{}, 0, nil, e
		}

		c := stillnessConfidence(stats.StdDev, accelStillStdGood, accelStillStdBad)
		data[p] = poseData{pose: p, mean: stats.Mean, std: stats.StdDev, conf: c}
		poseStats = append(poseStats, AccelPoseStats{
			Pose:        p,
			Samples:     stats.Samples,
			DurationSec: stats.DurationSec,
			Mean:        stats.Mean,
			StdDev:      stats.StdDev,
			Confidence:  c,
		})

		fmt.Printf("  Pose %s: mean=(%.1f, %.1f, %.1f) std=(%.1f, %.1f, %.1f) conf=%.2f\n",
			p, stats.Mean.X, stats.Mean.Y, stats.Mean.Z, stats.StdDev.X, stats.StdDev.Y, stats.StdDev.Z, c)
	}

	// Compute bias and scale per axis using + and - poses.
	// For axis X:
	//   plus = sx*(+G) + bx
	//   minus = sx*(-G) + bx
	// => bx = (plus + minus)/2
	// => sx*G = (plus - minus)/2
	px := data["+X"].mean.X
	mx := data["-X"].mean.X
	py := data["+Y"].mean.Y
	my := data["-Y"].mean.Y
	pz := data["+Z"].mean.Z
	mz := data["-Z"].mean.Z

	bias = Vec3{
		X: (px + mx) / 2,
		Y: (py + my) / 2,
		Z: (pz + mz) / 2,
	}

	gx := math.Abs((px - mx) / 2)
	gy := math.Abs((py - my) / 2)
	gz := math.Abs((pz - mz) / 2)

	gRef := (gx + gy + gz) / 3
	if gRef < 100 {
		return Vec3{}, Vec3{}, 0, poseStats, errors.New("accelerometer calibration failed: insufficient gravity separation")
	}

	// Per-axis gravity magnitude in mg; with a perfect sensor each would
	// read 1000. corrected = (raw - bias) / scale * 1000.
	scale = Vec3{X: gx, Y: gy, Z: gz}

	// Confidence: combine pose stillness confidences and gravity consistency
	poseConf := 0.0
	for _, p := range poses {
		poseConf += data[p].conf
	}
	poseConf /= float64(len(poses))

	consistency := gravityConsistencyConfidence(gx, gy, gz)
	confidence = clamp01(0.65*poseConf + 0.35*consistency)
	if confidence < confFloor {
		confidence = confFloor
	}
	return bias, scale, confidence, poseStats, nil
}

func gravityConsistencyConfidence(gx, gy, gz float64) float64 {
	m := (gx + gy + gz) / 3
	if m <= 0 {
		return confFloor
	}
	// coefficient of variation
	cv := std3(gx, gy, gz) / m
	return clamp01(1.0 - (cv / 0.5))
}

// ---------- Capture ----------

func captureSamples(readFn func() (imu.Sample, error), dur time.Duration, f func(imu.Sample) Vec3) ([]Vec3, PhaseStats, error) {
	start := time.Now()
	deadline := start.Add(dur)

	targetPeriod := time.Second / time.Duration(sampleHz)

	var values []Vec3
	for time.Now().Before(deadline) {
		s, err := readFn()
		if err != nil {
			return nil, PhaseStats{}, err
		}
		values = append(values, f(s))
		time.Sleep(targetPeriod)
	}
	stats := computeStats(values, dur)
	return values, stats, nil
}

func captureUntilEnterOrTimeout(in *bufio.Reader, readFn func() (imu.Sample, error), maxDur time.Duration, f func(imu.Sample) Vec3) ([]Vec3, PhaseStats, error) {
	start := time.Now()
	deadline := start.Add(maxDur)

	// Non-blocking ENTER detector: we start a goroutine waiting for newline
	stopCh := make(chan struct{}, 1)
	go func() {
		_, _ = in.ReadString('\n')
		stopCh <- struct{}{}
	}()

	targetPeriod := time.Second / time.Duration(sampleHz)

	var values []Vec3
	for {
		select {
		case <-stopCh:
			dur := time.Since(start)
			stats := computeStats(values, dur)
			return values, stats, nil
		default:
			if time.Now().After(deadline) {
				dur := time.Since(start)
				stats := computeStats(values, dur)
				stats.Notes = append(stats.Notes, "stopped_by_timeout")
				return values, stats, nil
			}
			s, err := readFn()
			if err != nil {
				return nil, PhaseStats{}, err
			}
			values = append(values, f(s))
			time.Sleep(targetPeriod)
		}
	}
}

func computeStats(values []Vec3, dur time.Duration) PhaseStats {
	n := len(values)
	if n == 0 {
		return PhaseStats{Samples: 0, DurationSec: dur.Seconds()}
	}
	var sx, sy, sz float64
	var sax, say, saz float64
	for _, v := range values {
		sx += v.X
		sy += v.Y
		sz += v.Z
		sax += math.Abs(v.X)
		say += math.Abs(v.Y)
		saz += math.Abs(v.Z)
	}
	mean := Vec3{X: sx / float64(n), Y: sy / float64(n), Z: sz / float64(n)}
	meanAbs := Vec3{X: sax / float64(n), Y: say / float64(n), Z: saz / float64(n)}

	var vx, vy, vz float64
	for _, v := range values {
		dx := v.X - mean.X
		dy := v.Y - mean.Y
		dz := v.Z - mean.Z
		vx += dx * dx
		vy += dy * dy
		vz += dz * dz
	}
	std := Vec3{
		X: math.Sqrt(vx / float64(n)),
		Y: math.Sqrt(vy / float64(n)),
		Z: math.Sqrt(vz / float64(n)),
	}

	return PhaseStats{
		Samples:     n,
		DurationSec: dur.Seconds(),
		Mean:        mean,
		MeanAbs:     meanAbs,
		StdDev:      std,
	}
}

func integrate(values []Vec3) Vec3 {
	// Best-effort integration assuming uniform sampling at sampleHz.
	if len(values) == 0 {
		return Vec3{}
	}
	dt := 1.0 / float64(sampleHz)
	var ix, iy, iz float64
	for _, v := range values {
		ix += v.X * dt
		iy += v.Y * dt
		iz += v.Z * dt
	}
	return Vec3{X: ix, Y: iy, Z: iz}
}

// ---------- Confidence heuristics ----------

func stillnessConfidence(std Vec3, good, bad float64) float64 {
	// Use average std dev across axes.
	s := (std.X + std.Y + std.Z) / 3
	switch {
	case s <= good:
		return 1.0
	case s >= bad:
		return confFloor
	default:
		// Linear interpolation between good and bad
		t := (s - good) / (bad - good)
		return clamp01(1.0 - 0.95*t)
	}
}

func rotationConfidence(axis string, st PhaseStats) float64 {
	dom := dominantForAxis(axis, st.AxisDominance)
	meanAbs := meanAbsForAxis(axis, st.MeanAbs)

	// Duration factor
	durFactor := clamp01(st.DurationSec / gyroRotMinDur.Seconds())
	if st.DurationSec > gyroRotMaxDur.Seconds() {
		durFactor = 1
	}

	// Dominance factor
	var domFactor float64
	switch {
	case dom >= dominanceGood:
		domFactor = 1
	case dom <= dominanceBad:
		domFactor = 0.2
	default:
		t := (dom - dominanceBad) / (dominanceGood - dominanceBad)
		domFactor = 0.2 + 0.8*clamp01(t)
	}

	// Rotation magnitude factor
	rateFactor := 0.2
	if meanAbs >= minMeanAbsRate {
		// Let it grow to 1.0 by ~4x threshold
		rateFactor = clamp01(meanAbs / (4 * minMeanAbsRate))
	}
	conf := 0.25*durFactor + 0.45*domFactor + 0.30*rateFactor
	return clamp01(maxf(conf, confFloor))
}

func axisDominance(meanAbs Vec3) Vec3 {
	sum := meanAbs.X + meanAbs.Y + meanAbs.Z
	if sum <= 0 {
		return Vec3{}
	}
	return Vec3{
		X: meanAbs.X / sum,
		Y: meanAbs.Y / sum,
		Z: meanAbs.Z / sum,
	}
}

func dominantForAxis(axis string, dom Vec3) float64 {
	switch axis {
	case "x":
		return dom.X
	case "y":
		return dom.Y
	case "z":
		return dom.Z
	default:
		return 0
	}
}

func meanAbsForAxis(axis string, v Vec3) float64 {
	switch axis {
	case "x":
		return v.X
	case "y":
		return v.Y
	case "z":
		return v.Z
	default:
		return 0
	}
}

func overallConfidence(gyroStatic, gyroRot, accel6 float64) float64 {
	// Weighted; gyro static is foundational.
	wGS, wGR, wA := 0.30, 0.25, 0.45
	return clamp01(wGS*gyroStatic + wGR*gyroRot + wA*accel6)
}

// ---------- Output ----------

func writeResult(res CalibrationResult) error {
	ts := time.Now().Format("2006-01-02T15-04-05Z07-00")
	name := fmt.Sprintf("%s_motion_calibration.json", ts)

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return err
	}
	fmt.Printf("\nWrote: %s\n", name)
	return nil
}

// ---------- Console helpers ----------

func waitEnter(in *bufio.Reader, prompt string) {
	fmt.Print(prompt)
	_, _ = in.ReadString('\n')
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}

// ---------- Small math helpers ----------

func offsetLSB(mg float64) int8 {
	// X/Y/Z_OFS_USR weigh 2^-10 g per LSB, so 1 LSB ≈ 0.9765625 mg.
	v := math.Round(mg * 1024.0 / 1000.0)
	if v > 127 {
		v = 127
	}
	if v < -128 {
		v = -128
	}
	return int8(v)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func std3(a, b, c float64) float64 {
	m := (a + b + c) / 3
	return math.Sqrt(((a-m)*(a-m) + (b-m)*(b-m) + (c-m)*(c-m)) / 3)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
