// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

// Event detection: wake-up, activity, free-fall, 6D/4D orientation and
// single/double tap. All thresholds are raw register LSBs; their weight
// depends on the selected accelerometer full scale.

// SetWakeUpThreshold programs WAKE_UP_THS.WK_THS (6 bits).
func (d *Device) SetWakeUpThreshold(ths byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegWakeUpThs, 0x3F, ths&0x3F)
}

// SetWakeUpDuration programs WAKE_UP_DUR.WAKE_DUR (2 bits).
func (d *Device) SetWakeUpDuration(dur byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegWakeUpDur, 0x60, dur&0x03<<5)
}

// SetSleepDuration programs WAKE_UP_DUR.SLEEP_DUR (4 bits).
func (d *Device) SetSleepDuration(dur byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegWakeUpDur, 0x0F, dur&0x0F)
}

// ActivityMode is TAP_CFG2.INACT_EN: what happens to the sensors while
// the device is considered inactive (asleep).
type ActivityMode byte

const (
	ActivityDisabled     ActivityMode = 0 // no inactivity handling
	ActivityAccelLowODR  ActivityMode = 1 // accel drops to 12.5 Hz, gyro unchanged
	ActivityGyroSleep    ActivityMode = 2 // accel 12.5 Hz, gyro in sleep mode
	ActivityGyroPowerOff ActivityMode = 3 // accel 12.5 Hz, gyro powered down
)

// SetActivityMode programs the inactivity behavior. Sleep entry and exit
// show up in AllSources as SleepChange/Sleeping.
func (d *Device) SetActivityMode(m ActivityMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapCfg2, 0x60, byte(m)&0x03<<5)
}

// ActivityMode reads back TAP_CFG2.INACT_EN.
func (d *Device) ActivityMode() (ActivityMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, err := d.readByte(RegTapCfg2)
	if err != nil {
		return ActivityDisabled, err
	}
	return ActivityMode(v >> 5 & 0x03), nil
}

// FreeFallThreshold is FREE_FALL.FF_THS.
type FreeFallThreshold byte

const (
	FreeFall156mg FreeFallThreshold = 0
	FreeFall219mg FreeFallThreshold = 1
	FreeFall250mg FreeFallThreshold = 2
	FreeFall312mg FreeFallThreshold = 3
	FreeFall344mg FreeFallThreshold = 4
	FreeFall406mg FreeFallThreshold = 5
	FreeFall469mg FreeFallThreshold = 6
	FreeFall500mg FreeFallThreshold = 7
)

// SetFreeFall programs the free-fall threshold and the 6-bit duration.
// The duration's top bit lives in WAKE_UP_DUR.FF_DUR5.
func (d *Device) SetFreeFall(ths FreeFallThreshold, dur byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.updateReg(RegWakeUpDur, 0x80, dur&0x20<<2); err != nil {
		return err
	}
	return d.updateReg(RegFreeFall, 0xFF, dur&0x1F<<3|byte(ths)&0x07)
}

// SixDThreshold is TAP_THS_6D.SIXD_THS.
type SixDThreshold byte

const (
	SixD80Degrees SixDThreshold = 0
	SixD70Degrees SixDThreshold = 1
	SixD60Degrees SixDThreshold = 2
	SixD50Degrees SixDThreshold = 3
)

// Set6DThreshold programs the 6D orientation detection threshold.
func (d *Device) Set6DThreshold(ths SixDThreshold) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapThs6D, 0x60, byte(ths)&0x03<<5)
}

// Set4DMode restricts orientation detection to the four portrait and
// landscape positions (no face-up/face-down).
func (d *Device) Set4DMode(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapThs6D, 0x80, flag(on, 0x80))
}

// EnableTapAxes selects the axes contributing to tap detection
// (TAP_CFG0 bits 3:1).
func (d *Device) EnableTapAxes(x, y, z bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := flag(x, 0x08) | flag(y, 0x04) | flag(z, 0x02)
	return d.updateReg(RegTapCfg0, 0x0E, v)
}

// SetTapThresholdX programs TAP_CFG1.TAP_THS_X (5 bits).
func (d *Device) SetTapThresholdX(ths byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapCfg1, 0x1F, ths&0x1F)
}

// SetTapThresholdY programs TAP_CFG2.TAP_THS_Y (5 bits).
func (d *Device) SetTapThresholdY(ths byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapCfg2, 0x1F, ths&0x1F)
}

// SetTapThresholdZ programs TAP_THS_6D.TAP_THS_Z (5 bits).
func (d *Device) SetTapThresholdZ(ths byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapThs6D, 0x1F, ths&0x1F)
}

// TapPriority is TAP_CFG1.TAP_PRIORITY, the axis ordering used when more
// than one axis exceeds its threshold in the same window.
type TapPriority byte

const (
	TapPriorityXYZ TapPriority = 0
	TapPriorityYXZ TapPriority = 1
	TapPriorityXZY TapPriority = 2
	TapPriorityZYX TapPriority = 3
	TapPriorityYZX TapPriority = 5
	TapPriorityZXY TapPriority = 6
)

// SetTapPriority programs the tap axis priority.
func (d *Device) SetTapPriority(p TapPriority) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapCfg1, 0xE0, byte(p)&0x07<<5)
}

// SetTapWindow programs the shock (2 bits), quiet (2 bits) and
// double-tap duration (4 bits) fields of INT_DUR2.
func (d *Device) SetTapWindow(shock, quiet, dur byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegIntDur2, 0xFF, dur&0x0F<<4|quiet&0x03<<2|shock&0x03)
}

// SetDoubleTap selects single+double (true) or single-only (false) tap
// event mode (WAKE_UP_THS.SINGLE_DOUBLE_TAP).
func (d *Device) SetDoubleTap(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegWakeUpThs, 0x80, flag(on, 0x80))
}

// EnableInterrupts gates all event interrupt generation
// (TAP_CFG2.INTERRUPTS_ENABLE).
func (d *Device) EnableInterrupts(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updateReg(RegTapCfg2, 0x80, flag(on, 0x80))
}

// SetLatchedInterrupts selects latched event interrupts. The basic
// detectors latch via TAP_CFG0.LIR; the embedded functions have their own
// latch bit behind the bank switch (PAGE_RW.EMB_FUNC_LIR).
func (d *Device) SetLatchedInterrupts(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.updateReg(RegTapCfg0, 0x01, flag(on, 0x01)); err != nil {
		return err
	}
	return d.withBank(BankEmbedded, func() error {
		return d.updateReg(RegPageRW, embFuncLIR, flag(on, embFuncLIR))
	})
}

// IntRoute selects which events are routed to an interrupt pin
// (MD1_CFG / MD2_CFG layout).
type IntRoute struct {
	Shub      bool
	EmbFunc   bool
	SixD      bool
	DoubleTap bool
	FreeFall  bool
	WakeUp    bool
	SingleTap bool
	Sleep     bool
}

func (r IntRoute) register() byte {
	return flag(r.Shub, 0x01) | flag(r.EmbFunc, 0x02) | flag(r.SixD, 0x04) |
		flag(r.DoubleTap, 0x08) | flag(r.FreeFall, 0x10) | flag(r.WakeUp, 0x20) |
		flag(r.SingleTap, 0x40) | flag(r.Sleep, 0x80)
}

// RouteInt1 programs the INT1 event routing (MD1_CFG).
func (d *Device) RouteInt1(r IntRoute) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tr.WriteReg(RegMD1Cfg, []byte{r.register()})
}

// RouteInt2 programs the INT2 event routing (MD2_CFG).
func (d *Device) RouteInt2(r IntRoute) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tr.WriteReg(RegMD2Cfg, []byte{r.register()})
}

// Sources is the decoded event source block (ALL_INT_SRC through D6D_SRC)
// plus the embedded-function flags from the main page.
type Sources struct {
	FreeFall    bool
	WakeUp      bool
	SingleTap   bool
	DoubleTap   bool
	SixD        bool
	SleepChange bool

	WakeX, WakeY, WakeZ bool
	Sleeping            bool

	TapX, TapY, TapZ bool
	TapSign          bool

	// 6D orientation: per-axis low/high position flags.
	XL, XH, YL, YH, ZL, ZH bool

	StepDetected bool
	Tilt         bool
	SigMotion    bool
}

// AllSources reads the event source registers in one burst plus the
// embedded-function status from the main page.
func (d *Device) AllSources() (Sources, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [4]byte
	var s Sources
	if err := d.tr.ReadReg(RegAllIntSrc, buf[:]); err != nil {
		return s, err
	}
	all, wake, tap, d6d := buf[0], buf[1], buf[2], buf[3]
	s.FreeFall = all&0x01 != 0
	s.WakeUp = all&0x02 != 0
	s.SingleTap = all&0x04 != 0
	s.DoubleTap = all&0x08 != 0
	s.SixD = all&0x10 != 0
	s.SleepChange = all&0x20 != 0
	s.WakeZ = wake&0x01 != 0
	s.WakeY = wake&0x02 != 0
	s.WakeX = wake&0x04 != 0
	s.Sleeping = wake&0x10 != 0
	s.TapZ = tap&0x01 != 0
	s.TapY = tap&0x02 != 0
	s.TapX = tap&0x04 != 0
	s.TapSign = tap&0x08 != 0
	s.XL = d6d&0x01 != 0
	s.XH = d6d&0x02 != 0
	s.YL = d6d&0x04 != 0
	s.YH = d6d&0x08 != 0
	s.ZL = d6d&0x10 != 0
	s.ZH = d6d&0x20 != 0
	emb, err := d.readByte(RegEmbStatusMain)
	if err != nil {
		return s, err
	}
	s.StepDetected = emb&0x08 != 0
	s.Tilt = emb&0x10 != 0
	s.SigMotion = emb&0x20 != 0
	return s, nil
}
