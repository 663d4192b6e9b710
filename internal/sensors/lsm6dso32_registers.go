// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// RegisterInfo describes one register for the debug tool frontend.
type RegisterInfo struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "W" or "RW"
	Default     string     `json:"default,omitempty"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// BitField describes one named field inside a register.
type BitField struct {
	Bits        string `json:"bits"` // e.g. "7:4" or "0"
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// GetLSM6DSO32RegisterMap returns metadata for the LSM6DSO32 user bank
// registers. This provides register names, descriptions, access types,
// and bit field definitions for the register debug frontend.
func GetLSM6DSO32RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		// Bank and page plumbing
		{Address: "0x01", Name: "FUNC_CFG_ACCESS", Description: "Register bank selection", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "FUNC_CFG_EN", Description: "Embedded functions bank enable", Values: "0=User bank, 1=Embedded bank"},
				{Bits: "6", Name: "SHUB_REG_ACCESS", Description: "Sensor hub bank enable", Values: "0=User bank, 1=Sensor hub bank"},
			}},
		{Address: "0x02", Name: "PIN_CTRL", Description: "SDO pull-up and OIS control", Access: "RW", Default: "0x3F",
			BitFields: []BitField{
				{Bits: "7", Name: "OIS_PU_DIS", Description: "OIS pull-up disable", Values: "0=Enabled, 1=Disabled"},
				{Bits: "6", Name: "SDO_PU_EN", Description: "SDO pin pull-up", Values: "0=Disabled, 1=Enabled"},
			}},

		// FIFO configuration
		{Address: "0x07", Name: "FIFO_CTRL1", Description: "FIFO watermark low byte", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:0", Name: "WTM[7:0]", Description: "Watermark threshold, records", Values: "0-255"},
			}},
		{Address: "0x08", Name: "FIFO_CTRL2", Description: "FIFO watermark high bit and compression", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "STOP_ON_WTM", Description: "Limit FIFO depth to watermark", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "FIFO_COMPR_RT_EN", Description: "Runtime compression enable", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "WTM8", Description: "Watermark threshold bit 8", Values: "0-1"},
			}},
		{Address: "0x09", Name: "FIFO_CTRL3", Description: "FIFO batch data rates", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:4", Name: "BDR_GY", Description: "Gyro batch rate", Values: "0=Off, 1=12.5Hz ... 10=6.67kHz, 11=6.5Hz"},
				{Bits: "3:0", Name: "BDR_XL", Description: "Accel batch rate", Values: "0=Off, 1=12.5Hz ... 10=6.67kHz, 11=1.6Hz"},
			}},
		{Address: "0x0A", Name: "FIFO_CTRL4", Description: "FIFO mode and auxiliary batching", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:6", Name: "DEC_TS_BATCH", Description: "Timestamp decimation", Values: "0=Off, 1=1, 2=8, 3=32"},
				{Bits: "5:4", Name: "ODR_T_BATCH", Description: "Temperature batch rate", Values: "0=Off, 1=1.6Hz, 2=12.5Hz, 3=52Hz"},
				{Bits: "2:0", Name: "FIFO_MODE", Description: "FIFO operating mode", Values: "0=Bypass, 1=Stop-on-full, 6=Continuous"},
			}},
		{Address: "0x0B", Name: "COUNTER_BDR_REG1", Description: "Batch counter threshold high bits", Access: "RW", Default: "0x00"},
		{Address: "0x0C", Name: "COUNTER_BDR_REG2", Description: "Batch counter threshold low byte", Access: "RW", Default: "0x00"},

		// Interrupt routing
		{Address: "0x0D", Name: "INT1_CTRL", Description: "Data-ready and FIFO signals on INT1", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5", Name: "INT1_FIFO_FULL", Description: "FIFO full on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4", Name: "INT1_FIFO_OVR", Description: "FIFO overrun on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "INT1_FIFO_TH", Description: "FIFO watermark on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "INT1_DRDY_G", Description: "Gyro data ready on INT1", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "INT1_DRDY_XL", Description: "Accel data ready on INT1", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x0E", Name: "INT2_CTRL", Description: "Data-ready and FIFO signals on INT2", Access: "RW", Default: "0x00"},

		// Identification
		{Address: "0x0F", Name: "WHO_AM_I", Description: "Device ID (should be 0x6C)", Access: "R", Default: "0x6C"},

		// Control registers
		{Address: "0x10", Name: "CTRL1_XL", Description: "Accelerometer control", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:4", Name: "ODR_XL", Description: "Output data rate", Values: "0=Off, 1=12.5Hz, 2=26Hz, 3=52Hz, 4=104Hz, 5=208Hz, 6=417Hz, 7=833Hz, 8=1.67kHz, 9=3.33kHz, 10=6.67kHz, 11=1.6Hz(LP)"},
				{Bits: "3:2", Name: "FS_XL", Description: "Full scale", Values: "0=±4g, 1=±32g, 2=±8g, 3=±16g"},
				{Bits: "1", Name: "LPF2_XL_EN", Description: "Second LPF stage enable", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x11", Name: "CTRL2_G", Description: "Gyroscope control", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:4", Name: "ODR_G", Description: "Output data rate", Values: "0=Off, 1=12.5Hz ... 10=6.67kHz"},
				{Bits: "3:1", Name: "FS_G", Description: "Full scale", Values: "0=±250°/s, 1=±125°/s, 2=±500°/s, 4=±1000°/s, 6=±2000°/s"},
			}},
		{Address: "0x12", Name: "CTRL3_C", Description: "Common control", Access: "RW", Default: "0x04",
			BitFields: []BitField{
				{Bits: "7", Name: "BOOT", Description: "Reboot memory content", Values: "1=Reboot"},
				{Bits: "6", Name: "BDU", Description: "Block data update", Values: "0=Continuous, 1=Output registers latched until read"},
				{Bits: "5", Name: "H_LACTIVE", Description: "Interrupt polarity", Values: "0=Active high, 1=Active low"},
				{Bits: "4", Name: "PP_OD", Description: "Interrupt pad mode", Values: "0=Push-pull, 1=Open drain"},
				{Bits: "3", Name: "SIM", Description: "SPI mode", Values: "0=4-wire, 1=3-wire"},
				{Bits: "2", Name: "IF_INC", Description: "Register address auto-increment", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "SW_RESET", Description: "Software reset", Values: "1=Reset"},
			}},
		{Address: "0x13", Name: "CTRL4_C", Description: "Control 4", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "6", Name: "SLEEP_G", Description: "Gyro sleep mode", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "INT2_on_INT1", Description: "Route INT2 signals to INT1", Values: "0=Split, 1=All on INT1"},
				{Bits: "3", Name: "DRDY_MASK", Description: "Mask data-ready during filter settling", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "I2C_disable", Description: "Disable I2C interface", Values: "0=Enabled, 1=SPI only"},
				{Bits: "1", Name: "LPF1_SEL_G", Description: "Gyro LPF1 enable", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: "0x14", Name: "CTRL5_C", Description: "Control 5", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "XL_ULP_EN", Description: "Accel ultra-low-power mode", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6:5", Name: "ROUNDING", Description: "Output register rounding", Values: "0=None, 1=Accel only, 2=Gyro only, 3=Both"},
				{Bits: "3:2", Name: "ST_G", Description: "Gyro self-test", Values: "0=Off, 1=Positive, 3=Negative"},
				{Bits: "1:0", Name: "ST_XL", Description: "Accel self-test", Values: "0=Off, 1=Positive, 2=Negative"},
			}},
		{Address: "0x15", Name: "CTRL6_C", Description: "Control 6", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:5", Name: "TRIG_EN/LVL_EN", Description: "Gyro data edge/level trigger", Values: ""},
				{Bits: "4", Name: "XL_HM_MODE", Description: "Accel high-performance disable", Values: "0=HP enabled, 1=HP disabled"},
				{Bits: "2:0", Name: "FTYPE", Description: "Gyro LPF1 bandwidth", Values: "0-7"},
			}},
		{Address: "0x16", Name: "CTRL7_G", Description: "Control 7", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "G_HM_MODE", Description: "Gyro high-performance disable", Values: "0=HP enabled, 1=HP disabled"},
				{Bits: "6", Name: "HP_EN_G", Description: "Gyro digital HP filter enable", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5:4", Name: "HPM_G", Description: "Gyro HP filter cutoff", Values: "0=16mHz, 1=65mHz, 2=260mHz, 3=1.04Hz"},
				{Bits: "1", Name: "USR_OFF_ON_OUT", Description: "Apply user offsets to output", Values: "0=Bypassed, 1=Applied"},
			}},
		{Address: "0x17", Name: "CTRL8_XL", Description: "Control 8 (accel filtering)", Access: "RW", Default: "0x00"},
		{Address: "0x18", Name: "CTRL9_XL", Description: "Control 9", Access: "RW", Default: "0xE0",
			BitFields: []BitField{
				{Bits: "1", Name: "I3C_disable", Description: "Disable I3C interface", Values: "0=Enabled, 1=Disabled"},
			}},
		{Address: "0x19", Name: "CTRL10_C", Description: "Control 10", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "5", Name: "TIMESTAMP_EN", Description: "Timestamp counter enable", Values: "0=Disabled, 1=Enabled"},
			}},

		// Status and sources
		{Address: "0x1A", Name: "ALL_INT_SRC", Description: "All interrupt sources", Access: "R",
			BitFields: []BitField{
				{Bits: "5", Name: "SLEEP_CHANGE_IA", Description: "Activity/inactivity change", Values: ""},
				{Bits: "4", Name: "D6D_IA", Description: "6D orientation change", Values: ""},
				{Bits: "3", Name: "DOUBLE_TAP", Description: "Double tap detected", Values: ""},
				{Bits: "2", Name: "SINGLE_TAP", Description: "Single tap detected", Values: ""},
				{Bits: "1", Name: "WU_IA", Description: "Wake-up detected", Values: ""},
				{Bits: "0", Name: "FF_IA", Description: "Free fall detected", Values: ""},
			}},
		{Address: "0x1B", Name: "WAKE_UP_SRC", Description: "Wake-up event source", Access: "R"},
		{Address: "0x1C", Name: "TAP_SRC", Description: "Tap event source", Access: "R"},
		{Address: "0x1D", Name: "D6D_SRC", Description: "6D orientation source", Access: "R"},
		{Address: "0x1E", Name: "STATUS_REG", Description: "Data-ready status", Access: "R",
			BitFields: []BitField{
				{Bits: "2", Name: "TDA", Description: "Temperature data available", Values: ""},
				{Bits: "1", Name: "GDA", Description: "Gyro data available", Values: ""},
				{Bits: "0", Name: "XLDA", Description: "Accel data available", Values: ""},
			}},

		// Output registers (read-only)
		{Address: "0x20", Name: "OUT_TEMP_L", Description: "Temperature low byte", Access: "R"},
		{Address: "0x21", Name: "OUT_TEMP_H", Description: "Temperature high byte", Access: "R"},
		{Address: "0x22", Name: "OUTX_L_G", Description: "Gyro pitch (X) low byte", Access: "R"},
		{Address: "0x23", Name: "OUTX_H_G", Description: "Gyro pitch (X) high byte", Access: "R"},
		{Address: "0x24", Name: "OUTY_L_G", Description: "Gyro roll (Y) low byte", Access: "R"},
		{Address: "0x25", Name: "OUTY_H_G", Description: "Gyro roll (Y) high byte", Access: "R"},
		{Address: "0x26", Name: "OUTZ_L_G", Description: "Gyro yaw (Z) low byte", Access: "R"},
		{Address: "0x27", Name: "OUTZ_H_G", Description: "Gyro yaw (Z) high byte", Access: "R"},
		{Address: "0x28", Name: "OUTX_L_A", Description: "Accel X low byte", Access: "R"},
		{Address: "0x29", Name: "OUTX_H_A", Description: "Accel X high byte", Access: "R"},
		{Address: "0x2A", Name: "OUTY_L_A", Description: "Accel Y low byte", Access: "R"},
		{Address: "0x2B", Name: "OUTY_H_A", Description: "Accel Y high byte", Access: "R"},
		{Address: "0x2C", Name: "OUTZ_L_A", Description: "Accel Z low byte", Access: "R"},
		{Address: "0x2D", Name: "OUTZ_H_A", Description: "Accel Z high byte", Access: "R"},

		// Embedded function status (main page mirror)
		{Address: "0x35", Name: "EMB_FUNC_STATUS_MAINPAGE", Description: "Embedded function status", Access: "R",
			BitFields: []BitField{
				{Bits: "5", Name: "IS_SIGMOT", Description: "Significant motion detected", Values: ""},
				{Bits: "4", Name: "IS_TILT", Description: "Tilt detected", Values: ""},
				{Bits: "3", Name: "IS_STEP_DET", Description: "Step detected", Values: ""},
			}},
		{Address: "0x36", Name: "FSM_STATUS_A_MAINPAGE", Description: "FSM 1-8 interrupt status", Access: "R"},
		{Address: "0x37", Name: "FSM_STATUS_B_MAINPAGE", Description: "FSM 9-16 interrupt status", Access: "R"},
		{Address: "0x39", Name: "STATUS_MASTER_MAINPAGE", Description: "Sensor hub status", Access: "R"},

		// FIFO status and output
		{Address: "0x3A", Name: "FIFO_STATUS1", Description: "FIFO level low byte", Access: "R"},
		{Address: "0x3B", Name: "FIFO_STATUS2", Description: "FIFO level high bits and flags", Access: "R",
			BitFields: []BitField{
				{Bits: "7", Name: "FIFO_WTM_IA", Description: "Watermark reached", Values: ""},
				{Bits: "6", Name: "FIFO_OVR_IA", Description: "FIFO overrun", Values: ""},
				{Bits: "5", Name: "FIFO_FULL_IA", Description: "FIFO full", Values: ""},
				{Bits: "1:0", Name: "DIFF_FIFO[9:8]", Description: "FIFO level high bits", Values: ""},
			}},

		// Timestamp
		{Address: "0x40", Name: "TIMESTAMP0", Description: "Timestamp byte 0 (25µs/LSB)", Access: "R"},
		{Address: "0x41", Name: "TIMESTAMP1", Description: "Timestamp byte 1", Access: "R"},
		{Address: "0x42", Name: "TIMESTAMP2", Description: "Timestamp byte 2", Access: "R"},
		{Address: "0x43", Name: "TIMESTAMP3", Description: "Timestamp byte 3", Access: "R"},

		// Event detection configuration
		{Address: "0x56", Name: "TAP_CFG0", Description: "Tap axes enable and interrupt latching", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "3", Name: "TAP_X_EN", Description: "Tap detection on X", Values: "0=Disabled, 1=Enabled"},
				{Bits: "2", Name: "TAP_Y_EN", Description: "Tap detection on Y", Values: "0=Disabled, 1=Enabled"},
				{Bits: "1", Name: "TAP_Z_EN", Description: "Tap detection on Z", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "LIR", Description: "Latched interrupts", Values: "0=Pulsed, 1=Latched"},
			}},
		{Address: "0x57", Name: "TAP_CFG1", Description: "Tap X threshold and axis priority", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:5", Name: "TAP_PRIORITY", Description: "Tap axis priority ordering", Values: ""},
				{Bits: "4:0", Name: "TAP_THS_X", Description: "X tap threshold", Values: "0-31"},
			}},
		{Address: "0x58", Name: "TAP_CFG2", Description: "Tap Y threshold and interrupt enable", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "INTERRUPTS_ENABLE", Description: "Basic interrupts enable", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4:0", Name: "TAP_THS_Y", Description: "Y tap threshold", Values: "0-31"},
			}},
		{Address: "0x59", Name: "TAP_THS_6D", Description: "Tap Z threshold and 6D settings", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "D4D_EN", Description: "4D mode (ignore Z)", Values: "0=6D, 1=4D"},
				{Bits: "6:5", Name: "SIXD_THS", Description: "6D angle threshold", Values: "0=80°, 1=70°, 2=60°, 3=50°"},
				{Bits: "4:0", Name: "TAP_THS_Z", Description: "Z tap threshold", Values: "0-31"},
			}},
		{Address: "0x5A", Name: "INT_DUR2", Description: "Tap shock, quiet and double-tap gap", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:4", Name: "DUR", Description: "Double tap gap window", Values: "0-15"},
				{Bits: "3:2", Name: "QUIET", Description: "Quiet window after tap", Values: "0-3"},
				{Bits: "1:0", Name: "SHOCK", Description: "Maximum shock duration", Values: "0-3"},
			}},
		{Address: "0x5B", Name: "WAKE_UP_THS", Description: "Wake-up threshold and tap mode", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "SINGLE_DOUBLE_TAP", Description: "Tap event mode", Values: "0=Single only, 1=Single and double"},
				{Bits: "5:0", Name: "WK_THS", Description: "Wake-up threshold", Values: "0-63"},
			}},
		{Address: "0x5C", Name: "WAKE_UP_DUR", Description: "Wake-up and sleep durations", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "FF_DUR5", Description: "Free fall duration bit 5", Values: ""},
				{Bits: "6:5", Name: "WAKE_DUR", Description: "Wake-up duration", Values: "0-3 ODR cycles"},
				{Bits: "3:0", Name: "SLEEP_DUR", Description: "Sleep duration", Values: "0-15"},
			}},
		{Address: "0x5D", Name: "FREE_FALL", Description: "Free fall threshold and duration", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7:3", Name: "FF_DUR[4:0]", Description: "Free fall duration low bits", Values: ""},
				{Bits: "2:0", Name: "FF_THS", Description: "Free fall threshold", Values: "0=312mg ... 7=500mg"},
			}},
		{Address: "0x5E", Name: "MD1_CFG", Description: "Event routing to INT1", Access: "RW", Default: "0x00",
			BitFields: []BitField{
				{Bits: "7", Name: "INT1_SLEEP_CHANGE", Description: "Activity change on INT1", Values: ""},
				{Bits: "6", Name: "INT1_SINGLE_TAP", Description: "Single tap on INT1", Values: ""},
				{Bits: "5", Name: "INT1_WU", Description: "Wake-up on INT1", Values: ""},
				{Bits: "4", Name: "INT1_FF", Description: "Free fall on INT1", Values: ""},
				{Bits: "3", Name: "INT1_DOUBLE_TAP", Description: "Double tap on INT1", Values: ""},
				{Bits: "2", Name: "INT1_6D", Description: "6D change on INT1", Values: ""},
				{Bits: "1", Name: "INT1_EMB_FUNC", Description: "Embedded functions on INT1", Values: ""},
				{Bits: "0", Name: "INT1_SHUB", Description: "Sensor hub end-of-op on INT1", Values: ""},
			}},
		{Address: "0x5F", Name: "MD2_CFG", Description: "Event routing to INT2", Access: "RW", Default: "0x00"},

		// Accelerometer user offsets
		{Address: "0x73", Name: "X_OFS_USR", Description: "Accel X user offset", Access: "RW", Default: "0x00"},
		{Address: "0x74", Name: "Y_OFS_USR", Description: "Accel Y user offset", Access: "RW", Default: "0x00"},
		{Address: "0x75", Name: "Z_OFS_USR", Description: "Accel Z user offset", Access: "RW", Default: "0x00"},

		// FIFO output
		{Address: "0x78", Name: "FIFO_DATA_OUT_TAG", Description: "FIFO record tag", Access: "R",
			BitFields: []BitField{
				{Bits: "7:3", Name: "TAG_SENSOR", Description: "Record type", Values: "1=Gyro, 2=Accel, 3=Temperature, 4=Timestamp, 18=Step count"},
				{Bits: "2:1", Name: "TAG_CNT", Description: "2-bit sequence counter", Values: "0-3"},
			}},
		{Address: "0x79", Name: "FIFO_DATA_OUT_X_L", Description: "FIFO record X low byte", Access: "R"},
		{Address: "0x7A", Name: "FIFO_DATA_OUT_X_H", Description: "FIFO record X high byte", Access: "R"},
		{Address: "0x7B", Name: "FIFO_DATA_OUT_Y_L", Description: "FIFO record Y low byte", Access: "R"},
		{Address: "0x7C", Name: "FIFO_DATA_OUT_Y_H", Description: "FIFO record Y high byte", Access: "R"},
		{Address: "0x7D", Name: "FIFO_DATA_OUT_Z_L", Description: "FIFO record Z low byte", Access: "R"},
		{Address: "0x7E", Name: "FIFO_DATA_OUT_Z_H", Description: "FIFO record Z high byte", Access: "R"},
	}
}
