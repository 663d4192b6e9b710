// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package lsm6dso32

// User bank register map.
const (
	RegFuncCfgAccess = 0x01
	RegPinCtrl       = 0x02
	RegFIFOCtrl1     = 0x07
	RegFIFOCtrl2     = 0x08
	RegFIFOCtrl3     = 0x09
	RegFIFOCtrl4     = 0x0A
	RegCounterBDR1   = 0x0B
	RegCounterBDR2   = 0x0C
	RegInt1Ctrl      = 0x0D
	RegInt2Ctrl      = 0x0E
	RegWhoAmI        = 0x0F
	RegCtrl1XL       = 0x10
	RegCtrl2G        = 0x11
	RegCtrl3C        = 0x12
	RegCtrl4C        = 0x13
	RegCtrl5C        = 0x14
	RegCtrl6C        = 0x15
	RegCtrl7G        = 0x16
	RegCtrl8XL       = 0x17
	RegCtrl9XL       = 0x18
	RegCtrl10C       = 0x19
	RegAllIntSrc     = 0x1A
	RegWakeUpSrc     = 0x1B
	RegTapSrc        = 0x1C
	RegD6DSrc        = 0x1D
	RegStatus        = 0x1E
	RegOutTempL      = 0x20
	RegOutTempH      = 0x21
	RegOutXLG        = 0x22 // gyro X low, X/Y/Z pairs through 0x27
	RegOutXLA        = 0x28 // accel X low, X/Y/Z pairs through 0x2D
	RegEmbStatusMain = 0x35
	RegFSMStatusAMain = 0x36
	RegFSMStatusBMain = 0x37
	RegStatusMasterMain = 0x39
	RegFIFOStatus1   = 0x3A
	RegFIFOStatus2   = 0x3B
	RegTimestamp0    = 0x40
	RegTapCfg0       = 0x56
	RegTapCfg1       = 0x57
	RegTapCfg2       = 0x58
	RegTapThs6D      = 0x59
	RegIntDur2       = 0x5A
	RegWakeUpThs     = 0x5B
	RegWakeUpDur     = 0x5C
	RegFreeFall      = 0x5D
	RegMD1Cfg        = 0x5E
	RegMD2Cfg        = 0x5F
	RegI3CBusAvb     = 0x62
	RegFreqFine      = 0x63
	RegXOfsUsr       = 0x73
	RegYOfsUsr       = 0x74
	RegZOfsUsr       = 0x75
	RegFIFODataTag   = 0x78
	RegFIFODataXL    = 0x79 // six data bytes through 0x7E
)

// Embedded-function bank register map (reachable after selecting
// BankEmbedded in FUNC_CFG_ACCESS).
const (
	RegPageSel        = 0x02
	RegEmbFuncEnA     = 0x04
	RegEmbFuncEnB     = 0x05
	RegPageAddress    = 0x08
	RegPageValue      = 0x09
	RegEmbFuncInt1    = 0x0A
	RegFSMInt1A       = 0x0B
	RegFSMInt1B       = 0x0C
	RegEmbFuncInt2    = 0x0E
	RegFSMInt2A       = 0x0F
	RegFSMInt2B       = 0x10
	RegEmbFuncStatus  = 0x12
	RegFSMStatusA     = 0x13
	RegFSMStatusB     = 0x14
	RegPageRW         = 0x17
	RegEmbFuncFIFOCfg = 0x44
	RegFSMEnableA     = 0x46
	RegFSMEnableB     = 0x47
	RegFSMLongCntL    = 0x48
	RegFSMLongCntH    = 0x49
	RegFSMLongCntClr  = 0x4A
	RegFSMOuts1       = 0x4C // sixteen output registers through 0x5B
	RegEmbFuncODRCfgB = 0x5F
	RegStepCounterL   = 0x62
	RegStepCounterH   = 0x63
	RegEmbFuncSrc     = 0x64
	RegEmbFuncInitA   = 0x66
	RegEmbFuncInitB   = 0x67
)

// Sensor-hub bank register map (BankSensorHub).
const (
	RegSensorHub1    = 0x02 // eighteen read-out registers through 0x13
	RegMasterConfig  = 0x14
	RegSlv0Add       = 0x15
	RegSlv0Subadd    = 0x16
	RegSlv0Config    = 0x17
	RegSlv1Add       = 0x18
	RegSlv1Subadd    = 0x19
	RegSlv1Config    = 0x1A
	RegSlv2Add       = 0x1B
	RegSlv2Subadd    = 0x1C
	RegSlv2Config    = 0x1D
	RegSlv3Add       = 0x1E
	RegSlv3Subadd    = 0x1F
	RegSlv3Config    = 0x20
	RegDataWriteSlv0 = 0x21
	RegStatusMaster  = 0x22
)

// Embedded advanced features: linear addresses into the paged memory
// (page index in bits 11:8, in-page offset in bits 7:0).
const (
	PageMagSensitivityL = 0x0BA
	PageMagSensitivityH = 0x0BB
	PageMagOffXL        = 0x0C0
	PageMagOffXH        = 0x0C1
	PageMagOffYL        = 0x0C2
	PageMagOffYH        = 0x0C3
	PageMagOffZL        = 0x0C4
	PageMagOffZH        = 0x0C5
	PageMagSIXXL        = 0x0C6 // soft-iron matrix, six s16 values through 0x0D1
	PageMagCfgA         = 0x0D4
	PageMagCfgB         = 0x0D5
	PageFSMLCTimeoutL   = 0x17A
	PageFSMLCTimeoutH   = 0x17B
	PageFSMPrograms     = 0x17C
	PageFSMStartAddL    = 0x17E
	PageFSMStartAddH    = 0x17F
	PagePedoCmdReg      = 0x183
	PagePedoDebStepsConf = 0x184
	PagePedoSCDeltaTL   = 0x1D0
	PagePedoSCDeltaTH   = 0x1D1
)

// WhoAmI is the fixed content of the WHO_AM_I register.
const WhoAmI = 0x6C

// FUNC_CFG_ACCESS register access field (bits 7:6).
const (
	funcCfgAccessShift = 6
	funcCfgAccessMask  = 0x03 << funcCfgAccessShift
)

// PAGE_SEL: page index in bits 7:4, bit 0 must read back as 1.
const (
	pageSelShift    = 4
	pageSelMask     = 0xF0
	pageSelReserved = 0x01
)

// PAGE_RW enable field (bits 6:5): 01 = read burst, 10 = write burst.
// Bit 7 is the embedded-function latched-interrupt flag.
const (
	pageRWShift   = 5
	pageRWMask    = 0x03 << pageRWShift
	pageModeIdle  = 0x00
	pageModeRead  = 0x01
	pageModeWrite = 0x02
	embFuncLIR    = 0x80
)

// CTRL3_C bits.
const (
	ctrl3SWReset = 0x01
	ctrl3IfInc   = 0x04
	ctrl3BDU     = 0x40
	ctrl3Boot    = 0x80
)

// STATUS_REG bits.
const (
	statusXLDA = 0x01
	statusGDA  = 0x02
	statusTDA  = 0x04
)

// EMB_FUNC_EN_A / EMB_FUNC_EN_B bits.
const (
	embEnAPedo     = 0x08
	embEnATilt     = 0x10
	embEnASigMot   = 0x20
	embEnBFSM      = 0x01
	embEnBPedoAdv  = 0x10
	embEnBFIFOCompr = 0x08
)

// EMB_FUNC_SRC bits.
const (
	embSrcStepOverflow  = 0x08
	embSrcStepDetected  = 0x20
	embSrcPedoRstStep   = 0x80
)

// PEDO_CMD_REG bits (paged memory).
const (
	pedoCmdFPRejection = 0x04
	pedoCmdADDet       = 0x08
)

// MASTER_CONFIG bits (sensor-hub bank).
const (
	shAuxSensOnMask  = 0x03
	shMasterOn       = 0x04
	shPassThrough    = 0x10
	shPullUpEn       = 0x08
	shStartConfig    = 0x20
	shWriteOnce      = 0x40
	shRstMasterRegs  = 0x80
)
