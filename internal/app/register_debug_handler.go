// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/relabs-tech/motion_node/internal/config"
	"github.com/relabs-tech/motion_node/internal/sensors"
)

// RegisterDebugSession holds WebSocket connection state for register debugging
type RegisterDebugSession struct {
	Conn *websocket.Conn
}

// RegisterResponse is the envelope for all debug tool responses
type RegisterResponse struct {
	Type        string                 `json:"type"` // "register_data", "page_data", "register_map", "status", "error"
	Address     string                 `json:"addr,omitempty"`
	Value       string                 `json:"value,omitempty"`
	Data        string                 `json:"data,omitempty"`      // hex string for paged reads
	Registers   map[string]string      `json:"registers,omitempty"` // for bulk read
	Timestamp   string                 `json:"timestamp,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Status      string                 `json:"status,omitempty"`
	RegisterMap []sensors.RegisterInfo `json:"register_map,omitempty"`
}

// RegisterConfigFile represents the JSON structure for exported register configuration
type RegisterConfigFile struct {
	Version   int               `json:"version"`
	Timestamp string            `json:"timestamp"`
	Registers map[string]string `json:"registers"` // hex address -> hex value
}

// HandleRegisterDebugWS handles the WebSocket connection for register debugging
func HandleRegisterDebugWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("register_debug: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := &RegisterDebugSession{Conn: conn}

	// Send register map on connection
	if err := session.sendRegisterMap(); err != nil {
		log.Printf("register_debug: error sending register map: %v", err)
		return
	}

	// Message loop
	for {
		var rawMsg map[string]interface{}
		err := conn.ReadJSON(&rawMsg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("register_debug: websocket error: %v", err)
			}
			break
		}

		action, ok := rawMsg["action"].(string)
		if !ok {
			session.sendError("missing or invalid action field")
			continue
		}

		// Route based on action
		switch action {
		case "get_map":
			session.sendRegisterMap()
		case "read":
			session.handleRead(rawMsg)
		case "read_all":
			session.handleReadAll()
		case "write":
			session.handleWrite(rawMsg)
		case "page_read":
			session.handlePageRead(rawMsg)
		case "page_write":
			session.handlePageWrite(rawMsg)
		case "init":
			session.handleInit()
		case "export_config":
			session.handleExportConfig()
		default:
			session.sendError(fmt.Sprintf("unknown action: %s", action))
		}
	}
}

func (s *RegisterDebugSession) handleRead(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	if addr == "" {
		s.sendError("missing addr field")
		return
	}

	addrByte, err := parseHexByte(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}

	mgr := sensors.GetIMUManager()
	value, err := mgr.ReadRegister(addrByte)
	if err != nil {
		s.sendError(fmt.Sprintf("read error: %v", err))
		return
	}

	resp := RegisterResponse{
		Type:      "register_data",
		Address:   addr,
		Value:     fmt.Sprintf("0x%02X", value),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleReadAll() {
	mgr := sensors.GetIMUManager()
	registers, err := mgr.ReadAllRegisters()
	if err != nil {
		s.sendError(fmt.Sprintf("read all error: %v", err))
		return
	}

	// Convert to hex string map
	regMap := make(map[string]string)
	for addr, value := range registers {
		regMap[fmt.Sprintf("0x%02X", addr)] = fmt.Sprintf("0x%02X", value)
	}

	resp := RegisterResponse{
		Type:      "register_data",
		Registers: regMap,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleWrite(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	valueStr, _ := rawMsg["value"].(string)

	if addr == "" || valueStr == "" {
		s.sendError("missing addr or value field")
		return
	}

	addrByte, err := parseHexByte(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}
	valueByte, err := parseHexByte(valueStr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid value format: %s", valueStr))
		return
	}

	cfg := config.Get()
	if !isRegisterWritable(addrByte, cfg.RegisterDebugAllowedRanges) {
		s.sendError(fmt.Sprintf("register 0x%02X not in allowed write ranges", addrByte))
		return
	}

	mgr := sensors.GetIMUManager()
	if err := mgr.WriteRegister(addrByte, valueByte); err != nil {
		s.sendError(fmt.Sprintf("write error: %v", err))
		return
	}

	resp := RegisterResponse{
		Type:      "register_data",
		Address:   addr,
		Value:     valueStr,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   "write successful",
	}
	s.Conn.WriteJSON(resp)
}

// handlePageRead reads from the embedded function page address space.
// Expects "addr" (12-bit hex, e.g. "0x1A0") and "length".
func (s *RegisterDebugSession) handlePageRead(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	length, _ := rawMsg["length"].(float64)

	if addr == "" || length <= 0 {
		s.sendError("missing addr or length field")
		return
	}
	if length > 4096 {
		s.sendError("length exceeds page address space")
		return
	}

	pageAddr, err := parseHexUint16(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}

	mgr := sensors.GetIMUManager()
	data, err := mgr.PagedRead(pageAddr, int(length))
	if err != nil {
		s.sendError(fmt.Sprintf("page read error: %v", err))
		return
	}

	resp := RegisterResponse{
		Type:      "page_data",
		Address:   addr,
		Data:      hex.EncodeToString(data),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.Conn.WriteJSON(resp)
}

// handlePageWrite writes into the embedded function page address space.
// Expects "addr" (12-bit hex) and "data" (hex string).
func (s *RegisterDebugSession) handlePageWrite(rawMsg map[string]interface{}) {
	addr, _ := rawMsg["addr"].(string)
	dataStr, _ := rawMsg["data"].(string)

	if addr == "" || dataStr == "" {
		s.sendError("missing addr or data field")
		return
	}

	pageAddr, err := parseHexUint16(addr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}
	data, err := hex.DecodeString(dataStr)
	if err != nil {
		s.sendError(fmt.Sprintf("invalid data hex string: %v", err))
		return
	}

	mgr := sensors.GetIMUManager()
	if err := mgr.PagedWrite(pageAddr, data); err != nil {
		s.sendError(fmt.Sprintf("page write error: %v", err))
		return
	}

	resp := RegisterResponse{
		Type:      "page_data",
		Address:   addr,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   fmt.Sprintf("wrote %d bytes", len(data)),
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleInit() {
	mgr := sensors.GetIMUManager()
	if err := mgr.Reinitialize(); err != nil {
		s.sendError(fmt.Sprintf("reinit error: %v", err))
		return
	}

	resp := RegisterResponse{
		Type:    "status",
		Status:  "initialized",
		Message: "IMU reinitialized successfully",
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleExportConfig() {
	mgr := sensors.GetIMUManager()
	registers, err := mgr.ReadAllRegisters()
	if err != nil {
		s.sendError(fmt.Sprintf("export error: %v", err))
		return
	}

	// Convert to hex string map
	regMap := make(map[string]string)
	for addr, value := range registers {
		regMap[fmt.Sprintf("0x%02X", addr)] = fmt.Sprintf("0x%02X", value)
	}

	configFile := RegisterConfigFile{
		Version:   1,
		Timestamp: time.Now().Format(time.RFC3339),
		Registers: regMap,
	}

	// Send as download
	configJSON, _ := json.Marshal(configFile)
	rawResp := map[string]interface{}{
		"type":     "export_config",
		"message":  "config exported",
		"config":   string(configJSON),
		"filename": fmt.Sprintf("lsm6dso32_%s_registers.json", time.Now().Format("20060102_150405")),
	}
	s.Conn.WriteJSON(rawResp)
}

func (s *RegisterDebugSession) sendRegisterMap() error {
	resp := RegisterResponse{
		Type:        "register_map",
		RegisterMap: sensors.GetLSM6DSO32RegisterMap(),
	}
	return s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) sendError(message string) {
	resp := RegisterResponse{
		Type:    "error",
		Message: message,
	}
	s.Conn.WriteJSON(resp)
}

// HandleIMUData serves the latest IMU sample via REST API
func HandleIMUData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	mgr := sensors.GetIMUManager()
	sample, err := mgr.ReadSample()
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error": %q}`, err.Error()), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(sample)
}

func parseHexByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	return byte(v), err
}

func parseHexUint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	return uint16(v), err
}

// isRegisterWritable checks if a register address is in the allowed write
// ranges. Ranges look like "0x1B-0x1D,0x6B,0x1A-0x20"; an empty string
// allows no writes.
func isRegisterWritable(addr byte, allowedRanges string) bool {
	if allowedRanges == "" {
		return false
	}

	for _, part := range strings.Split(allowedRanges, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, ok := parseRange(part)
		if !ok {
			log.Printf("register_debug: ignoring malformed range %q", part)
			continue
		}
		if addr >= lo && addr <= hi {
			return true
		}
	}
	return false
}

func parseRange(part string) (lo, hi byte, ok bool) {
	bounds := strings.SplitN(part, "-", 2)
	loVal, err := strconv.ParseUint(strings.TrimSpace(bounds[0]), 0, 8)
	if err != nil {
		return 0, 0, false
	}
	lo = byte(loVal)
	hi = lo
	if len(bounds) == 2 {
		hiVal, err := strconv.ParseUint(strings.TrimSpace(bounds[1]), 0, 8)
		if err != nil || byte(hiVal) < lo {
			return 0, 0, false
		}
		hi = byte(hiVal)
	}
	return lo, hi, true
}
