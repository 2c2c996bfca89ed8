package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// RecorderConfig is the field recorder's persisted configuration, mirroring
// ublox-recorder/src/config.rs's RecorderCfg.
type RecorderConfig struct {
	SerialPort string `json:"serial_port"`
	BaudRate   int    `json:"baud_rate"`
	TimeoutMS  int    `json:"timeout_ms"`
	SaveDir    string `json:"save_dir"`
	DualOnly   bool   `json:"dual_only"`
}

// DefaultConfig returns the recorder's built-in defaults.
func DefaultConfig() RecorderConfig {
	return RecorderConfig{
		BaudRate:  115200,
		TimeoutMS: 100,
		SaveDir:   ".",
	}
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".", nil
	}
	return filepath.Join(dir, "ublox-tec-recorder"), nil
}

// StoreDefault persists c to the platform config directory as config.json.
func (c RecorderConfig) StoreDefault() error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644)
}

// LoadDefaultConfig loads a RecorderConfig from the platform config
// directory, falling back to DefaultConfig if none has been stored yet.
func LoadDefaultConfig() (RecorderConfig, error) {
	dir, err := configDir()
	if err != nil {
		return RecorderConfig{}, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return RecorderConfig{}, err
	}
	var cfg RecorderConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RecorderConfig{}, err
	}
	return cfg, nil
}
