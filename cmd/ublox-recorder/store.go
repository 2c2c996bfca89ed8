package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/n0ubx/ublox-tec/pkg/ubloxtec"
)

// StoreKind selects a StoreCfg's file extension and inter-record delimiter.
type StoreKind int

const (
	StoreRaw StoreKind = iota
	StoreJSON
)

func (k StoreKind) ext() string {
	if k == StoreJSON {
		return "json"
	}
	return "bin"
}

func (k StoreKind) delimiter() []byte {
	if k == StoreJSON {
		return []byte("\n")
	}
	return ubloxtec.DefaultDelimiter
}

// StoreCfg is an hour-bucketed, day-rolling file writer: ublox-recorder/src/
// store.rs's StoreCfg, ported to Go. Each call to Store appends one
// delimited record to the file for tstamp's hour, rolling to a new file on
// the hour and a new directory on the day. When the day rolls over, the
// previous day's directory is handed to the background archiver.
type StoreCfg struct {
	rootDir    string
	kind       StoreKind
	currentDir string
	lastDate   string
	lastHour   string
	writer     *os.File
}

// NewStoreCfg creates rootDir if needed and returns a StoreCfg that writes
// kind-formatted records beneath it.
func NewStoreCfg(rootDir string, kind StoreKind) (*StoreCfg, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, err
	}
	return &StoreCfg{rootDir: rootDir, kind: kind}, nil
}

// Store appends data, followed by the kind's delimiter, to the file for
// tstamp's hour bucket.
func (s *StoreCfg) Store(tstamp time.Time, data []byte) error {
	date := tstamp.UTC().Format("20060102")
	hour := tstamp.UTC().Format("15")

	if s.lastDate != date {
		if s.lastDate != "" {
			if s.writer != nil {
				s.writer.Close()
				s.writer = nil
			}
			enqueueArchive(s.currentDir)
		}
		s.currentDir = filepath.Join(s.rootDir, date)
		if err := os.MkdirAll(s.currentDir, 0o755); err != nil {
			return err
		}
		s.lastDate = date
		s.lastHour = ""
	}

	if s.lastHour != hour {
		if s.writer != nil {
			s.writer.Close()
		}
		filename := filepath.Join(s.currentDir, fmt.Sprintf("%s%s0000.%s", date, hour, s.kind.ext()))
		f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		s.writer = f
		s.lastHour = hour
	}

	if s.writer == nil {
		return fmt.Errorf("store: no file writer")
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	if _, err := s.writer.Write(s.kind.delimiter()); err != nil {
		return err
	}
	return s.writer.Sync()
}

// Close closes the current file, if any.
func (s *StoreCfg) Close() error {
	if s.writer == nil {
		return nil
	}
	return s.writer.Close()
}
