package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/n0ubx/ublox-tec/pkg/ubloxtec"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

var (
	flagPort      string
	flagBaud      int
	flagTimeoutMS int
	flagSaveDir   string
	flagDualOnly  bool
	flagListPorts bool
)

func init() {
	cfg := DefaultConfig()
	flag.StringVar(&flagPort, "port", cfg.SerialPort, "serial device (e.g. /dev/ttyUSB0, COM3)")
	flag.IntVar(&flagBaud, "baud", cfg.BaudRate, "baud rate")
	flag.IntVar(&flagTimeoutMS, "timeout", cfg.TimeoutMS, "read timeout in milliseconds")
	flag.StringVar(&flagSaveDir, "save-dir", cfg.SaveDir, "directory to write raw/ and tec/ captures into")
	flag.BoolVar(&flagDualOnly, "dual-only", false, "drop satellites tracked on fewer than two bands before TEC assimilation")
	flag.BoolVar(&flagListPorts, "list", false, "list available serial ports and exit")
	flag.Parse()
}

func main() {
	if flagListPorts {
		listPorts()
		return
	}
	if flagPort == "" {
		logger.Fatal("a -port is required (use -list to see available ports)")
	}

	mode := &serial.Mode{
		BaudRate: flagBaud,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	port, err := serial.Open(flagPort, mode)
	if err != nil {
		logger.WithError(err).Fatal("failed to open serial port")
	}
	defer port.Close()
	if err := port.SetReadTimeout(time.Duration(flagTimeoutMS) * time.Millisecond); err != nil {
		logger.WithError(err).Fatal("failed to set read timeout")
	}

	rawWriter, err := NewStoreCfg(filepath.Join(flagSaveDir, "raw"), StoreRaw)
	if err != nil {
		logger.WithError(err).Fatal("failed to create raw capture directory")
	}
	tecWriter, err := NewStoreCfg(filepath.Join(flagSaveDir, "tec"), StoreJSON)
	if err != nil {
		logger.WithError(err).Fatal("failed to create TEC capture directory")
	}
	defer rawWriter.Close()
	defer tecWriter.Close()
	defer shutdownArchiver()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logger.WithFields(logrus.Fields{"port": flagPort, "baud": flagBaud}).Info("recorder started, press Ctrl+C to stop")

	buf := make([]byte, 4096)
	for {
		select {
		case <-sigCh:
			logger.Info("shutting down")
			return
		default:
		}

		n, err := port.Read(buf)
		if err != nil {
			logger.WithError(err).Error("serial read failed")
			return
		}
		if n == 0 {
			continue
		}
		chunk := buf[:n]
		systime := time.Now()

		if err := rawWriter.Store(systime, chunk); err != nil {
			logger.WithError(err).Warn("failed to store raw capture")
		}

		packet, err := ubloxtec.ParseBinary(chunk)
		if err != nil {
			logger.WithError(err).Debug("no fix yet for this buffer")
			continue
		}

		info := packet.Info
		if flagDualOnly {
			for sat, path := range info.Sats {
				if len(path.Meas) < 2 {
					delete(info.Sats, sat)
				}
			}
		}

		tec := ubloxtec.AssimilateTEC(info)
		if tec == nil {
			logger.Debug("no satellite produced a TEC estimate for this epoch")
			continue
		}

		tecJSON, err := json.Marshal(tec)
		if err != nil {
			logger.WithError(err).Error("failed to marshal TEC record")
			continue
		}
		if err := tecWriter.Store(tec.Time, tecJSON); err != nil {
			logger.WithError(err).Warn("failed to store TEC capture")
		}

		printEpoch(info, tec)
	}
}

// printEpoch renders the per-epoch terminal dashboard: ublox-recorder/src/
// main.rs's banner, ported to plain fmt.Printf the way the teacher renders
// all of its CLI status output.
func printEpoch(info *ubloxtec.GpsInfo, tec *ubloxtec.TecInfo) {
	width := 78
	header := fmt.Sprintf("%s (%.3f, %.3f, %.3f) ",
		info.Time.Format("2006-01-02 15:04:05 MST"), info.LatDeg, info.LonDeg, float64(info.AltMSL)*1e-3)
	fmt.Printf("\n\n%s%s\n", header, strings.Repeat("-", max(0, width-len(header))))

	for _, t := range tec.Tec {
		fmt.Printf("\t%s: %3d AZ %2d EL | ", t.Source.String(), t.Azimuth, t.Elevation)
		if t.PhaseTEC != nil {
			fmt.Printf("Phase: %.3f +/- %.3f | ", t.PhaseTEC.Value, t.PhaseTEC.Stdev)
		} else {
			fmt.Print("Phase: N/A | ")
		}
		if t.RangeTEC != nil {
			fmt.Printf("Range: %.3f +/- %.3f | ", t.RangeTEC.Value, t.RangeTEC.Stdev)
		} else {
			fmt.Print("Range: N/A | ")
		}
		fmt.Println()
	}
	fmt.Println(strings.Repeat("=", width))
}

func listPorts() {
	ports, err := serial.GetPortsList()
	if err != nil {
		logger.WithError(err).Fatal("failed to list serial ports")
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return
	}
	for _, p := range ports {
		fmt.Println(p)
	}
}
