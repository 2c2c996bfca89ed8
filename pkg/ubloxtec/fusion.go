package ubloxtec

import (
	"fmt"
	"time"
)

// SatPathInfo is one satellite's sky geometry plus whatever RXM-RAWX
// measurements were recovered for it.
type SatPathInfo struct {
	Elevation int8
	Azimuth   uint16
	Meas      []CarrierMeas
}

// GpsInfo fuses a PositionFix with a RawxFrame, keyed by satellite. It
// carries every PositionFix field except SatViews, plus the merged
// per-satellite view; sky geometry of satellites absent from the RawxFrame
// is not kept.
type GpsInfo struct {
	Time        time.Time
	LatDeg      float64
	LonDeg      float64
	AltMSL      float32
	TrueHeading float32
	MagHeading  float32
	GroundSpeed float32
	Quality     int
	HDOP        float32
	VDOP        float32
	PDOP        float32
	Sats        map[Satellite]SatPathInfo
}

// Fuse joins a PositionFix with an optional RawxFrame. The fused map is
// keyed by the RAWX frame's satellites only — the NMEA sky view is used
// purely as an elevation/azimuth lookup for them, never as a source of
// extra keys (spec §3: "populated from a RawxFrame where present ...
// default to (-1, 0) when the satellite is in the RXM but not in the NMEA
// GSV set"). A nil or satellite-less RawxFrame yields an empty Sats map.
func Fuse(fix *PositionFix, rawx *RawxFrame) *GpsInfo {
	info := &GpsInfo{
		Time:        fix.Time,
		LatDeg:      fix.LatDeg,
		LonDeg:      fix.LonDeg,
		AltMSL:      fix.AltMSL,
		TrueHeading: fix.TrueHeading,
		MagHeading:  fix.MagHeading,
		GroundSpeed: fix.GroundSpeed,
		Quality:     fix.Quality,
		HDOP:        fix.HDOP,
		VDOP:        fix.VDOP,
		PDOP:        fix.PDOP,
		Sats:        make(map[Satellite]SatPathInfo),
	}

	if rawx == nil {
		return info
	}
	for sat, meas := range rawx.Meas {
		path := SatPathInfo{Elevation: -1, Azimuth: 0, Meas: meas}
		if view, ok := fix.SatViews[sat]; ok {
			path.Elevation, path.Azimuth = view.Elevation, view.Azimuth
		}
		info.Sats[sat] = path
	}
	return info
}

// Summary renders a one-line, print-friendly status string — the Go
// equivalent of the reference recorder's per-epoch dashboard banner
// (ublox-recorder/src/main.rs). cmd/ublox-recorder does not call it; it
// prints its own banner in printEpoch.
func (g *GpsInfo) Summary() string {
	return fmt.Sprintf("%s  %+10.6f,%+11.6f  alt=%6.1fm  q=%d  sats=%d  hdop=%.2f",
		g.Time.Format(time.RFC3339), g.LatDeg, g.LonDeg, g.AltMSL, g.Quality, len(g.Sats), g.HDOP)
}
