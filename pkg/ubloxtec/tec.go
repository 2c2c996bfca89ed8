package ubloxtec

import (
	"sort"
	"time"
)

const speedOfLight = 299_792_458.0 // m/s

// tecFactor computes K(f0, f1) = (1e-16/40.308) * f0^2*f1^2 / (f0^2 - f1^2),
// in units such that the result is in TECU when frequencies are in Hz.
// f0 must be the higher of the two carrier frequencies.
func tecFactor(f0, f1 float64) float64 {
	const k = 1e-16 / 40.308
	a := f0 * f0
	b := f1 * f1
	return k * a * b / (a - b)
}

// TecData is one satellite's dual-frequency TEC estimate.
type TecData struct {
	Source    Satellite  `json:"source"`
	Azimuth   uint16     `json:"azimuth"`
	Elevation int8       `json:"elevation"`
	Channels  [2]Channel `json:"channels"`
	PhaseTEC  *Uncertain `json:"phase_tec,omitempty"`
	RangeTEC  *Uncertain `json:"range_tec,omitempty"`
	TrkStat   [2]TrkStat `json:"-"`
}

// TecInfo is a timestamped, located collection of per-satellite TEC
// estimates, sorted by satellite identity. Its JSON encoding is the
// persisted TEC record format of §6.
type TecInfo struct {
	Time   time.Time `json:"time"`
	LatDeg float64   `json:"lat_deg"`
	LonDeg float64   `json:"lon_deg"`
	AltMSL float32   `json:"alt_msl"`
	Tec    []TecData `json:"tec"`
}

// AssimilateTEC reduces a GpsInfo's per-satellite carrier measurements to
// slant TEC estimates (entry point §6 TecInfo::from_gps). Only satellites
// with at least two tracked channels (the sort in DecodeRawx already
// orders them by frequency descending) contribute; a satellite missing
// both phase and range TEC contributes nothing. Returns nil if no
// satellite produced a TEC estimate.
func AssimilateTEC(g *GpsInfo) *TecInfo {
	var tec []TecData

	for sat, path := range g.Sats {
		if len(path.Meas) < 2 {
			continue
		}
		m0, m1 := path.Meas[0], path.Meas[1]
		f0, f1 := m0.Channel.Freq(), m1.Channel.Freq()
		fac := Exact(tecFactor(f0, f1))

		var phaseTEC *Uncertain
		if m0.CarrierPhase != nil && m1.CarrierPhase != nil {
			t := m0.CarrierPhase.Mul(Exact(speedOfLight / f0)).
				Sub(m1.CarrierPhase.Mul(Exact(speedOfLight / f1))).
				Mul(fac)
			phaseTEC = &t
		}

		var rangeTEC *Uncertain
		if m0.PseudoRange != nil && m1.PseudoRange != nil {
			t := m1.PseudoRange.Sub(*m0.PseudoRange).Mul(fac)
			rangeTEC = &t
		}

		if phaseTEC == nil && rangeTEC == nil {
			continue
		}

		tec = append(tec, TecData{
			Source:    sat,
			Azimuth:   path.Azimuth,
			Elevation: path.Elevation,
			Channels:  [2]Channel{m0.Channel, m1.Channel},
			PhaseTEC:  phaseTEC,
			RangeTEC:  rangeTEC,
			TrkStat:   [2]TrkStat{m0.TrkStat, m1.TrkStat},
		})
	}

	if len(tec) == 0 {
		return nil
	}
	sort.Slice(tec, func(i, j int) bool {
		return tec[i].Source.Less(tec[j].Source)
	})
	return &TecInfo{
		Time:   g.Time,
		LatDeg: g.LatDeg,
		LonDeg: g.LonDeg,
		AltMSL: g.AltMSL,
		Tec:    tec,
	}
}
