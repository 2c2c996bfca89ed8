package ubloxtec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoChannelGpsInfo(cp0, cp1 float64, sigma0 float64) *GpsInfo {
	ch0 := Channel{Gps, BandL1CA, 0} // 1575.42 MHz
	ch1 := Channel{Gps, BandL2CM, 0} // 1227.60 MHz
	m0 := CarrierMeas{Channel: ch0, CarrierPhase: &Uncertain{Value: cp0, Stdev: sigma0}}
	m1 := CarrierMeas{Channel: ch1, CarrierPhase: &Uncertain{Value: cp1, Stdev: 0}}
	return &GpsInfo{
		Sats: map[Satellite]SatPathInfo{
			{Gps, 7}: {Elevation: 45, Azimuth: 90, Meas: []CarrierMeas{m0, m1}},
		},
	}
}

func TestAssimilateTECPhaseTECExact(t *testing.T) {
	const cp0, cp1 = 1.0e8, 1.5e8
	g := twoChannelGpsInfo(cp0, cp1, 0)

	info := AssimilateTEC(g)
	require.NotNil(t, info)
	require.Len(t, info.Tec, 1)

	f0, f1 := 1575.42e6, 1227.60e6
	k := tecFactor(f0, f1)
	want := (cp0*(speedOfLight/f0) - cp1*(speedOfLight/f1)) * k

	got := info.Tec[0].PhaseTEC
	require.NotNil(t, got)
	assert.InDelta(t, want, got.Value, math.Abs(want)*1e-9)
	assert.InDelta(t, 0, got.Stdev, 1e-9)
	assert.Nil(t, info.Tec[0].RangeTEC)
}

func TestAssimilateTECStdevInjection(t *testing.T) {
	const cp0, cp1, sigma0 = 1.0e8, 1.5e8, 0.01
	g := twoChannelGpsInfo(cp0, cp1, sigma0)

	info := AssimilateTEC(g)
	require.NotNil(t, info)

	f0 := 1575.42e6
	f1 := 1227.60e6
	k := tecFactor(f0, f1)
	wantStdev := math.Abs(speedOfLight/f0*k) * sigma0

	got := info.Tec[0].PhaseTEC
	require.NotNil(t, got)
	assert.InDelta(t, wantStdev, got.Stdev, wantStdev*1e-6)
}

func TestAssimilateTECSingleChannelContributesNothing(t *testing.T) {
	g := &GpsInfo{
		Sats: map[Satellite]SatPathInfo{
			{Gps, 1}: {Meas: []CarrierMeas{{Channel: Channel{Gps, BandL1CA, 0}}}},
		},
	}
	assert.Nil(t, AssimilateTEC(g))
}

func TestAssimilateTECMissingPseudoRangeStillEmitsPhase(t *testing.T) {
	g := twoChannelGpsInfo(1.0e8, 1.5e8, 0)
	info := AssimilateTEC(g)
	require.NotNil(t, info)
	assert.NotNil(t, info.Tec[0].PhaseTEC)
	assert.Nil(t, info.Tec[0].RangeTEC)
}

func TestAssimilateTECEmptyWhenNoSatelliteQualifies(t *testing.T) {
	assert.Nil(t, AssimilateTEC(&GpsInfo{Sats: map[Satellite]SatPathInfo{}}))
}
