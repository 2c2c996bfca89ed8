package ubloxtec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawxFrameBytes() []byte {
	const prAndCP = 0x03
	rec := encodeRawxRecord(2.1e7, 1.1e8, 500.0, gnssIDGps, 3, 0, 0, 1000, 40, 3, 10, 2, prAndCP)
	payload := rawxPayload(2300, 100.0, 18, 0x01, 0x01, [][]byte{rec})
	return buildFrame(classRxm, idRxmRawx, payload)
}

func TestParseBinaryFusesNmeaAndRawx(t *testing.T) {
	buf := append([]byte(sampleNMEABlock), rawxFrameBytes()...)

	packet, err := ParseBinary(buf)
	require.NoError(t, err)
	require.NotNil(t, packet.Fix)
	require.NotNil(t, packet.Info)

	assert.InDelta(t, 42.6493903, packet.Info.LatDeg, 1e-6)

	sat := Satellite{Gps, 3}
	path, ok := packet.Info.Sats[sat]
	require.True(t, ok)
	assert.Equal(t, int8(26), path.Elevation) // carried from the GSV sky view
	require.Len(t, path.Meas, 1)
	assert.Equal(t, BandL1CA, path.Meas[0].Channel.Band)
}

func TestParseMessagesWithoutRawxStillFuses(t *testing.T) {
	info, err := ParseMessages([]byte(sampleNMEABlock))
	require.NoError(t, err)
	assert.Empty(t, info.Sats[Satellite{Gps, 3}].Meas)
}

func TestParseMessagesPropagatesNoFix(t *testing.T) {
	_, err := ParseMessages(rawxFrameBytes())
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestParseDatafileBatchDecodesRecords(t *testing.T) {
	rec1 := []byte(sampleNMEABlock)
	rec2 := append([]byte(sampleNMEABlock), rawxFrameBytes()...)

	var stream bytes.Buffer
	stream.Write(rec1)
	stream.Write(DefaultDelimiter)
	stream.Write(rec2)

	infos, err := ParseDatafile(&stream, nil)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Empty(t, infos[0].Sats[Satellite{Gps, 3}].Meas)
	assert.Len(t, infos[1].Sats[Satellite{Gps, 3}].Meas, 1)
}

func TestParseDatafileSkipsUnparseableRecords(t *testing.T) {
	var stream bytes.Buffer
	stream.Write([]byte("garbage, not nmea at all"))
	stream.Write(DefaultDelimiter)
	stream.Write([]byte(sampleNMEABlock))

	infos, err := ParseDatafile(&stream, nil)
	require.NoError(t, err)
	require.Len(t, infos, 1)
}
