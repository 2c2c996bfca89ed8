package ubloxtec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNMEABlock = "$GNRMC,221515.00,A,4238.96342,N,07118.97943,W,0.046,,031024,,,D,V*0D\r\n" +
	"$GNVTG,,T,,M,0.046,N,0.086,K,D*34\r\n" +
	"$GNGGA,221515.00,4238.96342,N,07118.97943,W,2,12,1.04,36.7,M,-33.0,M,,0131*41\r\n" +
	"$GNGSA,A,3,03,27,46,44,31,26,04,16,,,,,1.83,1.04,1.51,1*0A\r\n" +
	"$GNGSA,A,3,68,78,79,67,,,,,,,,,1.83,1.04,1.51,2*06\r\n" +
	"$GNGSA,A,3,21,29,19,,,,,,,,,,1.83,1.04,1.51,3*09\r\n" +
	"$GNGSA,A,3,25,23,41,32,,,,,,,,,1.83,1.04,1.51,4*0C\r\n" +
	"$GNGSA,A,3,,,,,,,,,,,,,1.83,1.04,1.51,5*0F\r\n" +
	"$GPGSV,3,1,10,03,26,248,42,04,48,306,17,16,68,221,41,26,72,052,18,1*61\r\n" +
	"$GPGSV,3,2,10,27,18,171,36,29,16,041,11,31,62,067,22,32,00,145,12,1*66\r\n" +
	"$GPGSV,3,3,10,44,23,237,44,46,15,247,33,1*65\r\n" +
	"$GPGSV,1,1,03,03,26,248,27,04,48,306,16,27,18,171,36,6*58\r\n" +
	"$GPGSV,1,1,02,09,16,316,,28,30,090,,0*6D\r\n" +
	"$GLGSV,2,1,05,67,20,174,38,68,63,216,41,78,65,004,21,79,41,266,37,1*79\r\n" +
	"$GLGSV,2,2,05,86,05,011,20,1*44\r\n" +
	"$GLGSV,2,1,05,67,20,174,34,68,63,216,33,78,65,004,13,79,41,266,22,3*77\r\n" +
	"$GLGSV,2,2,05,86,05,011,24,3*42\r\n" +
	"$GLGSV,1,1,04,69,45,316,,77,15,054,,87,17,056,,88,09,111,,0*70\r\n" +
	"$GAGSV,1,1,02,19,74,181,28,29,30,147,35,2*71\r\n" +
	"$GAGSV,1,1,03,19,74,181,35,21,78,057,09,29,30,147,20,7*4A\r\n" +
	"$GAGSV,1,1,03,04,39,310,,06,14,315,,27,24,050,,0*49\r\n" +
	"$GBGSV,2,1,07,23,56,275,33,25,62,050,18,32,43,291,27,33,07,172,35,1*73\r\n" +
	"$GBGSV,2,2,07,37,07,259,29,41,43,210,44,43,09,146,27,1*4E\r\n" +
	"$GBGSV,1,1,01,41,43,210,08,B*3D\r\n" +
	"$GBGSV,1,1,04,20,03,330,,24,11,071,,34,22,102,,44,13,049,,0*79\r\n" +
	"$GQGSV,1,1,00,0*64\r\n" +
	"$GNGLL,4238.96342,N,07118.97943,W,221515.00,A,D*68\r\n" +
	"$GNZDA,221515.00,03,10,2024,00,00*7E"

func TestParseNMEASampleBlock(t *testing.T) {
	fix, err := ParseNMEA([]byte(sampleNMEABlock))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.October, 3, 22, 15, 15, 0, time.UTC), fix.Time)
	assert.InDelta(t, 42.6493903, fix.LatDeg, 1e-6)
	assert.InDelta(t, -71.31632383, fix.LonDeg, 1e-6)
	assert.InDelta(t, 36.7, float64(fix.AltMSL), 1e-6)
	assert.Equal(t, 2, fix.Quality)
	assert.InDelta(t, 1.83, float64(fix.PDOP), 1e-6)
	assert.InDelta(t, 1.04, float64(fix.HDOP), 1e-6)
	assert.InDelta(t, 1.51, float64(fix.VDOP), 1e-6)
	assert.GreaterOrEqual(t, len(fix.SatViews), 30)

	view, ok := fix.SatViews[Satellite{Gps, 3}]
	require.True(t, ok)
	assert.Equal(t, int8(26), view.Elevation)
	assert.Equal(t, uint16(248), view.Azimuth)
}

func TestParseNMEAMissingZDAIsNoFix(t *testing.T) {
	_, err := ParseNMEA([]byte("$GNGGA,221515.00,4238.96342,N,07118.97943,W,2,12,1.04,36.7,M,-33.0,M,,0131*41"))
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestParseNMEAMissingGGAIsPatternNotFound(t *testing.T) {
	_, err := ParseNMEA([]byte("$GNZDA,221515.00,03,10,2024,00,00*7E"))
	assert.ErrorIs(t, err, ErrPatternNotFound)
}

func TestParseNMEARejectsBadChecksum(t *testing.T) {
	fix, err := ParseNMEA([]byte("$GNZDA,221515.00,03,10,2024,00,00*00"))
	assert.ErrorIs(t, err, ErrNoFix)
	assert.Nil(t, fix)
}
