package ubloxtec

import "fmt"

// Constellation identifies one of the six GNSS constellations this package
// recognizes.
type Constellation uint8

const (
	Gps Constellation = iota
	Sbas
	Galileo
	Beidou
	Qzss
	Glonass
)

func (c Constellation) String() string {
	switch c {
	case Gps:
		return "GPS"
	case Sbas:
		return "SBAS"
	case Galileo:
		return "Galileo"
	case Beidou:
		return "Beidou"
	case Qzss:
		return "QZSS"
	case Glonass:
		return "Glonass"
	default:
		return fmt.Sprintf("Constellation(%d)", uint8(c))
	}
}

// talkerPrefix is the two-letter code used to serialize a Satellite (§6 of
// the persisted TEC record format) and, for the constellations that report
// per-satellite sky geometry in GSV sentences, to recognize it on the way in.
var talkerPrefix = map[Constellation]string{
	Gps:     "GP",
	Sbas:    "GN",
	Galileo: "GA",
	Beidou:  "GB",
	Qzss:    "GQ",
	Glonass: "GL",
}

var prefixTalker = map[string]Constellation{
	"GP": Gps,
	"GN": Sbas,
	"GA": Galileo,
	"GB": Beidou,
	"GQ": Qzss,
	"GL": Glonass,
}

// Satellite is a normalized (constellation, constellation-local PRN) pair.
// The PRN carried here is always the constellation-local number: Glonass's
// NMEA-reported SVID is de-biased by 64 before it reaches this type.
type Satellite struct {
	Constellation Constellation
	PRN           uint8
}

// String renders the four-character TalkerPRN encoding used by the
// persisted TEC record format: a two-letter talker code followed by two hex
// nibbles of PRN.
func (s Satellite) String() string {
	return fmt.Sprintf("%s%02X", talkerPrefix[s.Constellation], s.PRN)
}

// Less gives Satellite a fixed total order: constellation first, then PRN.
// Used to produce the deterministic TecInfo.Tec ordering required by §4.G.
func (s Satellite) Less(other Satellite) bool {
	if s.Constellation != other.Constellation {
		return s.Constellation < other.Constellation
	}
	return s.PRN < other.PRN
}

// gnssId values as reported in UBX messages (u-blox interface spec).
const (
	gnssIDGps     = 0
	gnssIDSbas    = 1
	gnssIDGalileo = 2
	gnssIDBeidou  = 3
	gnssIDQzss    = 5
	gnssIDGlonass = 6
)

// SatelliteFromUBX decodes the (gnssId, svId) pair reported in an
// RXM-RAWX measurement record into a normalized Satellite.
func SatelliteFromUBX(gnssID, svID uint8) (Satellite, error) {
	switch gnssID {
	case gnssIDGps:
		return Satellite{Gps, svID}, nil
	case gnssIDSbas:
		return Satellite{Sbas, svID}, nil
	case gnssIDGalileo:
		return Satellite{Galileo, svID}, nil
	case gnssIDBeidou:
		return Satellite{Beidou, svID}, nil
	case gnssIDQzss:
		return Satellite{Qzss, svID}, nil
	case gnssIDGlonass:
		return Satellite{Glonass, svID}, nil
	default:
		return Satellite{}, fmt.Errorf("%w: unknown gnssId %d", ErrTaxonomy, gnssID)
	}
}

// SatelliteFromNMEA decodes a two-letter NMEA talker prefix and a
// satellite-in-view PRN into a normalized Satellite. Glonass's NMEA SVID is
// biased by 64 and is de-biased here.
func SatelliteFromNMEA(talker string, prn uint8) (Satellite, error) {
	c, ok := prefixTalker[talker]
	if !ok {
		return Satellite{}, fmt.Errorf("%w: unknown NMEA talker %q", ErrTaxonomy, talker)
	}
	if c == Glonass {
		prn -= 64
	}
	return Satellite{c, prn}, nil
}

// Band identifies a signal band within a constellation. For Glonass, Slot
// additionally carries the FDMA channel number k in [-7, 6].
type Band uint8

const (
	// GPS / QZSS / SBAS bands
	BandL1CA Band = iota
	BandL1S       // QZSS only
	BandL1CLM
	BandL2CL
	BandL2CM
	BandL5
	// Galileo bands
	BandE1B
	BandE1C
	BandE5aI
	BandE5aQ
	BandE5bI
	BandE5bQ
	// Beidou bands
	BandB1ID1
	BandB1ID2
	BandB2ID1
	BandB2ID2
	BandB2A
	// Glonass bands (frequency depends on Slot)
	BandL1OF
	BandL2OF
)

func (b Band) String() string {
	switch b {
	case BandL1CA:
		return "L1CA"
	case BandL1S:
		return "L1S"
	case BandL1CLM:
		return "L1C"
	case BandL2CL:
		return "L2CL"
	case BandL2CM:
		return "L2CM"
	case BandL5:
		return "L5"
	case BandE1B:
		return "E1B"
	case BandE1C:
		return "E1C"
	case BandE5aI:
		return "E5aI"
	case BandE5aQ:
		return "E5aQ"
	case BandE5bI:
		return "E5bI"
	case BandE5bQ:
		return "E5bQ"
	case BandB1ID1:
		return "B1I_D1"
	case BandB1ID2:
		return "B1I_D2"
	case BandB2ID1:
		return "B2I_D1"
	case BandB2ID2:
		return "B2I_D2"
	case BandB2A:
		return "B2A"
	case BandL1OF:
		return "L1OF"
	case BandL2OF:
		return "L2OF"
	default:
		return fmt.Sprintf("Band(%d)", uint8(b))
	}
}

// Channel is a (constellation, band) pair with, for Glonass, the FDMA slot
// needed to compute its carrier frequency.
type Channel struct {
	Constellation Constellation
	Band          Band
	Slot          int8 // meaningful only for Glonass
}

// Freq returns the channel's carrier frequency in Hz. Glonass frequencies
// depend on Slot; every other constellation's bands carry a fixed
// frequency.
func (ch Channel) Freq() float64 {
	switch ch.Constellation {
	case Gps, Sbas:
		switch ch.Band {
		case BandL1CA:
			return 1575.42e6
		case BandL2CL, BandL2CM:
			return 1227.60e6
		case BandL5:
			return 1176.45e6
		}
	case Galileo:
		switch ch.Band {
		case BandE1B, BandE1C:
			return 1575.42e6
		case BandE5aI, BandE5aQ:
			return 1176.45e6
		case BandE5bI, BandE5bQ:
			return 1207.14e6
		}
	case Beidou:
		switch ch.Band {
		case BandB1ID1, BandB1ID2:
			return 1561.098e6
		case BandB2ID1, BandB2ID2:
			return 1207.14e6
		case BandB2A:
			return 1176.45e6
		}
	case Qzss:
		switch ch.Band {
		case BandL1CA, BandL1S:
			return 1575.42e6
		case BandL2CM, BandL2CL:
			return 1227.60e6
		case BandL5:
			return 1176.45e6
		}
	case Glonass:
		k := float64(ch.Slot)
		switch ch.Band {
		case BandL1OF:
			return 1602.0e6 + 562.5e3*k
		case BandL2OF:
			return 1246.0e6 + 437.5e3*k
		}
	}
	return 0
}

// ChannelFromUBX decodes a (constellation, sigId, freqSlot) triple into a
// Channel. freqSlot is only meaningful for Glonass and is ignored
// otherwise. An unrecognized sigId for the constellation is a hard
// TaxonomyError (§3: "unrecognized sigIds are a hard error").
func ChannelFromUBX(c Constellation, sigID uint8, freqSlot int8) (Channel, error) {
	switch c {
	case Gps, Sbas:
		switch sigID {
		case 0:
			return Channel{c, BandL1CA, 0}, nil
		case 3:
			return Channel{c, BandL2CL, 0}, nil
		case 4:
			return Channel{c, BandL2CM, 0}, nil
		case 6, 7:
			return Channel{c, BandL5, 0}, nil
		}
	case Galileo:
		switch sigID {
		case 0:
			return Channel{c, BandE1C, 0}, nil
		case 1:
			return Channel{c, BandE1B, 0}, nil
		case 3:
			return Channel{c, BandE5aI, 0}, nil
		case 4:
			return Channel{c, BandE5aQ, 0}, nil
		case 5:
			return Channel{c, BandE5bI, 0}, nil
		case 6:
			return Channel{c, BandE5bQ, 0}, nil
		}
	case Beidou:
		switch sigID {
		case 0:
			return Channel{c, BandB1ID1, 0}, nil
		case 1:
			return Channel{c, BandB1ID2, 0}, nil
		case 2:
			return Channel{c, BandB2ID1, 0}, nil
		case 3:
			return Channel{c, BandB2ID2, 0}, nil
		case 7:
			return Channel{c, BandB2A, 0}, nil
		}
	case Qzss:
		switch sigID {
		case 0:
			return Channel{c, BandL1CA, 0}, nil
		case 1:
			return Channel{c, BandL1S, 0}, nil
		case 4:
			return Channel{c, BandL2CM, 0}, nil
		case 5:
			return Channel{c, BandL2CL, 0}, nil
		case 7, 8:
			return Channel{c, BandL5, 0}, nil
		}
	case Glonass:
		switch sigID {
		case 0:
			return Channel{c, BandL1OF, freqSlot}, nil
		case 2:
			return Channel{c, BandL2OF, freqSlot}, nil
		}
	}
	return Channel{}, fmt.Errorf("%w: unrecognized sigId %d for %s", ErrTaxonomy, sigID, c)
}
