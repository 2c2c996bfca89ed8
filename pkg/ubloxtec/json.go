package ubloxtec

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders an Uncertain as the two-element [value, stdev] tuple
// used by the persisted TEC record format (§6).
func (u Uncertain) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{u.Value, u.Stdev})
}

// MarshalJSON renders a Satellite as its four-character TalkerPRN string
// (§6: "GP" followed by two hex nibbles of PRN, etc.)
func (s Satellite) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MarshalJSON renders a Channel as a single-key {constellation: band}
// object; for Glonass the band value also carries the FDMA slot, since
// Glonass frequencies cannot be recovered from the band name alone (§6).
func (ch Channel) MarshalJSON() ([]byte, error) {
	band := ch.Band.String()
	if ch.Constellation == Glonass {
		band = fmt.Sprintf("%s/%d", band, ch.Slot)
	}
	return json.Marshal(map[string]string{ch.Constellation.String(): band})
}
