package ubloxtec

import (
	"io"

	"github.com/sirupsen/logrus"
)

// GpsPacket is the result of ParseBinary: the fused GpsInfo plus the raw
// NMEA-only PositionFix it was built from, kept alongside so a caller that
// needs the unfused sentence data (for re-serialization, say) does not have
// to re-parse the buffer.
type GpsPacket struct {
	Info *GpsInfo
	Fix  *PositionFix
}

// ParseMessages is the combined NMEA+UBX entry point (§6 parse_messages): it
// splits buf for RXM-RAWX frames, parses buf's NMEA sentences, and fuses
// the two. At least one validated ZDA and GGA sentence must be present;
// RXM-RAWX frames are optional, and their absence still yields a GpsInfo
// with empty per-satellite measurement data.
func ParseMessages(buf []byte) (*GpsInfo, error) {
	packet, err := ParseBinary(buf)
	if err != nil {
		return nil, err
	}
	return packet.Info, nil
}

// ParseBinary is parse_messages's sibling that also preserves the raw NMEA
// PositionFix (§6 parse_binary).
func ParseBinary(buf []byte) (*GpsPacket, error) {
	frames, residual := SplitFrames(buf)

	fix, err := ParseNMEA(residual)
	if err != nil {
		return nil, err
	}

	var rawx *RawxFrame
	for _, f := range frames {
		if f.Class != classRxm || f.ID != idRxmRawx {
			continue
		}
		decoded, err := DecodeRawx(f)
		if err != nil {
			logger.WithFields(logrus.Fields{"class": f.Class, "id": f.ID}).Warn("parse_binary: dropping malformed RXM-RAWX frame")
			continue
		}
		rawx = decoded
	}

	return &GpsPacket{Info: Fuse(fix, rawx), Fix: fix}, nil
}

// ParseDatafile batch-decodes a persisted raw capture (§6 parse_datafile):
// reader is split on delim (DefaultDelimiter if nil) into per-buffer
// records, each parsed with ParseMessages. A record that fails to parse
// (no fix yet acquired, malformed sentence) is logged and skipped; the
// batch otherwise continues to the next record.
func ParseDatafile(r io.Reader, delim []byte) ([]*GpsInfo, error) {
	ru := NewReadUntil(r, delim)
	var out []*GpsInfo
	for {
		rec, err := ru.ReadRecord()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		info, err := ParseMessages(rec)
		if err != nil {
			logger.WithError(err).Warn("parse_datafile: skipping unparseable record")
			continue
		}
		out = append(out, info)
	}
}
