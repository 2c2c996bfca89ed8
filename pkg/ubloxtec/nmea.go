package ubloxtec

import (
	"strconv"
	"strings"
	"time"
)

// SatView is one satellite's sky geometry as reported by a GSV sentence.
type SatView struct {
	Elevation int8   // degrees
	Azimuth   uint16 // degrees
}

// PositionFix is the navigation fix produced by the NMEA sentence parser;
// it is the interface contract §4.E of the core relies on without
// mandating how it was produced.
type PositionFix struct {
	Time        time.Time
	LatDeg      float64
	LonDeg      float64
	AltMSL      float32 // meters, above mean sea level
	TrueHeading float32
	MagHeading  float32
	GroundSpeed float32
	Quality     int
	HDOP        float32
	VDOP        float32
	PDOP        float32
	SatViews    map[Satellite]SatView
}

// rawSentence is one checksum-validated NMEA sentence with its talker and
// three-letter kind split out.
type rawSentence struct {
	talker string // e.g. "GP", "GN", "GL"
	kind   string // e.g. "GGA", "ZDA", "GSV"
	fields []string
}

// splitSentences scans buf for `$TALKERKIND,...*HH` sentences, validates
// each by the XOR checksum over the payload between `$` and `*`, and
// returns the validated ones grouped by kind. Malformed or checksum-failed
// sentences are silently skipped, matching §4.E's "validates sentences by
// the *HH XOR checksum" contract — a sentence that doesn't validate simply
// isn't a candidate for ZDA/GGA/etc.
func splitSentences(buf []byte) map[string][]rawSentence {
	out := make(map[string][]rawSentence)
	s := string(buf)
	for {
		dollar := strings.IndexByte(s, '$')
		if dollar < 0 {
			break
		}
		s = s[dollar:]
		star := strings.IndexByte(s, '*')
		if star < 0 || star < 6 {
			s = s[1:]
			continue
		}
		payload := s[1:star] // between $ and *, checksum covers this
		if len(s) < star+3 {
			s = s[1:]
			continue
		}
		cksumHex := s[star+1 : star+3]
		want, err := strconv.ParseUint(cksumHex, 16, 8)
		if err != nil {
			s = s[1:]
			continue
		}
		var got byte
		for i := 0; i < len(payload); i++ {
			got ^= payload[i]
		}
		s = s[1:]
		if got != byte(want) {
			continue
		}
		if len(payload) < 5 {
			continue
		}
		header := payload[:5]
		// payload[5:] starts with the comma following the header; split and
		// drop the resulting leading empty field.
		fields := strings.Split(payload[5:], ",")
		if len(fields) > 0 && fields[0] == "" {
			fields = fields[1:]
		}
		rs := rawSentence{talker: header[:2], kind: header[2:5], fields: fields}
		out[rs.kind] = append(out[rs.kind], rs)
	}
	return out
}

// ParseNMEA parses a buffer of NMEA sentences into a PositionFix (entry
// point §6 parse_nmea). At least one ZDA and one GGA must validate.
func ParseNMEA(buf []byte) (*PositionFix, error) {
	sentences := splitSentences(buf)

	zda, ok := sentences["ZDA"]
	if !ok || len(zda) == 0 {
		return nil, newNoFix("no validated ZDA sentence")
	}
	gga, ok := sentences["GGA"]
	if !ok || len(gga) == 0 {
		return nil, newPatternNotFound("no validated GGA sentence")
	}

	t, err := parseZDA(zda[0].fields)
	if err != nil {
		return nil, err
	}
	fix, err := parseGGA(gga[0].fields)
	if err != nil {
		return nil, err
	}
	fix.Time = t
	fix.SatViews = make(map[Satellite]SatView)

	if vtg, ok := sentences["VTG"]; ok && len(vtg) > 0 {
		applyVTG(fix, vtg[0].fields)
	}
	if gsa, ok := sentences["GSA"]; ok && len(gsa) > 0 {
		applyGSA(fix, gsa[0].fields)
	}
	if gsv, ok := sentences["GSV"]; ok {
		for _, s := range gsv {
			applyGSV(fix, s)
		}
	}

	return fix, nil
}

func parseZDA(fields []string) (time.Time, error) {
	if len(fields) < 4 {
		return time.Time{}, newPatternNotFound("ZDA: not enough fields")
	}
	hhmmss := fields[0]
	if len(hhmmss) < 6 {
		return time.Time{}, newPatternNotFound("ZDA: malformed time field")
	}
	hour, err := strconv.Atoi(hhmmss[0:2])
	if err != nil {
		return time.Time{}, newParseError("ZDA hour", err)
	}
	minute, err := strconv.Atoi(hhmmss[2:4])
	if err != nil {
		return time.Time{}, newParseError("ZDA minute", err)
	}
	secFloat, err := strconv.ParseFloat(hhmmss[4:], 64)
	if err != nil {
		return time.Time{}, newParseError("ZDA second", err)
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, newParseError("ZDA day", err)
	}
	month, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, newParseError("ZDA month", err)
	}
	year, err := strconv.Atoi(fields[3])
	if err != nil {
		return time.Time{}, newParseError("ZDA year", err)
	}
	sec := int(secFloat)
	nsec := int((secFloat - float64(sec)) * 1e9)
	return time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.UTC), nil
}

func parseGGA(fields []string) (*PositionFix, error) {
	if len(fields) < 9 {
		return nil, newPatternNotFound("GGA: not enough fields")
	}
	lat, err := parseLat(fields[1])
	if err != nil {
		return nil, err
	}
	if fields[2] == "S" {
		lat = -lat
	}
	lon, err := parseLon(fields[3])
	if err != nil {
		return nil, err
	}
	if fields[4] == "W" {
		lon = -lon
	}
	quality, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, newParseError("GGA quality", err)
	}
	alt, err := strconv.ParseFloat(fields[8], 32)
	if err != nil {
		return nil, newParseError("GGA altitude", err)
	}
	return &PositionFix{
		LatDeg:  lat,
		LonDeg:  lon,
		Quality: quality,
		AltMSL:  float32(alt),
	}, nil
}

// parseLat decodes a GGA latitude field: 2-digit degrees + decimal minutes.
func parseLat(s string) (float64, error) {
	return parseDegMin(s, 2)
}

// parseLon decodes a GGA longitude field: 3-digit degrees + decimal minutes.
func parseLon(s string) (float64, error) {
	return parseDegMin(s, 3)
}

func parseDegMin(s string, degDigits int) (float64, error) {
	if len(s) < degDigits+1 {
		return 0, newPatternNotFound("coordinate field too short")
	}
	deg, err := strconv.ParseFloat(s[:degDigits], 64)
	if err != nil {
		return 0, newParseError("coordinate degrees", err)
	}
	min, err := strconv.ParseFloat(s[degDigits:], 64)
	if err != nil {
		return 0, newParseError("coordinate minutes", err)
	}
	return deg + min/60.0, nil
}

func applyVTG(fix *PositionFix, fields []string) {
	if len(fields) < 7 {
		return
	}
	if f, err := strconv.ParseFloat(fields[0], 32); err == nil {
		fix.TrueHeading = float32(f)
	}
	if f, err := strconv.ParseFloat(fields[2], 32); err == nil {
		fix.MagHeading = float32(f)
	}
	if f, err := strconv.ParseFloat(fields[6], 32); err == nil {
		fix.GroundSpeed = float32(f)
	}
}

// applyGSA reads the trailing [PDOP, HDOP, VDOP, systemId] of a GSA
// sentence; the system ID (last field) is not part of the fix.
func applyGSA(fix *PositionFix, fields []string) {
	n := len(fields)
	if n < 4 {
		return
	}
	if f, err := strconv.ParseFloat(fields[n-4], 32); err == nil {
		fix.PDOP = float32(f)
	}
	if f, err := strconv.ParseFloat(fields[n-3], 32); err == nil {
		fix.HDOP = float32(f)
	}
	if f, err := strconv.ParseFloat(fields[n-2], 32); err == nil {
		fix.VDOP = float32(f)
	}
}

// applyGSV folds one GSV sentence's satellite-in-view groups into fix.
// Fields are [totalMsgs, msgNum, satsInView, (prn,el,az,snr)*, signalId?].
func applyGSV(fix *PositionFix, s rawSentence) {
	if len(s.fields) < 3 {
		return
	}
	rest := s.fields[3:]
	if len(rest)%4 == 1 {
		rest = rest[:len(rest)-1] // trailing signalId, not a satellite group
	}
	for i := 0; i+4 <= len(rest); i += 4 {
		prnStr, elStr, azStr := rest[i], rest[i+1], rest[i+2]
		if prnStr == "" {
			continue
		}
		prn, err := strconv.Atoi(prnStr)
		if err != nil {
			continue
		}
		var el int
		if elStr != "" {
			el, _ = strconv.Atoi(elStr)
		}
		var az int
		if azStr != "" {
			az, _ = strconv.Atoi(azStr)
		}
		sat, err := SatelliteFromNMEA(s.talker, uint8(prn))
		if err != nil {
			continue
		}
		fix.SatViews[sat] = SatView{Elevation: int8(el), Azimuth: uint16(az)}
	}
}
