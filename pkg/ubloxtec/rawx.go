package ubloxtec

import (
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	classRxm    = 0x02
	idRxmRawx   = 0x15
	rawxHdrSize = 16
	measSize    = 32

	locktimeSaturation = 64500
)

var gpsEpoch = time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC)

// TrkStat is the tracking-status bitfield carried by every RXM-RAWX
// measurement record (byte offset 30 within the record).
type TrkStat struct {
	PRValid      bool
	CPValid      bool
	HalfCycle    bool
	SubHalfCycle bool
}

func trkStatFromByte(b byte) TrkStat {
	return TrkStat{
		PRValid:      b&0x01 != 0,
		CPValid:      b&0x02 != 0,
		HalfCycle:    b&0x04 != 0,
		SubHalfCycle: b&0x08 != 0,
	}
}

// RecvStat is the receiver-status bitfield at header byte offset 12.
type RecvStat struct {
	LeapSecondKnown bool
	ClockReset      bool
}

func recvStatFromByte(b byte) RecvStat {
	return RecvStat{
		LeapSecondKnown: b&0x01 != 0,
		ClockReset:      b&0x02 != 0,
	}
}

// CarrierMeas is one satellite/channel measurement record. PseudoRange and
// CarrierPhase are present independently of each other, gated by their own
// TrkStat bit (see DESIGN.md's "cp_valid gating pr_valid" decision — this
// deviates from the reference implementation, which gates both off
// CPValid).
type CarrierMeas struct {
	Channel      Channel
	PseudoRange  *Uncertain // meters
	CarrierPhase *Uncertain // cycles
	Doppler      Uncertain  // Hz
	Locktime     uint16     // ms, saturates at locktimeSaturation
	CarrierSNR   uint8      // dB-Hz
	TrkStat      TrkStat
}

// RawxFrame is a decoded RXM-RAWX message.
type RawxFrame struct {
	Timestamp      time.Time
	ReceiverStatus RecvStat
	Version        uint8
	Meas           map[Satellite][]CarrierMeas
}

// RemoveSingleBand drops satellites with fewer than two tracked channels.
// Ported from the reference implementation's remove_single_band, useful
// before handing a frame to TEC estimation or a dual-frequency-only
// caller.
func (f *RawxFrame) RemoveSingleBand() {
	for sat, meas := range f.Meas {
		if len(meas) < 2 {
			delete(f.Meas, sat)
		}
	}
}

// DecodeRawx parses a validated UBX frame's payload as an RXM-RAWX message.
// It returns a *DecodeError with Kind FrameError for structural problems
// (wrong class/ID, short payload, measurement-count mismatch) that apply to
// the whole frame. A measurement whose (gnssId, svId, sigId) triple does
// not resolve is logged and skipped; the rest of the frame still decodes.
func DecodeRawx(f Frame) (*RawxFrame, error) {
	if f.Class != classRxm || f.ID != idRxmRawx {
		return nil, newFrameError(FrameBadClassOrID, "not an RXM-RAWX frame")
	}
	if len(f.Payload) < rawxHdrSize {
		return nil, newFrameError(FrameBadLength, "payload shorter than RXM-RAWX header")
	}
	numMeas := (len(f.Payload) - rawxHdrSize) / measSize
	if int(f.Payload[11]) != numMeas {
		return nil, newFrameError(FrameBadLength, "declared measurement count does not match payload length")
	}

	rcvTow := math.Float64frombits(binary.LittleEndian.Uint64(f.Payload[0:8]))
	week := binary.LittleEndian.Uint16(f.Payload[8:10])
	leapS := int8(f.Payload[10])

	ts := gpsEpoch.
		AddDate(0, 0, 7*int(week)).
		Add(time.Duration(rcvTow * float64(time.Second))).
		Add(time.Duration(leapS) * time.Second)

	frame := &RawxFrame{
		Timestamp:      ts,
		ReceiverStatus: recvStatFromByte(f.Payload[12]),
		Version:        f.Payload[13],
		Meas:           make(map[Satellite][]CarrierMeas),
	}

	for i := 0; i < numMeas; i++ {
		start := rawxHdrSize + i*measSize
		rec := f.Payload[start : start+measSize]

		gnssID := rec[20]
		svID := rec[21]
		sigID := rec[22]
		freqSlot := int8(rec[23])

		sat, err := SatelliteFromUBX(gnssID, svID)
		if err != nil {
			logger.WithFields(logrus.Fields{"gnssId": gnssID, "svId": svID}).Warn("rawx: unrecognized gnssId, dropping measurement")
			continue
		}
		ch, err := ChannelFromUBX(sat.Constellation, sigID, freqSlot)
		if err != nil {
			logger.WithFields(logrus.Fields{"sigId": sigID, "satellite": sat.String()}).Warn("rawx: unrecognized sigId, dropping measurement")
			continue
		}

		trkStat := trkStatFromByte(rec[30])

		var pr *Uncertain
		if trkStat.PRValid {
			prVal := math.Float64frombits(binary.LittleEndian.Uint64(rec[0:8]))
			prStd := 0.01 * math.Pow(2, float64(rec[27]))
			pr = &Uncertain{Value: prVal, Stdev: prStd}
		}
		var cp *Uncertain
		if trkStat.CPValid {
			cpVal := math.Float64frombits(binary.LittleEndian.Uint64(rec[8:16]))
			cpStd := 0.004 * float64(rec[28])
			cp = &Uncertain{Value: cpVal, Stdev: cpStd}
		}
		doVal := float64(math.Float32frombits(binary.LittleEndian.Uint32(rec[16:20])))
		doStd := 0.002 * math.Pow(2, float64(rec[29]))

		locktime := binary.LittleEndian.Uint16(rec[24:26])
		if locktime > locktimeSaturation {
			locktime = locktimeSaturation
		}

		meas := CarrierMeas{
			Channel:      ch,
			PseudoRange:  pr,
			CarrierPhase: cp,
			Doppler:      Uncertain{Value: doVal, Stdev: doStd},
			Locktime:     locktime,
			CarrierSNR:   rec[26],
			TrkStat:      trkStat,
		}
		frame.Meas[sat] = append(frame.Meas[sat], meas)
	}

	for _, meas := range frame.Meas {
		sort.SliceStable(meas, func(a, b int) bool {
			return meas[a].Channel.Freq() > meas[b].Channel.Freq()
		})
	}

	return frame, nil
}
