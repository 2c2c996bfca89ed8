// Package ubloxtec decodes the mixed binary/text stream of a dual-frequency
// u-blox GNSS receiver and derives slant Total Electron Content (TEC) from
// the recovered carrier-phase and pseudo-range observables.
//
// A byte buffer containing interleaved UBX-RXM-RAWX frames and NMEA
// sentences is split by SplitFrames, decoded into a RawxFrame and a
// PositionFix, fused into a GpsInfo, and reduced to a TecInfo by
// AssimilateTEC. ParseMessages runs the steps up to the GpsInfo for a
// single buffer; ParseDatafile replays those steps over a delimited capture
// file. Neither calls AssimilateTEC.
package ubloxtec
