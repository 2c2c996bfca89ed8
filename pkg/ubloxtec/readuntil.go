package ubloxtec

import (
	"bytes"
	"io"
)

// DefaultDelimiter separates records in the persisted raw capture file
// (§6): chosen so it does not occur in valid NMEA (CR/LF alone or paired)
// nor in mid-frame UBX payloads.
var DefaultDelimiter = []byte("\r\r\n\n\r\r\n\n")

const readUntilBlockSize = 1024

// ReadUntil delivers one delimited record at a time from an upstream
// io.Reader, buffering internally in blocks and searching for the
// delimiter across block boundaries.
type ReadUntil struct {
	r       io.Reader
	delim   []byte
	pending []byte
}

// NewReadUntil wraps r, splitting its byte stream on delim. A nil or empty
// delim uses DefaultDelimiter.
func NewReadUntil(r io.Reader, delim []byte) *ReadUntil {
	if len(delim) == 0 {
		delim = DefaultDelimiter
	}
	return &ReadUntil{r: r, delim: delim}
}

// ReadRecord returns the next delimited record, with the delimiter
// consumed but not included in the result. When the upstream reader
// reaches end-of-stream before producing a full record, ReadRecord returns
// whatever bytes remain with a nil error and the next call returns io.EOF;
// if no bytes remain, it returns io.EOF at once.
func (u *ReadUntil) ReadRecord() ([]byte, error) {
	for {
		if idx := bytes.Index(u.pending, u.delim); idx >= 0 {
			rec := u.pending[:idx:idx]
			u.pending = u.pending[idx+len(u.delim):]
			return rec, nil
		}

		tmp := make([]byte, readUntilBlockSize)
		n, err := u.r.Read(tmp)
		if n > 0 {
			u.pending = append(u.pending, tmp[:n]...)
			continue
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(u.pending) == 0 {
			return nil, io.EOF
		}
		rec := u.pending
		u.pending = nil
		return rec, nil
	}
}
