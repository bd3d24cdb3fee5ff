package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Build and parse the on-air frame.
 *
 * Description:	A frame wraps one payload of 1..65535 bytes:
 *
 *		  off 0   0xA5           marker
 *		  off 1   0x5A           marker
 *		  off 2   len low        payload length, little endian
 *		  off 3   len high
 *		  off 4   seq            caller supplied sequence number
 *		  off 5   payload
 *		  ...     crc high       CRC-16-CCITT over everything
 *		  ...     crc low        above it, big endian
 *
 *		Parsing is length driven, never scan driven, so the
 *		marker bytes appearing inside the payload cause no
 *		confusion.  Trailing bytes past the CRC are ignored;
 *		the FEC tail and bit-to-byte regrouping pad the
 *		frame's byte stream.
 *
 *----------------------------------------------------------------*/

const (
	frameMarkerHi = 0xA5
	frameMarkerLo = 0x5A

	frameHeaderLen  = 5
	frameCrcLen     = 2
	frameMinLen     = frameHeaderLen + frameCrcLen
	MaxPayloadBytes = 0xFFFF
)

// BuildFrame wraps payload in the header and CRC trailer.  seq is
// carried transparently for the receiver; the modem itself assigns no
// meaning to it.
func BuildFrame(payload []byte, seq byte) ([]byte, error) {

	if len(payload) == 0 {
		return nil, wrapf(ErrInputEmpty, "payload has no bytes")
	}

	if len(payload) > MaxPayloadBytes {
		return nil, wrapf(ErrPayloadTooLarge, "%d bytes, limit %d", len(payload), MaxPayloadBytes)
	}

	var length = uint16(len(payload))

	var frame = make([]byte, 0, frameMinLen+len(payload))
	frame = append(frame, frameMarkerHi, frameMarkerLo)
	frame = append(frame, byte(length&0xFF), byte(length>>8))
	frame = append(frame, seq)
	frame = append(frame, payload...)

	var crc = crc16Ccitt(frame)
	frame = append(frame, byte(crc>>8), byte(crc&0xFF))

	return frame, nil
}

// ParseFrame validates markers, length and CRC, and returns the
// payload and sequence number.  The input may be longer than the
// frame; extra trailing bytes are accepted.
func ParseFrame(data []byte) (payload []byte, seq byte, err error) {

	if len(data) < frameMinLen {
		return nil, 0, wrapf(ErrFrameTooShort, "%d bytes, need at least %d", len(data), frameMinLen)
	}

	if data[0] != frameMarkerHi || data[1] != frameMarkerLo {
		return nil, 0, wrapf(ErrMarkerMismatch, "got %02X %02X, want %02X %02X",
			data[0], data[1], frameMarkerHi, frameMarkerLo)
	}

	var length = int(data[2]) | int(data[3])<<8
	seq = data[4]

	var frameEnd = frameHeaderLen + length + frameCrcLen
	if len(data) < frameEnd {
		return nil, 0, wrapf(ErrLengthMismatch, "header says %d payload bytes but only %d bytes follow",
			length, len(data)-frameHeaderLen)
	}

	var crcWant = uint16(data[frameEnd-2])<<8 | uint16(data[frameEnd-1])
	var crcGot = crc16Ccitt(data[:frameEnd-frameCrcLen])

	if crcGot != crcWant {
		return nil, 0, wrapf(ErrCrcMismatch, "computed %04X, frame carries %04X", crcGot, crcWant)
	}

	return data[frameHeaderLen : frameHeaderLen+length], seq, nil
}
