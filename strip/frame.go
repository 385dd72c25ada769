package strip

import (
	"errors"
	"fmt"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/engine"
)

const (
	SOF0     = 0xAA
	SOF1     = 0x55
	CmdFrame = 0x20 // payload: h s v per LED

	headerLen = 6 // SOF0 SOF1 LENhi LENlo CMD SEQ
	maxLEDs   = (0xFFFF - 2) / 3
)

var (
	ErrShortFrame = errors.New("strip: short frame")
	ErrSync       = errors.New("strip: bad start of frame")
	ErrChecksum   = errors.New("strip: checksum mismatch")
)

// AppendFrame appends the on-wire form of one strip frame to dst:
//
//	[SOF0][SOF1][LEN hi][LEN lo][CMD][SEQ][h s v ...][CKS]
//
// LEN counts CMD, SEQ and the payload. CKS is the XOR of both LEN bytes,
// CMD, SEQ and the payload.
func AppendFrame(dst []byte, seq uint8, leds []engine.Color) ([]byte, error) {
	if len(leds) > maxLEDs {
		return dst, fmt.Errorf("strip: %d LEDs do not fit in one frame", len(leds))
	}
	length := 2 + 3*len(leds)
	hi, lo := byte(length>>8), byte(length)

	dst = append(dst, SOF0, SOF1, hi, lo, CmdFrame, seq)
	cks := hi ^ lo ^ CmdFrame ^ seq
	for _, c := range leds {
		dst = append(dst, c.H, c.S, c.V)
		cks ^= c.H ^ c.S ^ c.V
	}
	return append(dst, cks), nil
}

// DecodeFrame parses one frame produced by AppendFrame.
func DecodeFrame(b []byte) (seq uint8, leds []engine.Color, err error) {
	if len(b) < headerLen+1 {
		return 0, nil, ErrShortFrame
	}
	if b[0] != SOF0 || b[1] != SOF1 {
		return 0, nil, ErrSync
	}
	length := int(b[2])<<8 | int(b[3])
	if length < 2 || len(b) < 4+length+1 {
		return 0, nil, ErrShortFrame
	}
	if b[4] != CmdFrame {
		return 0, nil, fmt.Errorf("strip: unknown command 0x%02x", b[4])
	}

	body := b[4 : 4+length]
	cks := b[2] ^ b[3]
	for _, x := range body {
		cks ^= x
	}
	if cks != b[4+length] {
		return 0, nil, ErrChecksum
	}

	payload := body[2:]
	if len(payload)%3 != 0 {
		return 0, nil, fmt.Errorf("strip: payload of %d bytes is not HSV triples", len(payload))
	}
	leds = make([]engine.Color, len(payload)/3)
	for i := range leds {
		leds[i] = engine.Color{H: payload[3*i], S: payload[3*i+1], V: payload[3*i+2]}
	}
	return body[1], leds, nil
}
