// Package encoding includes implementations of encoding.TextMarshaler and encoding.TextUnmarshaler
// to encode and decode binary object code. It is based on Intel Hex file-encoding.
//
// Each file is composed of lines composed of a prefix, length, address, type, (optional data) and a
// checksum. In shorthand:
//
//	:LLAAAATT[DD...]CC
//	0123456789
//
// See [Grammar] for a formal grammar.
//
// # Bugs
//
// This is not a complete implementation of Intel Hex encoding; it is for internal use, only. It
// supports minimal record types, specifically just the data and end-of-file record types, and
// packs data as 32-bit cells rather than 16-bit words.
package encoding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/mforth/tiff32/internal/vm"
)

const Grammar = `
file  = { line } ;
line  = ':' len addr type data check nl ;
len   = byte ;
addr  = byte byte ;
type  = byte ;
data  = { byte }
byte  = hex hex ;
hex   = '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9'
      | 'a' | 'b' | 'c' | 'd' | 'e' | 'f' | 'A' | 'B' | 'C' | 'D' | 'E' | 'F' ;
nl    = '\n' ;
`

// HexEncoding implements marshalling and unmarshalling of a tiff32 ROM image as an Intel-Hex-like
// file, one record per ObjectCode block.
type HexEncoding struct {
	Code []vm.ObjectCode
}

func (h *HexEncoding) MarshalText() ([]byte, error) {
	var (
		buf   bytes.Buffer
		check byte
	)

	for i := range h.Code {
		code := h.Code[i]

		buf.WriteByte(':')

		var val [4]byte

		l := len(code.Code)
		val[0] = byte(l * 4)
		check += val[0]

		enc := hex.NewEncoder(&buf)
		if _, err := enc.Write(val[:1]); err != nil {
			return buf.Bytes(), err
		}

		val[0] = byte(code.Orig >> 8)
		val[1] = byte(code.Orig & 0xff)
		check += val[0]
		check += val[1]

		if _, err := enc.Write(val[:2]); err != nil {
			return buf.Bytes(), err
		}

		buf.WriteByte('0')
		buf.WriteByte('0')

		for _, cell := range code.Code {
			binary.BigEndian.PutUint32(val[:], uint32(cell))

			if _, err := enc.Write(val[:]); err != nil {
				return buf.Bytes(), err
			}

			for _, b := range val {
				check += b
			}
		}

		val[0] = 1 + ^check
		_, _ = enc.Write(val[:1])

		buf.WriteByte('\n')

		check = 0
	}

	buf.Write([]byte(":00000001ff\n"))

	return buf.Bytes(), nil
}

func (h *HexEncoding) UnmarshalText(bs []byte) error {
	line := bufio.NewScanner(bytes.NewReader(bs))

	for line.Scan() {
		var (
			rec []byte = line.Bytes() //nolint:stylecheck

			recLen   byte
			recAddr  uint16
			recKind  kind
			recCheck byte
			check    byte
			dec      [4]byte
		)

		if len(rec) == 0 {
			break
		} else if token := rec[0]; token == '\n' {
			continue
		} else if token != ':' {
			return fmt.Errorf("%w: line does not start with ':'", errInvalidHex)
		}

		if _, err := hex.Decode(dec[:1], rec[1:3]); err != nil {
			return fmt.Errorf("%w: len:%s", errInvalidHex, err.Error())
		} else {
			recLen = dec[0]
		}

		check += dec[0]

		if _, err := hex.Decode(dec[:2], rec[3:7]); err != nil {
			return fmt.Errorf("%w: addr: %s", errInvalidHex, err.Error())
		} else {
			recAddr = binary.BigEndian.Uint16(dec[:2])
		}

		check += dec[0] + dec[1]

		if _, err := hex.Decode(dec[:1], rec[7:9]); err != nil {
			return fmt.Errorf("%w: type: %s", errInvalidHex, err.Error())
		} else {
			recKind = kind(dec[0])
		}

		check += dec[0]

		if _, err := hex.Decode(dec[:1], rec[len(rec)-2:]); err != nil {
			return fmt.Errorf("%w: check: %s", errInvalidHex, err.Error())
		} else {
			recCheck = dec[0]
		}

		switch {
		case recLen%4 != 0:
			return fmt.Errorf("%w: data length not a multiple of 4", errInvalidHex)
		case recKind == kindData && recLen > 0:
			hexData := make([]byte, recLen)

			if _, err := hex.Decode(hexData, rec[9:9+int(recLen)*2]); err != nil {
				return fmt.Errorf("%w: data: %s", errInvalidHex, err.Error())
			}

			cells := make([]vm.Cell, recLen/4)
			for i := range cells {
				cells[i] = vm.Cell(binary.BigEndian.Uint32(hexData[4*i : 4*i+4]))
			}

			for _, b := range hexData {
				check += b
			}

			check = 1 + ^check
			if check != recCheck {
				return fmt.Errorf("%w: checksum invalid: %02x != %02x",
					errInvalidHex, check, recCheck)
			}

			h.Code = append(h.Code, vm.ObjectCode{
				Orig: uint32(recAddr),
				Code: cells,
			})
		case recKind == kindEOF:
			check = 1 + ^check
			if check != recCheck {
				return fmt.Errorf("%w: checksum invalid: %02x != %02x",
					errInvalidHex, check, recCheck)
			}

			return endOfRecords(h)
		default:
			return fmt.Errorf("%w: unexpected record type: %d", errInvalidHex, recKind)
		}
	}

	return endOfRecords(h)
}

func endOfRecords(h *HexEncoding) error {
	if len(h.Code) == 0 {
		return errEmpty
	}

	return nil
}

// kind represents the type of encoded record. Only the subset of record types supported by the
// encoder are supported.
type kind byte

const (
	kindData kind = 0
	kindEOF  kind = 1
)

type decodingError struct{}

func (decodingError) Error() string {
	return "decoding error"
}

func (de *decodingError) Is(err error) bool {
	if de == err {
		return true
	} else if _, ok := err.(*decodingError); ok {
		return true
	} else {
		return false
	}
}

var (
	// ErrDecode is a wrapped error that is returned when decoding fails.
	ErrDecode = &decodingError{}

	errEmpty      = fmt.Errorf("%w: no data decoded", ErrDecode)
	errInvalidHex = fmt.Errorf("%w: invalid encoding", ErrDecode)
)
