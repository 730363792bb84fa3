package bok

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"unicode/utf8"
)

// Wire format, little-endian throughout.
//
// Origin (0x00):
//
//	+------+------------------+-----------------------------+
//	| 0x00 | year (8 bytes)   | timestamp (8 bytes, signed) |
//	+------+------------------+-----------------------------+
//
// Record (0x01):
//
//	+------+------------+-----------------+----------------+----------------+
//	| 0x01 | date (4 B) | timestamp (8 B) | name_len (4 B) | desc_len (4 B) |
//	+------+------------+-----------------+----------------+----------------+
//	| name bytes | description bytes | line_count (4 B) | lines...        |
//	+-----------------------------------------------------------------------+
//	| previous entry hash (64 ASCII hex bytes)                              |
//	+-----------------------------------------------------------------------+
//
// Each line:
//
//	+-------------------+----------------+------+--------+---------------+
//	| account_len (4 B) | amount (8 B)   | side | d_flag | account bytes |
//	+-------------------+----------------+------+--------+---------------+
//	| desc_len (4 B, if d_flag = 0x01) | description bytes               |
//	+---------------------------------------------------------------------+
//
// The date is a signed day count where 0001-01-01 is day 1; timestamps
// are epoch seconds.

// maxStringLen bounds every declared string length on decode so a
// corrupt length field cannot trigger an enormous allocation.
const maxStringLen = 1 << 24

// Serialize writes the canonical binary encoding of entry to w. The hash
// of an entry is the digest of exactly these bytes.
func Serialize(entry Entry, w io.Writer) error {
	enc := &encoder{w: w}
	switch e := entry.(type) {
	case *Origin:
		enc.u8(byte(KindOrigin))
		enc.u64(e.Year)
		enc.i64(e.Timestamp.Unix())
	case *Record:
		if len(e.Previous) != HashHexSize {
			return fmt.Errorf("%w: previous entry hash is %d bytes, want %d", ErrInvalidData, len(e.Previous), HashHexSize)
		}
		enc.u8(byte(KindRecord))
		enc.i32(dayCount(e.EventDate))
		enc.i64(e.Timestamp.Unix())
		enc.u32(uint32(len(e.Name)))
		enc.u32(uint32(len(e.Description)))
		enc.bytes([]byte(e.Name))
		enc.bytes([]byte(e.Description))
		enc.u32(uint32(len(e.Lines)))
		for i := range e.Lines {
			if err := serializeLine(enc, &e.Lines[i]); err != nil {
				return err
			}
		}
		enc.bytes([]byte(e.Previous))
	default:
		return fmt.Errorf("%w: unknown entry kind %d", ErrInvalidData, entry.Kind())
	}
	return enc.err
}

func serializeLine(enc *encoder, line *EntryLine) error {
	if line.Side != Credit && line.Side != Debit {
		return fmt.Errorf("%w: invalid side %d", ErrInvalidData, line.Side)
	}
	enc.u32(uint32(len(line.Account)))
	enc.u64(line.Amount)
	enc.u8(byte(line.Side))
	if line.Description != nil {
		enc.u8(0x01)
	} else {
		enc.u8(0x00)
	}
	enc.bytes([]byte(line.Account))
	if line.Description != nil {
		enc.u32(uint32(len(*line.Description)))
		enc.bytes([]byte(*line.Description))
	}
	return nil
}

// Deserialize reads one entry from r. It consumes exactly the bytes of
// that entry, so entries can be decoded back to back from one reader.
func Deserialize(r io.Reader) (Entry, error) {
	dec := &decoder{r: r}

	discriminant, err := dec.u8("discriminant")
	if err != nil {
		return nil, err
	}

	switch EntryKind(discriminant) {
	case KindOrigin:
		year, err := dec.u64("year")
		if err != nil {
			return nil, err
		}
		secs, err := dec.i64("timestamp")
		if err != nil {
			return nil, err
		}
		timestamp, err := timeFromEpochSeconds(secs)
		if err != nil {
			return nil, err
		}
		return &Origin{Year: year, Timestamp: timestamp}, nil

	case KindRecord:
		days, err := dec.i32("event date")
		if err != nil {
			return nil, err
		}
		eventDate, err := dateFromDayCount(days)
		if err != nil {
			return nil, err
		}
		secs, err := dec.i64("timestamp")
		if err != nil {
			return nil, err
		}
		timestamp, err := timeFromEpochSeconds(secs)
		if err != nil {
			return nil, err
		}
		nameLen, err := dec.u32("name length")
		if err != nil {
			return nil, err
		}
		descLen, err := dec.u32("description length")
		if err != nil {
			return nil, err
		}
		name, err := dec.str(int(nameLen), "name")
		if err != nil {
			return nil, err
		}
		description, err := dec.str(int(descLen), "description")
		if err != nil {
			return nil, err
		}
		lineCount, err := dec.u32("line count")
		if err != nil {
			return nil, err
		}
		var lines []EntryLine
		for i := uint32(0); i < lineCount; i++ {
			line, err := deserializeLine(dec)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
		previous, err := dec.str(HashHexSize, "previous entry hash")
		if err != nil {
			return nil, err
		}
		if _, err := hex.DecodeString(previous); err != nil {
			return nil, fmt.Errorf("%w: previous entry hash is not hex", ErrInvalidData)
		}
		return &Record{
			Timestamp:   timestamp,
			EventDate:   eventDate,
			Name:        name,
			Description: description,
			Lines:       lines,
			Previous:    previous,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown discriminant 0x%02x", ErrInvalidData, discriminant)
	}
}

func deserializeLine(dec *decoder) (EntryLine, error) {
	var line EntryLine

	accountLen, err := dec.u32("account length")
	if err != nil {
		return line, err
	}
	amount, err := dec.u64("amount")
	if err != nil {
		return line, err
	}
	sideByte, err := dec.u8("side")
	if err != nil {
		return line, err
	}
	switch Side(sideByte) {
	case Credit, Debit:
	default:
		return line, fmt.Errorf("%w: invalid side byte 0x%02x", ErrInvalidData, sideByte)
	}
	flag, err := dec.u8("description flag")
	if err != nil {
		return line, err
	}
	if flag != 0x00 && flag != 0x01 {
		return line, fmt.Errorf("%w: invalid description flag 0x%02x", ErrInvalidData, flag)
	}
	account, err := dec.str(int(accountLen), "account")
	if err != nil {
		return line, err
	}

	line.Account = account
	line.Amount = amount
	line.Side = Side(sideByte)

	if flag == 0x01 {
		descLen, err := dec.u32("line description length")
		if err != nil {
			return line, err
		}
		description, err := dec.str(int(descLen), "line description")
		if err != nil {
			return line, err
		}
		line.Description = &description
	}
	return line, nil
}

// EncodeEntry serializes entry once, feeding the digest through a
// TeeWriter, and returns the hex hash alongside the canonical bytes.
func EncodeEntry(entry Entry, hasher Hasher) (string, []byte, error) {
	var buf bytes.Buffer
	digest := hasher.New()
	tee := NewTeeWriter(&buf, digest)
	if err := Serialize(entry, tee); err != nil {
		return "", nil, err
	}
	if err := tee.Flush(); err != nil {
		return "", nil, err
	}
	return hex.EncodeToString(digest.Sum(nil)), buf.Bytes(), nil
}

// HashEntry returns the hex hash of entry without retaining the
// serialized bytes.
func HashEntry(entry Entry, hasher Hasher) (string, error) {
	digest := hasher.New()
	if err := Serialize(entry, NewTeeWriter(io.Discard, digest)); err != nil {
		return "", err
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// encoder writes fixed-size little-endian values with a sticky error.
type encoder struct {
	w   io.Writer
	err error
	buf [8]byte
}

func (enc *encoder) bytes(p []byte) {
	if enc.err != nil {
		return
	}
	_, enc.err = enc.w.Write(p)
}

func (enc *encoder) u8(v byte) {
	enc.buf[0] = v
	enc.bytes(enc.buf[:1])
}

func (enc *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(enc.buf[:4], v)
	enc.bytes(enc.buf[:4])
}

func (enc *encoder) i32(v int32) {
	enc.u32(uint32(v))
}

func (enc *encoder) u64(v uint64) {
	binary.LittleEndian.PutUint64(enc.buf[:8], v)
	enc.bytes(enc.buf[:8])
}

func (enc *encoder) i64(v int64) {
	enc.u64(uint64(v))
}

// decoder reads fixed-size little-endian values, naming the offending
// field in every error.
type decoder struct {
	r   io.Reader
	buf [8]byte
}

func (dec *decoder) read(n int, field string) ([]byte, error) {
	if n > maxStringLen {
		return nil, fmt.Errorf("%w: %s length %d exceeds limit", ErrInvalidData, field, n)
	}
	var p []byte
	if n <= len(dec.buf) {
		p = dec.buf[:n]
	} else {
		p = make([]byte, n)
	}
	if _, err := io.ReadFull(dec.r, p); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %s", ErrUnexpectedEOF, field)
		}
		return nil, err
	}
	return p, nil
}

func (dec *decoder) u8(field string) (byte, error) {
	p, err := dec.read(1, field)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (dec *decoder) u32(field string) (uint32, error) {
	p, err := dec.read(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

func (dec *decoder) i32(field string) (int32, error) {
	v, err := dec.u32(field)
	return int32(v), err
}

func (dec *decoder) u64(field string) (uint64, error) {
	p, err := dec.read(8, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}

func (dec *decoder) i64(field string) (int64, error) {
	v, err := dec.u64(field)
	return int64(v), err
}

func (dec *decoder) str(n int, field string) (string, error) {
	p, err := dec.read(n, field)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidData, field)
	}
	return string(p), nil
}
