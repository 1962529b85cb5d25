package resp

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// Decoder failure taxonomy. The textual descriptions are part of the wire
// contract: callers surface them verbatim as error replies.
var (
	ErrInvalidStartOfMsg   = errors.New("message must be an array")
	ErrMalformedArray      = errors.New("invalid array")
	ErrBulkStringExpected  = errors.New("bulk string expected")
	ErrMalformedBulkString = errors.New("malformed bulk string")
)

// errCrLfNotFound is internal to the scanner; it never leaves this package.
var errCrLfNotFound = errors.New("\r\n not found")

// decoder walks one request frame. cursor is the read position, crPos/lfPos
// mark the CRLF pair most recently located by updateCrLf; jumpToLf also
// moves lfPos onto the LF that ends a bulk string payload.
type decoder struct {
	msg    []byte
	cursor int
	crPos  int
	lfPos  int
}

// Decode consumes exactly one request frame and returns its arguments.
// The frame must be a single array of bulk strings with nothing after the
// final CRLF. Bulk string payloads must be valid UTF-8.
func Decode(msg []byte) ([]string, error) {
	d := decoder{msg: msg}
	return d.decode()
}

func (d *decoder) decode() ([]string, error) {
	if d.cursor >= len(d.msg) || d.msg[d.cursor] != ARRAY {
		return nil, ErrInvalidStartOfMsg
	}

	// advance to the first CRLF to find out how many elements the array has
	d.cursor++
	if err := d.updateCrLf(); err != nil {
		return nil, ErrMalformedArray
	}
	size, err := parseU32(d.msg[d.cursor:d.crPos])
	if err != nil {
		return nil, ErrMalformedArray
	}

	// extract the bulk strings (size comes off the wire, cap the prealloc)
	params := make([]string, 0, min(int(size), 32))
	for range size {
		if err := d.checkBulkStringType(); err != nil {
			return nil, err
		}

		bulk, n, err := d.extractBulkString()
		if err != nil {
			return nil, err
		}
		params = append(params, bulk)

		if err := d.jumpToLf(n); err != nil {
			return nil, err
		}
	}

	// make sure there's nothing else after the last CRLF
	d.cursor++
	if d.cursor < len(d.msg) {
		return nil, ErrMalformedArray
	}

	return params, nil
}

func (d *decoder) checkBulkStringType() error {
	d.cursor = d.lfPos + 1
	if d.cursor >= len(d.msg) {
		return ErrMalformedBulkString
	}
	if d.msg[d.cursor] != BULK_STRING {
		return ErrBulkStringExpected
	}
	return nil
}

// extractBulkString reads the `$<len> CRLF <bytes>` portion and returns the
// decoded payload plus its declared length.
func (d *decoder) extractBulkString() (string, int, error) {
	// get the size
	d.cursor++
	if err := d.updateCrLf(); err != nil {
		return "", 0, ErrMalformedBulkString
	}
	size, err := parseU32(d.msg[d.cursor:d.crPos])
	if err != nil {
		return "", 0, ErrMalformedBulkString
	}

	// get the data (make sure it's consistent with the size)
	d.cursor = d.lfPos + 1
	if d.cursor >= len(d.msg) || len(d.msg)-d.cursor < int(size) {
		return "", 0, ErrMalformedBulkString
	}
	raw := d.msg[d.cursor : d.cursor+int(size)]
	if !utf8.Valid(raw) {
		return "", 0, ErrMalformedBulkString
	}

	return string(raw), int(size), nil
}

// jumpToLf skips the payload and its trailing CRLF, leaving lfPos on the LF.
func (d *decoder) jumpToLf(size int) error {
	d.cursor += size
	if d.cursor >= len(d.msg) || d.msg[d.cursor] != CR {
		return ErrMalformedBulkString
	}
	d.cursor++
	if d.cursor >= len(d.msg) || d.msg[d.cursor] != LF {
		return ErrMalformedBulkString
	}
	d.lfPos = d.cursor
	return nil
}

func (d *decoder) updateCrLf() error {
	for cursor := d.cursor; cursor < len(d.msg)-1; cursor++ {
		if d.msg[cursor] == CR && d.msg[cursor+1] == LF {
			d.crPos = cursor
			d.lfPos = cursor + 1
			return nil
		}
	}
	return errCrLfNotFound
}

func parseU32(b []byte) (uint32, error) {
	v, err := strconv.ParseUint(string(b), 10, 32)
	return uint32(v), err
}

// AppendArray appends args encoded as an array of bulk strings. Re-encoding
// the output of Decode with this function reproduces the original frame
// byte-for-byte.
func AppendArray(dst []byte, args []string) []byte {
	dst = append(dst, ARRAY)
	dst = strconv.AppendUint(dst, uint64(len(args)), 10)
	dst = append(dst, CR, LF)
	for _, arg := range args {
		dst = append(dst, BULK_STRING)
		dst = strconv.AppendUint(dst, uint64(len(arg)), 10)
		dst = append(dst, CR, LF)
		dst = append(dst, arg...)
		dst = append(dst, CR, LF)
	}
	return dst
}
