/*
 * MinIO Cloud Storage, (C) 2020 MinIO, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package indolent

import "encoding/binary"

const hexUpper = "0123456789ABCDEF"

// swarLanes broadcasts b into every byte lane of a uint64.
func swarLanes(b byte) uint64 {
	const lsb = 0x0101010101010101
	return lsb * uint64(b)
}

// swarHasZero returns a nonzero value (high bit set per matching lane)
// wherever a byte lane of x is zero.
func swarHasZero(x uint64) uint64 {
	const lsb = 0x0101010101010101
	const msb = 0x8080808080808080
	return (x - lsb) & ^x & msb
}

// swarHasLessThan returns a nonzero value (high bit set per matching
// lane) wherever a byte lane of x is less than n. n must be in 1..128.
func swarHasLessThan(x uint64, n byte) uint64 {
	const msb = 0x8080808080808080
	return (x - swarLanes(n)) & ^x & msb
}

// swarOuterSpecial reports whether any of the 8 bytes packed into x is
// whitespace (<= 0x20) or a double quote -- the only two things that
// stop Compact's outer-mode bulk copy.
func swarOuterSpecial(x uint64) bool {
	const quote = 0x22
	return swarHasLessThan(x, 0x21) != 0 || swarHasZero(x^swarLanes(quote)) != 0
}

// Compact strips insignificant whitespace from input and re-canonicalizes
// string escapes (see package doc and spec §4.2), appending the result to
// dst and returning the extended slice. Compact assumes input is
// well-formed JSON: it is a transducer, not a validator, and bytes
// outside strings that are neither whitespace nor JSON structure are
// passed through untouched. Call Validate on the result if the input's
// well-formedness is not already guaranteed.
//
// Compact is idempotent: Compact(nil, Compact(nil, j)) always equals
// Compact(nil, j).
func Compact(dst, input []byte) ([]byte, error) {
	i := 0
	n := len(input)
	window := wideScanWindow()
	for i < n {
		c := input[i]
		if c == '"' {
			dst = append(dst, c)
			i++
			var err error
			dst, i, err = compactString(dst, input, i)
			if err != nil {
				return dst, err
			}
			continue
		}
		if c <= 0x20 {
			i++
			continue
		}
		// Bulk-copy a run of plain bytes when the host can profitably
		// scan 8 at a time; this changes nothing about the output, only
		// how fast we get there.
		if window == 8 && i+8 <= n {
			x := binary.LittleEndian.Uint64(input[i:])
			if !swarOuterSpecial(x) {
				dst = append(dst, input[i:i+8]...)
				i += 8
				continue
			}
		}
		dst = append(dst, c)
		i++
	}
	return dst, nil
}

// compactString processes the inside of a string (the opening quote has
// already been emitted and consumed) until the closing quote, appending
// canonicalized bytes to dst. It returns the new dst, the input position
// just past the closing quote, and any error.
func compactString(dst, input []byte, i int) ([]byte, int, error) {
	n := len(input)
	for {
		if i >= n {
			return dst, i, ErrMalformedJSON
		}
		c := input[i]
		i++
		if c == '"' {
			dst = append(dst, c)
			return dst, i, nil
		}
		if c != '\\' {
			dst = append(dst, c)
			continue
		}
		if i >= n {
			return dst, i, ErrMalformedJSON
		}
		e := input[i]
		i++
		switch e {
		case '/':
			dst = append(dst, '/')
		case 'u':
			var err error
			dst, i, err = compactUnicodeEscape(dst, input, i)
			if err != nil {
				return dst, i, err
			}
		default:
			dst = append(dst, '\\', e)
		}
	}
}

// compactUnicodeEscape reads the 4 hex digits following a \u already
// consumed from input at i, re-encodes the code point per spec §4.2, and
// appends the canonical form to dst. It returns the new dst, the input
// position just past what it consumed, and any error.
func compactUnicodeEscape(dst, input []byte, i int) ([]byte, int, error) {
	n := len(input)
	if i+4 > n {
		return dst, i, ErrMalformedJSON
	}
	x := uint32(readHexQuad(input[i], input[i+1], input[i+2], input[i+3]))
	i += 4

	switch {
	case x < 0x20:
		dst = append(dst, '\\')
		switch x {
		case 0x08:
			dst = append(dst, 'b')
		case 0x09:
			dst = append(dst, 't')
		case 0x0A:
			dst = append(dst, 'n')
		case 0x0C:
			dst = append(dst, 'f')
		case 0x0D:
			dst = append(dst, 'r')
		default:
			dst = append(dst, 'u', '0', '0', '0'+byte(x>>4), hexUpper[x&0xF])
		}
	case x < 0x80:
		if byte(x) == '"' || byte(x) == '\\' {
			dst = append(dst, '\\')
		}
		dst = append(dst, byte(x))
	case x < 0x800:
		dst = append(dst, byte(x>>6)|0xC0, byte(x&0x3F)|0x80)
	case x < 0xD800 || x >= 0xE000:
		dst = append(dst, byte(x>>12)|0xE0, byte((x>>6)&0x3F)|0x80, byte(x&0x3F)|0x80)
	case x < 0xDC00:
		// High surrogate: the next 6 bytes must be exactly \uYYYY.
		// Skip the "\u" without re-validating it (the compactor trusts
		// its input is well-formed) and read the low surrogate's digits.
		if i+6 > n {
			return dst, i, ErrMalformedJSON
		}
		i += 2
		y := uint32(readHexQuad(input[i], input[i+1], input[i+2], input[i+3]))
		i += 4
		code := 0x10000 + ((x&0x3FF)<<10 | (y & 0x3FF))
		dst = append(dst,
			byte(code>>18)|0xF0,
			byte((code>>12)&0x3F)|0x80,
			byte((code>>6)&0x3F)|0x80,
			byte(code&0x3F)|0x80,
		)
	default:
		// Lone low surrogate (0xDC00..0xDFFF) with no preceding high
		// surrogate. Emitted as if it were a BMP code point: a 3-byte
		// UTF-8 sequence that does not actually decode to valid UTF-8.
		// This mirrors a quirk in the reference implementation rather
		// than a deliberate encoding choice; see SPEC_FULL.md §5 and
		// spec.md §9 open question 1. Fixing it would change the
		// canonical byte form this package promises to produce.
		dst = append(dst, byte(x>>12)|0xE0, byte((x>>6)&0x3F)|0x80, byte(x&0x3F)|0x80)
	}
	return dst, i, nil
}
