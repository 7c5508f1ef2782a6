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

// readHexQuad decodes four ASCII hex digits into the uint16 they spell,
// using SIMD-within-a-register: the four bytes are packed into one
// 32-bit word and folded with branch-free arithmetic instead of being
// decoded one nibble at a time.
//
// h0..h3 must each be '0'-'9', 'A'-'F', or 'a'-'f'. Behavior on any
// other byte is undefined -- callers (the compactor's \uXXXX reader)
// guarantee this themselves; re-validating here would cost exactly the
// branch this routine exists to avoid.
func readHexQuad(h0, h1, h2, h3 byte) uint16 {
	w := uint32(h0)<<24 | uint32(h1)<<16 | uint32(h2)<<8 | uint32(h3)

	// Subtract '0' from every lane at once.
	w -= 0x30303030

	// Clear the case bit in every lane: 'a'..'f' (now 0x31..0x36) become
	// 0x11..0x16, the same lane values as 'A'..'F'.
	w &= 0x1F1F1F1F

	// A lane with bit 0x10 set held a letter ('A'..'F', now 0x11..0x16);
	// a digit lane ('0'..'9', now 0x00..0x09) never sets it.
	mask := w & 0x10101010

	// Letters decoded to 0x11..0x16 but should read as 10..15: that's a
	// correction of -7 per letter lane. mask>>1 is 0x08 per letter lane,
	// mask>>4 is 0x01 per letter lane; subtracting the first and adding
	// the second nets exactly -7 without touching digit lanes (mask is
	// zero there).
	w -= mask >> 1
	w += mask >> 4

	// Fold adjacent nibble pairs down into the low two bytes of w.
	w |= w >> 4
	w &= 0x00FF00FF
	w |= w >> 8
	return uint16(w)
}

// isHexDigit reports whether b is a valid hex digit. No code in this
// package calls it: the compactor relies on its input being well-formed
// and the validator never re-checks \uXXXX digits, per the compactor's
// guarantee.
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}
