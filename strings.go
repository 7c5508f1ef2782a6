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

// Unescape decodes JSON escape sequences in input (a string's body, with
// no surrounding quotes) and returns the decoded bytes. When input has
// no backslash it returns input itself, unmodified and unallocated; a
// caller must not assume the result is safe to mutate unless it already
// knows it allocated a fresh copy.
//
// Unescape's \uXXXX handling is deliberately partial: it only reads the
// last two of the four hex digits, silently skipping the first two
// without checking they're even hex digits. A codepoint above U+00FF
// (anything a real \uXXXX escape between U+0100 and U+FFFF would
// produce) decodes to the wrong single byte rather than to UTF-8 or an
// error. This is not a bug introduced here; it reproduces the reference
// unescaper exactly, because the byte-for-byte behavior of this function
// is itself part of what callers may depend on. See SPEC_FULL.md §5 and
// spec.md §9 open question 2.
func Unescape(input []byte) ([]byte, error) {
	pos := -1
	for i, c := range input {
		if c == '\\' {
			pos = i
			break
		}
	}
	if pos < 0 {
		return input, nil
	}

	output := make([]byte, 0, len(input))
	output = append(output, input[:pos]...)

	i := pos
	n := len(input)
	for i < n {
		c := input[i]
		i++
		if c != '\\' {
			output = append(output, c)
			continue
		}
		if i >= n {
			return nil, ErrInvalidEscape
		}
		escaped := input[i]
		i++
		switch escaped {
		case '"', '\\':
			output = append(output, escaped)
		case 'b':
			output = append(output, 0x08)
		case 'f':
			output = append(output, 0x0C)
		case 'n':
			output = append(output, 0x0A)
		case 'r':
			output = append(output, 0x0D)
		case 't':
			output = append(output, 0x09)
		case 'u':
			// Skip the first two digits; only the last two are ever
			// read, see the doc comment above.
			if i+4 > n {
				return nil, ErrInvalidEscape
			}
			h2 := input[i+2]
			h3 := input[i+3]
			i += 4
			value := ((h2 - '0') << 4) + ((h3 - '0') & 0x1F)
			if h3 > '9' {
				value -= 7
			}
			output = append(output, value)
		default:
			return nil, ErrInvalidEscape
		}
	}
	return output, nil
}

const escapeHex = "0123456789ABCDEF"

// Escape re-encodes input (a string's decoded bytes, no surrounding
// quotes) into JSON-escaped form, escaping control characters, '"', and
// '\'. When input needs no escaping at all it returns input itself,
// unmodified and unallocated.
//
// Escape never emits '\/' for a literal '/': the only escapes it
// produces are the single-letter short forms and \u00XX for other
// control characters, matching what Compact's own re-encoding rules
// produce and what Validate's string check accepts.
func Escape(input []byte) []byte {
	pos := -1
	for i, c := range input {
		if c < ' ' || c == '"' || c == '\\' {
			pos = i
			break
		}
	}
	if pos < 0 {
		return input
	}

	output := make([]byte, 0, len(input)*2)
	output = append(output, input[:pos]...)

	for _, c := range input[pos:] {
		if c < ' ' {
			output = append(output, '\\')
			switch c {
			case 0x08:
				output = append(output, 'b')
			case 0x09:
				output = append(output, 't')
			case 0x0A:
				output = append(output, 'n')
			case 0x0C:
				output = append(output, 'f')
			case 0x0D:
				output = append(output, 'r')
			default:
				output = append(output, 'u', '0', '0', '0'+(c>>4), escapeHex[c&0xF])
			}
			continue
		}
		if c == '"' || c == '\\' {
			output = append(output, '\\')
		}
		output = append(output, c)
	}
	return output
}
