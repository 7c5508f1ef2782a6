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

// Validate re-checks that compact and the nodes Parse produced from it
// describe actually well-formed JSON, not just bytes the parser's fast
// path happened to tolerate.
//
// Parse takes shortcuts that assume the input is valid: it never checks
// that a literal is spelled "true" rather than "txue", that a number's
// digits are in the right order, that a string's control characters are
// escaped, or that a '{' is closed by a matching '}' rather than a ']'.
// Those shortcuts are what make it fast; Validate is how a caller that
// doesn't already trust its input recovers the check Parse skipped.
//
// Validate assumes compact came out of Compact and nodes came out of
// Parse run over that same compact -- it walks them in lockstep and will
// misbehave (wrong answer, out-of-range panic) if they don't correspond.
// It does not re-derive structure Parse already computed; it only
// inspects the bytes Parse's shortcuts left unchecked.
func Validate(compact []byte, nodes Nodes) error {
	if ok := validate(compact, nodes); !ok {
		return ErrInvalidJSON
	}
	return nil
}

type validateFrame struct {
	end      int
	isObject bool
}

func validate(compact []byte, nodes Nodes) bool {
	if len(nodes) == 1 {
		return validateEmpty(compact)
	}

	var stack []validateFrame
	expectingKey := false
	offset := 0
	end := 0
	isObject := false

	for index, node := range nodes {
		switch {
		case expectingKey:
			start := offset
			offset += int(node.LengthInBytes)
			if !validateKey(compact[start:offset]) {
				return false
			}
			if offset >= len(compact) || compact[offset] != ':' {
				return false
			}
			offset++
			expectingKey = false

		case node.Children > 0:
			if offset >= len(compact) {
				return false
			}
			switch compact[offset] {
			case '{':
				isObject = true
			case '[':
				isObject = false
			default:
				return false
			}
			end = index + int(node.Children)
			stack = append(stack, validateFrame{end: end, isObject: isObject})
			expectingKey = isObject
			offset++

		default:
			start := offset
			offset += int(node.LengthInBytes)
			if !validateScalar(compact[start:offset]) {
				return false
			}
			for index == end {
				if offset >= len(compact) {
					return false
				}
				if isObject {
					if compact[offset] != '}' {
						return false
					}
				} else {
					if compact[offset] != ']' {
						return false
					}
				}
				offset++
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return offset == len(compact)
				}
				top := stack[len(stack)-1]
				end = top.end
				isObject = top.isObject
			}
			offset++
			expectingKey = isObject
		}
	}
	return false
}

// validateEmpty checks the two-byte fast path Parse takes for any input
// of length exactly 2: it assumes that's an empty object or array
// without looking at either byte, so this is the one place that has to.
func validateEmpty(bytes []byte) bool {
	if len(bytes) != 2 {
		return false
	}
	switch bytes[0] {
	case '{':
		return bytes[1] == '}'
	case '[':
		return bytes[1] == ']'
	default:
		return false
	}
}

// validateScalar checks a leaf value's span: an empty composite, a
// string, a literal, or a number.
func validateScalar(bytes []byte) bool {
	if validateEmpty(bytes) {
		return true
	}
	if len(bytes) == 0 {
		return false
	}
	switch bytes[0] {
	case '"':
		return validateString(bytes)
	case 't':
		return string(bytes) == "true"
	case 'f':
		return string(bytes) == "false"
	case 'n':
		return string(bytes) == "null"
	case '-':
		return validateNegative(bytes[1:])
	case '0':
		return validateFraction(bytes[1:])
	default:
		if bytes[0] >= '1' && bytes[0] <= '9' {
			return validateDigits(bytes[1:])
		}
		return false
	}
}

// validateKey checks an object key's span starts with '"'; Parse
// assumes the byte after '{' or ',' inside an object is a quote and
// never confirms it.
func validateKey(bytes []byte) bool {
	if len(bytes) == 0 {
		return false
	}
	if bytes[0] != '"' {
		return false
	}
	return validateString(bytes)
}

// validateString checks the inside of a string span for unescaped
// control characters and unrecognized escapes. It doesn't need to
// re-verify \uXXXX digits: Compact already consumed and re-encoded
// every \u escape, so one can only appear here as the fixed two-byte
// form \u that Compact itself never produces un-paired with valid
// digits. '/' is rejected even though plain JSON allows it as an
// escape, because Compact always removes that escape; a literal \/
// surviving into compact bytes means compact and nodes don't
// correspond to this input at all.
func validateString(bytes []byte) bool {
	if len(bytes) < 2 {
		return false
	}
	body := bytes[1 : len(bytes)-1]
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' {
			i++
			if i >= len(body) {
				return false
			}
			switch body[i] {
			case '"', '\\', 'b', 'f', 'n', 'r', 't', 'u':
			default:
				return false
			}
			continue
		}
		if c < ' ' {
			return false
		}
	}
	return true
}

// validateNegative checks the bytes after a number's leading '-'.
func validateNegative(bytes []byte) bool {
	if len(bytes) == 0 {
		return false
	}
	switch {
	case bytes[0] == '0':
		return validateFraction(bytes[1:])
	case bytes[0] >= '1' && bytes[0] <= '9':
		return validateDigits(bytes[1:])
	default:
		return false
	}
}

// validateDigits checks a run of digits up to an optional fraction or
// exponent.
func validateDigits(bytes []byte) bool {
	for i, b := range bytes {
		if b < '0' || b > '9' {
			return validateFraction(bytes[i:])
		}
	}
	return true
}

// validateFraction checks a number from an optional decimal point
// onward.
func validateFraction(bytes []byte) bool {
	if len(bytes) == 0 {
		return true
	}
	if len(bytes) < 2 {
		return false
	}
	if bytes[0] != '.' {
		return validateExponent(bytes)
	}
	digits := bytes[1:]
	for i, b := range digits {
		if b < '0' || b > '9' {
			return validateExponent(digits[i:])
		}
	}
	return true
}

// validateExponent checks a number's optional 'e'/'E' exponent.
func validateExponent(bytes []byte) bool {
	if len(bytes) < 2 {
		return false
	}
	if bytes[0] != 'e' && bytes[0] != 'E' {
		return false
	}
	offset := 1
	if bytes[1] == '+' || bytes[1] == '-' {
		if len(bytes) < 3 {
			return false
		}
		offset = 2
	}
	for _, b := range bytes[offset:] {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}
