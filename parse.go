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

// Parse walks compact (the output of Compact) exactly once and appends
// the resulting pre-order Node array to nodes. stack is scratch space
// for the parser's open-composite bookkeeping; it is returned empty
// (len 0) but with its capacity preserved, so a caller can clear() and
// reuse both buffers across calls without allocating.
//
// Parse assumes compact is itself the product of Compact: no whitespace,
// canonical escapes, one well-formed value. It does not re-verify this --
// that is what Validate is for -- so Parse can successfully return a
// Node array for bytes that are not actually valid JSON. Its only error
// is running out of input before a value, key, or closing bracket that
// the state machine expected.
//
// A top-level value that is not an object or array falls out of the
// stack bookkeeping that detects "root finished": Parse always expects
// one more byte after any value (a ',' continuing a container or the
// container's closer), so a bare scalar document (e.g. just `123` or
// `"x"` with nothing else) returns ErrUnexpectedEOF rather than a single
// node. The one exception is a two-byte document such as `42`, which the
// length-2 fast path returns as a single node. This mirrors the reference implementation's structure; it is a
// limitation of the fast path, not a validation decision -- Compact
// happily compacts such documents, Parse just can't index them alone.
func Parse(nodes Nodes, stack []uint32, compact []byte) (Nodes, []uint32, error) {
	n := len(compact)
	if n == 2 {
		return append(nodes, Node{Children: 0, LengthInBytes: 2}), stack[:0], nil
	}

	pos := 0
	parsingObject := false

nodeEnd:
	for {
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			offset := int(top >> 1)
			nodes[offset].LengthInBytes = uint32(pos) - nodes[offset].LengthInBytes
			nodes[offset].Children = uint32(len(nodes) - offset - 1)
			if len(stack) == 0 {
				return nodes, stack, nil
			}
			parsingObject = stack[len(stack)-1]&1 == 1
			if pos >= n {
				return nodes, stack, ErrUnexpectedEOF
			}
			c := compact[pos]
			pos++
			if c != ',' {
				continue nodeEnd
			}
		}

	valueStart:
		for {
			if parsingObject {
				if pos >= n {
					return nodes, stack, ErrUnexpectedEOF
				}
				keyStart := pos
				pos++ // opening '"'
				var err error
				pos, err = scanString(compact, pos)
				if err != nil {
					return nodes, stack, err
				}
				nodes = append(nodes, Node{Children: 0, LengthInBytes: uint32(pos - keyStart)})
				if pos >= n {
					return nodes, stack, ErrUnexpectedEOF
				}
				pos++ // ':'
			}

			if pos >= n {
				return nodes, stack, ErrUnexpectedEOF
			}
			start := pos
			c := compact[pos]
			pos++

			switch {
			case c == '{' || c == '[':
				if pos >= n {
					return nodes, stack, ErrUnexpectedEOF
				}
				closer := byte('}')
				if c == '[' {
					closer = ']'
				}
				if compact[pos] == closer {
					nodes = append(nodes, Node{Children: 0, LengthInBytes: 2})
					pos++
					// fall through to the shared end-of-value tail below
				} else {
					idx := uint32(len(nodes))
					var bit uint32
					if c == '{' {
						bit = 1
					}
					stack = append(stack, (idx<<1)|bit)
					nodes = append(nodes, Node{Children: 0, LengthInBytes: uint32(start)})
					parsingObject = c == '{'
					continue valueStart
				}
			case c == '"':
				var err error
				pos, err = scanString(compact, pos)
				if err != nil {
					return nodes, stack, err
				}
				nodes = append(nodes, Node{Children: 0, LengthInBytes: uint32(pos - start)})
			default:
				// Number or literal. true/false/null/numbers contain no
				// byte that folds under &0xDF to ']' (0x5D) except ']'
				// itself (0x7D '}' also folds to 0x5D), so a single mask
				// test detects either closer without distinguishing them
				// -- Validate is what actually checks the bracket kind.
				for {
					if pos >= n {
						return nodes, stack, ErrUnexpectedEOF
					}
					b := compact[pos]
					pos++
					if b == ',' {
						nodes = append(nodes, Node{Children: 0, LengthInBytes: uint32(pos - start - 1)})
						continue valueStart
					}
					if b&0xDF == ']' {
						nodes = append(nodes, Node{Children: 0, LengthInBytes: uint32(pos - start - 1)})
						continue nodeEnd
					}
				}
			}

			if pos >= n {
				return nodes, stack, ErrUnexpectedEOF
			}
			c = compact[pos]
			pos++
			if c == ',' {
				continue valueStart
			}
			continue nodeEnd
		}
	}
}

// scanString advances pos past a string body, given pos already points
// just after the opening '"'. It stops just after the closing,
// unescaped '"'. Because Compact guarantees every '\' begins a valid
// 2-byte escape (either a canonical short form or \uXXXX, which by the
// time it reaches here is already real UTF-8 or \u00XX), the scanner
// only needs to skip one byte after every backslash -- it never needs to
// interpret what that byte is.
func scanString(compact []byte, pos int) (int, error) {
	n := len(compact)
	for {
		if pos >= n {
			return pos, ErrUnexpectedEOF
		}
		b := compact[pos]
		pos++
		if b == '"' {
			return pos, nil
		}
		if b == '\\' {
			if pos >= n {
				return pos, ErrUnexpectedEOF
			}
			pos++
		}
	}
}
