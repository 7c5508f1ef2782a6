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

// Document bundles the two artifacts that come out of processing one
// JSON text: the compact byte stream and the flat node array describing
// its structure. Neither stage needs this pairing on its own -- Compact
// and Parse both take and return plain []byte/Nodes -- but almost every
// caller wants both together, plus the byte offsets a Cursor needs to
// slice spans, so this is what ParseDocument hands back.
//
// The original single-value Document this type replaces a streaming API
// for (the teacher's Parse/ParseND/Stream trio) only ever bundled one
// value at a time; this package keeps that scope deliberately narrow,
// see the Non-goals in SPEC_FULL.md.
type Document struct {
	// Compact is the canonicalized JSON byte stream: no insignificant
	// whitespace, escapes re-encoded per Compact's rules.
	Compact []byte
	// Nodes is the pre-order structural index over Compact.
	Nodes Nodes

	// offsets[i] is the byte offset in Compact where Nodes[i] begins.
	// It exists only to let Cursor answer Span/Bytes in O(1); nothing
	// in the wire format or the parser needs it, which is why it is
	// unexported rather than promoted into Node itself -- Node stays
	// exactly the two fields spec'd for the parser's own bookkeeping.
	offsets []uint32

	// stack is Parse's scratch buffer, kept here purely so repeated
	// ParseDocument calls on the same *Document reuse its backing array
	// instead of allocating a fresh one every time.
	stack []uint32
}

// ParseDocument runs Compact then Parse over raw, producing a Document.
// reuse, if non-nil, has its Compact, Nodes, and scratch buffers reused
// (truncated to 0 and grown as needed) instead of allocating new ones;
// pass nil to always allocate. This mirrors the teacher's
// Parse(b []byte, reuse *ParsedJson) (*ParsedJson, error) buffer-reuse
// contract: pass nil on first use, then keep passing back the *Document
// ParseDocument returned to reuse its buffers on every subsequent call.
func ParseDocument(raw []byte, reuse *Document) (*Document, error) {
	doc := reuse
	if doc == nil {
		doc = &Document{}
	}
	doc.Compact = doc.Compact[:0]
	doc.Nodes = doc.Nodes[:0]

	compact, err := Compact(doc.Compact, raw)
	if err != nil {
		doc.Compact = compact
		return doc, err
	}
	doc.Compact = compact

	nodes, stack, err := Parse(doc.Nodes, doc.stack[:0], doc.Compact)
	doc.Nodes = nodes
	doc.stack = stack
	if err != nil {
		return doc, err
	}

	doc.offsets = computeOffsets(doc.offsets[:0], doc.Nodes)
	return doc, nil
}

// Validate re-verifies that doc.Compact is actually well-formed JSON,
// guided by doc.Nodes. See Validate's own doc comment for what this
// does and does not check.
func (d *Document) Validate() error {
	return Validate(d.Compact, d.Nodes)
}

// Cursor returns a Cursor positioned at the document's root value.
func (d *Document) Cursor() Cursor {
	return NewCursor(d)
}

// computeOffsets derives each node's starting byte offset in compact
// from the node array alone -- no byte ever needs inspecting, because
// every separator between flat siblings (a ',' between array elements
// or object pairs, a ':' between a key and its value) is exactly one
// byte wide. A node's first child starts one byte past its own opening
// bracket; each following flat sibling starts one byte past the
// previous one's span.
func computeOffsets(dst []uint32, nodes Nodes) []uint32 {
	if len(nodes) == 0 {
		return dst
	}
	dst = append(dst, make([]uint32, len(nodes))...)
	dst[0] = 0

	type frame struct {
		limit      int    // last index belonging to this composite's subtree
		nextOffset uint32 // offset at which the next unplaced child begins
	}
	var stack []frame
	if nodes[0].Children > 0 {
		stack = append(stack, frame{limit: nodes.LastDescendant(0), nextOffset: 1})
	}

	for i := 1; i < len(nodes); i++ {
		for len(stack) > 0 && i > stack[len(stack)-1].limit {
			stack = stack[:len(stack)-1]
		}
		top := &stack[len(stack)-1]
		dst[i] = top.nextOffset
		top.nextOffset += nodes[i].LengthInBytes + 1
		if nodes[i].Children > 0 {
			stack = append(stack, frame{limit: nodes.LastDescendant(i), nextOffset: dst[i] + 1})
		}
	}
	return dst
}
