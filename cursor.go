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

// Kind classifies the byte span a Cursor points at by its leading byte.
// It is derived, never stored -- nothing in Node records it.
type Kind byte

const (
	KindObject Kind = '{'
	KindArray  Kind = '['
	KindString Kind = '"'
	// KindLiteral covers numbers, true, false and null: everything whose
	// span doesn't start with a structural or string byte. Distinguishing
	// among them means looking at the bytes, which is exactly what this
	// package declines to do on the caller's behalf.
	KindLiteral Kind = 0
)

// Cursor is a read-only position over a Document: an index into Nodes
// paired with the compact byte stream the nodes describe. It never
// copies, unescapes, or parses; it only computes spans and offsets that
// were already implicit in the Node array.
//
// A Cursor is a value type. Moving it (Child, Next, Value) does not
// mutate the Document it was built from, so cursors can be copied,
// stored, and compared cheaply.
type Cursor struct {
	nodes   Nodes
	compact []byte
	offsets []uint32
	index   int
	// limit is one past the last index a sibling of this node may occupy:
	// the boundary of the enclosing container, or len(nodes) at the root
	// level. It bounds Next so that walking off the last child of a
	// nested container reports false instead of wandering into the
	// enclosing container's next sibling.
	limit int
}

// NewCursor returns a Cursor positioned at the root of doc, using the
// byte offsets ParseDocument or Deserialize already derived for doc.
// Child, Next, and Value only need the node array's children counts, so
// they work even on a Document built by hand with no offsets; Kind,
// Children, Span, and Bytes read the offsets and panic without them.
func NewCursor(doc *Document) Cursor {
	return Cursor{
		nodes:   doc.Nodes,
		compact: doc.Compact,
		offsets: doc.offsets,
		index:   0,
		limit:   len(doc.Nodes),
	}
}

// Valid reports whether the cursor still points inside the node array.
// The zero Cursor that Child or Next return alongside false is invalid;
// both report that case via their bool result, so Valid mainly matters
// for a Cursor obtained some other way.
func (c Cursor) Valid() bool {
	return c.index >= 0 && c.index < len(c.nodes)
}

// Kind reports what sort of value the cursor is positioned on.
func (c Cursor) Kind() Kind {
	b := c.compact[c.offsets[c.index]]
	switch b {
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	default:
		return KindLiteral
	}
}

// Span returns the byte range [start, end) of the cursor's current
// value within the Document's compact bytes.
func (c Cursor) Span() (start, end uint32) {
	start = c.offsets[c.index]
	return start, start + c.nodes[c.index].LengthInBytes
}

// Bytes returns the raw compact bytes of the cursor's current value,
// still escaped if it is a string. Callers that need the decoded text
// of a string value must pass this to Unescape themselves -- Cursor
// never does it for them.
func (c Cursor) Bytes() []byte {
	start, end := c.Span()
	return c.compact[start:end]
}

// Children returns the number of direct children under the cursor: 0
// for anything that is not an object or array, the key/value pair count
// for an object (not doubled), and the element count for an array.
func (c Cursor) Children() int {
	if !c.hasComposite() {
		return 0
	}
	first, ok := c.nodes.FirstChild(c.index)
	if !ok {
		return 0
	}
	n := 0
	i := first
	last := c.nodes.LastDescendant(c.index)
	for i <= last {
		n++
		if c.Kind() == KindObject {
			// Skip the paired value node; the key we just counted
			// stands for both.
			i = c.nodes.Sibling(i)
			i = c.nodes.Sibling(i)
		} else {
			i = c.nodes.Sibling(i)
		}
	}
	return n
}

func (c Cursor) hasComposite() bool {
	k := c.Kind()
	return k == KindObject || k == KindArray
}

// Child returns a cursor positioned at the current node's first child
// (the first element of an array, or the first key of an object) and
// whether one exists.
func (c Cursor) Child() (Cursor, bool) {
	first, ok := c.nodes.FirstChild(c.index)
	if !ok {
		return Cursor{}, false
	}
	c.limit = c.nodes.Sibling(c.index)
	c.index = first
	return c, true
}

// Next returns a cursor positioned at the sibling following the current
// node's entire subtree, and whether one exists within the same parent.
// For a key node inside an object, Next lands on the key's paired value,
// not the following key -- use Value for that pairing explicitly.
func (c Cursor) Next() (Cursor, bool) {
	sib := c.nodes.Sibling(c.index)
	if sib >= c.limit {
		return Cursor{}, false
	}
	c.index = sib
	return c, true
}

// Value returns the cursor positioned at this key node's paired value.
// Callers walking an object via Child/Next land on key nodes; Value is
// how they reach what the key maps to.
func (c Cursor) Value() Cursor {
	c.index = c.nodes.Sibling(c.index)
	return c
}

// Index returns the cursor's position in the owning Document's Nodes
// array, for callers that want to record or compare positions directly.
func (c Cursor) Index() int {
	return c.index
}
