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

// Node is a structural descriptor for one JSON value in the compact byte
// stream. It carries no value, no key, and no byte offset of its own --
// just enough to let a caller walk the tree and slice out byte spans on
// demand.
type Node struct {
	// Children is the count of all descendants under this node, not
	// just its direct children.
	Children uint32
	// LengthInBytes is the length of this value's span in the compact
	// byte stream, excluding any separating ',' or ':'.
	LengthInBytes uint32
}

// Nodes is the pre-order flat array produced by Parse. Index 0 is always
// the root.
type Nodes []Node

// Sibling returns the index of the node that follows node i's entire
// subtree -- its next sibling, or one past the end of the array if i is
// the last node at its depth.
func (ns Nodes) Sibling(i int) int {
	return i + 1 + int(ns[i].Children)
}

// FirstChild returns the index of node i's first child and whether i has
// any children at all.
func (ns Nodes) FirstChild(i int) (int, bool) {
	if ns[i].Children == 0 {
		return 0, false
	}
	return i + 1, true
}

// LastDescendant returns the index of the last node in i's subtree --
// i itself if i is a leaf.
func (ns Nodes) LastDescendant(i int) int {
	return i + int(ns[i].Children)
}
