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

import "testing"

// [0]{children:2} [1]key [2]value, an empty array {children:0}
// represents {"k":[]}  -- a one-key object whose value is an empty array.
func sampleNodes() Nodes {
	return Nodes{
		{Children: 2, LengthInBytes: 8}, // {"k":[]}
		{Children: 0, LengthInBytes: 3}, // "k"
		{Children: 0, LengthInBytes: 2}, // []
	}
}

func TestNodesSibling(t *testing.T) {
	ns := sampleNodes()
	if got := ns.Sibling(0); got != 3 {
		t.Errorf("Sibling(0) = %d, want 3 (one past the array)", got)
	}
	if got := ns.Sibling(1); got != 2 {
		t.Errorf("Sibling(1) = %d, want 2", got)
	}
}

func TestNodesFirstChild(t *testing.T) {
	ns := sampleNodes()
	if first, ok := ns.FirstChild(0); !ok || first != 1 {
		t.Errorf("FirstChild(0) = (%d, %v), want (1, true)", first, ok)
	}
	if _, ok := ns.FirstChild(1); ok {
		t.Error("FirstChild(1) should report no children for a leaf")
	}
}

func TestNodesLastDescendant(t *testing.T) {
	ns := sampleNodes()
	if got := ns.LastDescendant(0); got != 2 {
		t.Errorf("LastDescendant(0) = %d, want 2", got)
	}
	if got := ns.LastDescendant(1); got != 1 {
		t.Errorf("LastDescendant(1) = %d, want 1 (leaf is its own last descendant)", got)
	}
}
