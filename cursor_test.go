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

func mustDoc(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(input), nil)
	if err != nil {
		t.Fatalf("ParseDocument(%q): %v", input, err)
	}
	return doc
}

func TestCursorKind(t *testing.T) {
	doc := mustDoc(t, `{"a":[1,"x",true],"b":null}`)
	root := doc.Cursor()
	if root.Kind() != KindObject {
		t.Fatalf("root Kind() = %v, want KindObject", root.Kind())
	}

	a, ok := root.Child()
	if !ok {
		t.Fatal("root.Child() ok = false")
	}
	if string(a.Bytes()) != `"a"` {
		t.Errorf(`key bytes = %q, want "a"`, a.Bytes())
	}
	if a.Kind() != KindString {
		t.Errorf("key Kind() = %v, want KindString", a.Kind())
	}

	arr := a.Value()
	if arr.Kind() != KindArray {
		t.Fatalf("value Kind() = %v, want KindArray", arr.Kind())
	}
	if string(arr.Bytes()) != `[1,"x",true]` {
		t.Errorf("array bytes = %q", arr.Bytes())
	}

	num, ok := arr.Child()
	if !ok {
		t.Fatal("arr.Child() ok = false")
	}
	if num.Kind() != KindLiteral || string(num.Bytes()) != "1" {
		t.Errorf("first element = %q kind %v, want literal 1", num.Bytes(), num.Kind())
	}

	str, ok := num.Next()
	if !ok || str.Kind() != KindString || string(str.Bytes()) != `"x"` {
		t.Fatalf(`second element = %q kind %v, ok %v, want "x"`, str.Bytes(), str.Kind(), ok)
	}

	lit, ok := str.Next()
	if !ok || lit.Kind() != KindLiteral || string(lit.Bytes()) != "true" {
		t.Fatalf("third element = %q kind %v, want literal true", lit.Bytes(), lit.Kind())
	}

	if _, ok := lit.Next(); ok {
		t.Error("Next() past last array element should report false")
	}
}

func TestCursorObjectChildren(t *testing.T) {
	doc := mustDoc(t, `{"a":1,"b":2,"c":3}`)
	root := doc.Cursor()
	if got := root.Children(); got != 3 {
		t.Fatalf("Children() = %d, want 3", got)
	}

	key, ok := root.Child()
	if !ok {
		t.Fatal("Child() ok = false")
	}
	names := []string{}
	for {
		names = append(names, string(key.Bytes()))
		// key.Next() lands on the paired value, not the following key;
		// step through the value to reach the next key.
		value := key.Value()
		var next bool
		key, next = value.Next()
		if !next {
			break
		}
	}
	want := []string{`"a"`, `"b"`, `"c"`}
	if len(names) != len(want) {
		t.Fatalf("got keys %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCursorArrayChildrenCount(t *testing.T) {
	doc := mustDoc(t, `[1,2,3,4]`)
	root := doc.Cursor()
	if got := root.Children(); got != 4 {
		t.Errorf("Children() = %d, want 4", got)
	}
}

func TestCursorEmptyCompositeHasNoChild(t *testing.T) {
	doc := mustDoc(t, `{"a":{},"b":[]}`)
	root := doc.Cursor()
	key, ok := root.Child()
	if !ok {
		t.Fatal("Child() ok = false")
	}
	emptyObj := key.Value()
	if emptyObj.Children() != 0 {
		t.Errorf("empty object Children() = %d, want 0", emptyObj.Children())
	}
	if _, ok := emptyObj.Child(); ok {
		t.Error("empty object Child() should report false")
	}
}

func TestCursorLiteralHasNoChildren(t *testing.T) {
	doc := mustDoc(t, `42`)
	root := doc.Cursor()
	if root.Kind() != KindLiteral {
		t.Fatalf("Kind() = %v, want KindLiteral", root.Kind())
	}
	if root.Children() != 0 {
		t.Errorf("Children() = %d, want 0", root.Children())
	}
	if _, ok := root.Child(); ok {
		t.Error("scalar Child() should report false")
	}
}

func TestCursorSpanAndIndex(t *testing.T) {
	doc := mustDoc(t, `[10,20]`)
	root := doc.Cursor()
	if root.Index() != 0 {
		t.Errorf("root Index() = %d, want 0", root.Index())
	}
	start, end := root.Span()
	if start != 0 || int(end) != len(doc.Compact) {
		t.Errorf("Span() = (%d, %d), want (0, %d)", start, end, len(doc.Compact))
	}

	first, _ := root.Child()
	if first.Index() != 1 {
		t.Errorf("first child Index() = %d, want 1", first.Index())
	}
	fs, fe := first.Span()
	if string(doc.Compact[fs:fe]) != "10" {
		t.Errorf("first child span = %q, want 10", doc.Compact[fs:fe])
	}
}

func TestCursorNextStopsAtContainerBoundary(t *testing.T) {
	doc := mustDoc(t, `[[1,2],3]`)
	root := doc.Cursor()
	inner, ok := root.Child()
	if !ok || inner.Kind() != KindArray {
		t.Fatalf("first element kind = %v, ok %v, want KindArray", inner.Kind(), ok)
	}
	one, ok := inner.Child()
	if !ok || string(one.Bytes()) != "1" {
		t.Fatalf("inner first child = %q, ok %v, want 1", one.Bytes(), ok)
	}
	two, ok := one.Next()
	if !ok || string(two.Bytes()) != "2" {
		t.Fatalf("inner second child = %q, ok %v, want 2", two.Bytes(), ok)
	}
	if _, ok := two.Next(); ok {
		t.Error("Next() past inner array's last element should report false, not leak into the outer array")
	}

	three, ok := inner.Next()
	if !ok || string(three.Bytes()) != "3" {
		t.Fatalf("outer second element = %q, ok %v, want 3", three.Bytes(), ok)
	}
}

func TestCursorNestedObjectsInArray(t *testing.T) {
	doc := mustDoc(t, `[{"x":1},{"y":2}]`)
	root := doc.Cursor()
	first, ok := root.Child()
	if !ok || first.Kind() != KindObject {
		t.Fatalf("first element kind = %v, ok %v, want KindObject", first.Kind(), ok)
	}
	if first.Children() != 1 {
		t.Errorf("first object Children() = %d, want 1", first.Children())
	}
	second, ok := first.Next()
	if !ok || second.Kind() != KindObject {
		t.Fatalf("second element kind = %v, ok %v, want KindObject", second.Kind(), ok)
	}
	if string(second.Bytes()) != `{"y":2}` {
		t.Errorf("second object bytes = %q", second.Bytes())
	}
}
