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

func TestEscapeControlCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\x00\x01\x02\x03\x04\x05\x06\x07", "\\u0000\\u0001\\u0002\\u0003\\u0004\\u0005\\u0006\\u0007"},
		{"\x08\x09\x0A\x0B\x0C\x0D\x0E\x0F", "\\b\\t\\n\\u000B\\f\\r\\u000E\\u000F"},
		{"\x10\x11\x12\x13\x14\x15\x16\x17", "\\u0010\\u0011\\u0012\\u0013\\u0014\\u0015\\u0016\\u0017"},
		{"\x18\x19\x1A\x1B\x1C\x1D\x1E\x1F", "\\u0018\\u0019\\u001A\\u001B\\u001C\\u001D\\u001E\\u001F"},
		{"\x00 ", "\\u0000 "},
		{" \x00", " \\u0000"},
	}
	for _, tt := range tests {
		got := Escape([]byte(tt.in))
		if string(got) != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnescapeControlCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\\u0000\\u0001\\u0002\\u0003\\u0004\\u0005\\u0006\\u0007", "\x00\x01\x02\x03\x04\x05\x06\x07"},
		{"\\b\\t\\n\\u000B\\f\\r\\u000E\\u000F", "\x08\x09\x0A\x0B\x0C\x0D\x0E\x0F"},
		{"\\u0010\\u0011\\u0012\\u0013\\u0014\\u0015\\u0016\\u0017", "\x10\x11\x12\x13\x14\x15\x16\x17"},
		{"\\u0018\\u0019\\u001A\\u001B\\u001C\\u001D\\u001E\\u001F", "\x18\x19\x1A\x1B\x1C\x1D\x1E\x1F"},
		{"\\u0000 ", "\x00 "},
		{" \\u0000", " \x00"},
	}
	for _, tt := range tests {
		got, err := Unescape([]byte(tt.in))
		if err != nil {
			t.Fatalf("Unescape(%q): %v", tt.in, err)
		}
		if string(got) != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeSlashAndQuote(t *testing.T) {
	got := Escape([]byte("\"\\"))
	want := "\\\"\\\\"
	if string(got) != want {
		t.Errorf("Escape(%q) = %q, want %q", "\"\\", got, want)
	}
}

func TestUnescapeSlashAndQuote(t *testing.T) {
	got, err := Unescape([]byte("\\\"\\\\"))
	if err != nil {
		t.Fatal(err)
	}
	want := "\"\\"
	if string(got) != want {
		t.Errorf("Unescape(%q) = %q, want %q", "\\\"\\\\", got, want)
	}
}

func TestUnescapeInvalidEscape(t *testing.T) {
	tests := []string{"\\p", "\\", "\\u", "\\u0", "\\u00", "\\u000"}
	for _, in := range tests {
		if _, err := Unescape([]byte(in)); err != ErrInvalidEscape {
			t.Errorf("Unescape(%q) error = %v, want ErrInvalidEscape", in, err)
		}
	}
}

func TestUnescapeNoBackslashReturnsInputUnallocated(t *testing.T) {
	in := []byte("no escapes here")
	out, err := Unescape(in)
	if err != nil {
		t.Fatal(err)
	}
	if &in[0] != &out[0] {
		t.Error("Unescape allocated a new slice for input with no backslash")
	}
}

func TestEscapeNoSpecialBytesReturnsInputUnallocated(t *testing.T) {
	in := []byte("no special bytes here")
	out := Escape(in)
	if &in[0] != &out[0] {
		t.Error("Escape allocated a new slice for input needing no escaping")
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	in := []byte("plain \x01 and \"quoted\\slashed\" text \x1f")
	escaped := Escape(in)
	unescaped, err := Unescape(escaped)
	if err != nil {
		t.Fatal(err)
	}
	if string(unescaped) != string(in) {
		t.Errorf("round trip mismatch: got %q, want %q", unescaped, in)
	}
}

func TestUnescapeLossyHighCodepoint(t *testing.T) {
	// Exercises the documented quirk: Unescape only ever reads the last
	// two of a \uXXXX escape's four hex digits, so a codepoint that
	// needs all four hex digits (U+2603, SNOWMAN) does not decode to its
	// correct rune -- it decodes whatever the last two hex digits spell
	// as a single byte, discarding the first two.
	got, err := Unescape([]byte("\\u2603"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("Unescape(snowman escape) = %q, want a single lossy byte", got)
	}
	if got[0] != 0x03 {
		t.Errorf("Unescape(snowman escape)[0] = %#x, want %#x", got[0], 0x03)
	}
}
