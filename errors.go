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

import "errors"

// Each stage of the pipeline reports exactly one error: the rich
// diagnostics a caller might want (which byte, which rule) cost more to
// produce than the hot path is willing to pay. A caller that needs to
// know *why* something is malformed should re-run Validate, or track the
// byte offset itself while re-scanning with the standard library's
// encoding/json for comparison.
var (
	// ErrMalformedJSON is returned by Compact when the input is
	// truncated inside a string, a \uXXXX escape, or a surrogate pair.
	ErrMalformedJSON = errors.New("indolent: malformed json")

	// ErrUnexpectedEOF is returned by Parse when the input ends before
	// a value, key, or closing bracket that the structural state machine
	// expected to find.
	ErrUnexpectedEOF = errors.New("indolent: unexpected end of input")

	// ErrInvalidJSON is returned by Validate when the compact bytes
	// deviate from strict JSON as narrowed by this package's rules
	// (lowercase literals, no trailing garbage, canonical numbers, no
	// bare \/ escapes, and so on).
	ErrInvalidJSON = errors.New("indolent: invalid json")

	// ErrInvalidEscape is returned by Unescape for an unrecognized
	// \X escape or a \X cut off before its argument.
	ErrInvalidEscape = errors.New("indolent: invalid escape sequence")
)
