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

// Package indolent implements a lazy JSON processing core: compact,
// structurally index, and validate JSON text without ever materializing
// a value tree.
//
// The pipeline has three stages. Compact strips insignificant whitespace
// and re-canonicalizes string escapes into a single bit-stable byte form.
// Parse walks those compact bytes once and produces a flat, pre-order
// array of Node descriptors -- each one just a child count and a byte
// length, nothing more. Validate then walks the compact bytes again,
// guided by the node array, to confirm the input was actually
// well-formed JSON rather than something the parser's fast path merely
// tolerated.
//
// None of the three stages unescape a string, parse a number, or build
// a key/value map. Callers that need a value still have to ask for one;
// this package only ever hands back byte spans and structure.
package indolent
