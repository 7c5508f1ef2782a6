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

import "github.com/klauspost/cpuid/v2"

// wideScanWindow reports how many bytes Compact's outer-mode bulk copy
// of plain (non-whitespace, non-quote) bytes should consume per SWAR step. On hosts with wide, fast 64-bit ALUs
// and efficient unaligned loads (anything with at least SSE2, which is
// to say every amd64 and the overwhelming majority of fielded arm64)
// an 8-byte lane beats scanning byte by byte. Elsewhere it falls back to
// one byte at a time rather than risk a misaligned-access fault or a
// slow emulated 64-bit multiply.
//
// Unlike the teacher's stage-1 structural scan, both paths here are
// portable scalar Go -- there is no assembly backing either branch, so
// this is purely a chunk-size heuristic, not a capability gate.
func wideScanWindow() int {
	if SupportedCPU() {
		return 8
	}
	return 1
}

// SupportedCPU reports whether the host exposes a 64-bit ALU fast enough
// to make 8-byte SWAR scanning worthwhile. Every modern amd64 and arm64
// host qualifies; it exists mainly to keep esoteric 32-bit targets off
// the wide path.
func SupportedCPU() bool {
	return cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD)
}
