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

// SerializerOption configures a Serializer at construction time.
type SerializerOption func(s *Serializer)

// WithCompressMode sets the compression mode used for both the compact
// byte segment and the node segment of the serialized form.
// Default: CompressDefault.
func WithCompressMode(c CompressMode) SerializerOption {
	return func(s *Serializer) {
		s.CompressMode(c)
	}
}

// WithMaxBlockSize bounds the compressed block size Deserialize will
// accept, guarding against corrupt or hostile length-prefixed input.
// Default: 1<<31.
func WithMaxBlockSize(n uint64) SerializerOption {
	return func(s *Serializer) {
		s.maxBlockSize = n
	}
}
