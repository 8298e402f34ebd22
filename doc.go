// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yeast is an incremental, streaming tokenizer for YAML 1.2. It
// decodes a byte source one character at a time and emits a flat stream
// of typed tokens (YEAST: "Yaml Elaborate Syntax Tree") describing
// structural boundaries, content text, indentation, line breaks, and
// errors, without building a parse tree: callers assemble whatever
// structure they need from the token stream themselves.
//
// Tokens are zero-copy: their bytes reference the source's current
// window rather than being materialized into new strings, so a token
// must be read before the source advances past it; see [Token.Bytes].
package yeast
