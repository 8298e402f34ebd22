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

package yeast_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/rogpeppe/go-internal/txtar"
	"golang.org/x/sync/errgroup"
	yamlv3 "go.yaml.in/yaml/v3"

	"cuelabs.dev/go/yeast"
)

// dumpTokens tokenizes src as a complete "l-yaml-stream" and renders each
// token as "<code> <quoted text>\n", matching cmd/yeast-dump's format
// minus the byte offset column.
func dumpTokens(t *testing.T, src string) string {
	t.Helper()
	p, err := yeast.OpenParser(yeast.OpenSourceString(src), "l-yaml-stream")
	qt.Assert(t, qt.IsNil(err))
	defer p.Close()

	var b strings.Builder
	for {
		tok, ok, err := p.NextToken()
		qt.Assert(t, qt.IsNil(err))
		if !ok {
			break
		}
		fmt.Fprintf(&b, "%c %q\n", byte(tok.Code), p.Bytes(tok))
	}
	return b.String()
}

func TestGoldenTokenStreams(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(files) > 0, true))

	for _, f := range files {
		f := f
		t.Run(filepath.Base(f), func(t *testing.T) {
			ar, err := txtar.ParseFile(f)
			qt.Assert(t, qt.IsNil(err))

			var input, want string
			for _, file := range ar.Files {
				switch file.Name {
				case "input":
					input = string(file.Data)
				case "tokens":
					want = string(file.Data)
				}
			}
			got := dumpTokens(t, input)
			qt.Assert(t, qt.Equals(got, want))
		})
	}
}

func TestBOMTokenPrecedesStream(t *testing.T) {
	src := "\xEF\xBB\xBFa"
	p, err := yeast.OpenParser(yeast.OpenSourceString(src), "l-yaml-stream")
	qt.Assert(t, qt.IsNil(err))
	defer p.Close()

	qt.Assert(t, qt.Equals(p.Encoding(), yeast.UTF8))

	var codes []byte
	var texts []string
	for {
		tok, ok, err := p.NextToken()
		qt.Assert(t, qt.IsNil(err))
		if !ok {
			break
		}
		codes = append(codes, byte(tok.Code))
		texts = append(texts, string(p.Bytes(tok)))
	}

	wantCodes := []byte{byte(yeast.BOM), byte(yeast.BeginRoot), byte(yeast.BeginDocument),
		byte(yeast.BeginNode), byte(yeast.Text), byte(yeast.EndNode), byte(yeast.EndDocument),
		byte(yeast.EndRoot), byte(yeast.Done)}
	qt.Assert(t, qt.DeepEquals(codes, wantCodes))
	qt.Assert(t, qt.Equals(texts[0], "UTF-8"))
	qt.Assert(t, qt.Equals(texts[4], "a"))
}

func TestNextTokenAfterDoneReturnsFalse(t *testing.T) {
	p, err := yeast.OpenParser(yeast.OpenSourceString(""), "l-yaml-stream")
	qt.Assert(t, qt.IsNil(err))
	defer p.Close()

	var last yeast.Token
	for {
		tok, ok, err := p.NextToken()
		qt.Assert(t, qt.IsNil(err))
		if !ok {
			break
		}
		last = tok
	}
	qt.Assert(t, qt.Equals(last.Code, yeast.Done))

	tok, ok, err := p.NextToken()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ok, false))
	qt.Assert(t, qt.DeepEquals(tok, yeast.Token{}))
}

// TestScalarContentMatchesReferenceYAML cross-checks, for the simplest
// possible document (a single bare plain scalar), that the scalar text
// this tokenizer extracts agrees with what an independent YAML 1.2
// implementation decodes the same document to.
func TestScalarContentMatchesReferenceYAML(t *testing.T) {
	const doc = "hello\n"

	var want string
	qt.Assert(t, qt.IsNil(yamlv3.Unmarshal([]byte(doc), &want)))

	p, err := yeast.OpenParser(yeast.OpenSourceString(doc), "l-yaml-stream")
	qt.Assert(t, qt.IsNil(err))
	defer p.Close()

	var got string
	for {
		tok, ok, err := p.NextToken()
		qt.Assert(t, qt.IsNil(err))
		if !ok {
			break
		}
		if tok.Code == yeast.Text {
			got = string(p.Bytes(tok))
		}
	}
	qt.Assert(t, qt.Equals(got, want))
}

// TestConcurrentParsersAreIndependent runs several tokenizations
// concurrently to confirm distinct *Parser instances (and the production
// registry they all read from) don't interfere with one another.
func TestConcurrentParsersAreIndependent(t *testing.T) {
	inputs := []string{"ok\n", "[a,b]\n", "{a:b}\n", "# hi\n", "plain\n"}

	var g errgroup.Group
	results := make([]string, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			p, err := yeast.OpenParser(yeast.OpenSourceString(in), "l-yaml-stream")
			if err != nil {
				return err
			}
			defer p.Close()
			var b strings.Builder
			for {
				tok, ok, err := p.NextToken()
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				fmt.Fprintf(&b, "%c", byte(tok.Code))
			}
			results[i] = b.String()
			return nil
		})
	}
	qt.Assert(t, qt.IsNil(g.Wait()))

	for _, r := range results {
		qt.Assert(t, qt.Equals(strings.HasPrefix(r, "RDN"), true))
		qt.Assert(t, qt.Equals(strings.HasSuffix(r, "r#"), true))
	}
}
