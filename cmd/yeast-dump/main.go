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

// Command yeast-dump tokenizes a YAML file (or stdin) and prints its flat
// YEAST token stream, one line per token: byte offset, code, and the
// token's text (or its static text for synthetic tokens).
package main

import (
	"fmt"
	"os"

	"cuelabs.dev/go/yeast"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "yeast-dump:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	src, err := yeast.OpenSourcePath(path)
	if err != nil {
		return err
	}
	defer src.Close()

	p, err := yeast.OpenParser(src, "l-yaml-stream", yeast.WithOwnedSource())
	if err != nil {
		return err
	}
	defer p.Close()

	for {
		tok, ok, err := p.NextToken()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fmt.Printf("%d %c %q\n", tok.ByteOffset, byte(tok.Code), p.Bytes(tok))
	}
}
