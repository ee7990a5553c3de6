// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package serializer writes command results as JSON, YAML or tables, and
// writes JSON and HTML HTTP responses.
//
// # Formats
//
// JSON: indented, for scripting and piping into other tools.
//
// YAML: gopkg.in/yaml.v3, two space indent.
//
// Table: text/tabwriter columns. Values implementing Tabular choose their
// own columns:
//
//	ID  NAME        INGREDIENTS  PRICE
//	1   Margherita  🍅, 🧀       8.5
//
// Anything else is flattened into FIELD/VALUE rows keyed by JSON field
// names:
//
//	FIELD       VALUE
//	-----       -----
//	[0].id      1
//	[0].name    Margherita
//
// # Usage
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//
//	if err := w.Serialize(ctx, pizzas); err != nil {
//	    return err
//	}
//
// An empty path writes to stdout. A path that cannot be created falls back
// to stdout with a logged error.
//
// # HTTP
//
// RespondJSON and RespondHTML buffer the body before writing headers so an
// encoding failure becomes a 500 instead of a truncated 200.
package serializer
