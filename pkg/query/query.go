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

// Package query filters command output with JMESPath expressions.
//
//	pizza list --query "[?contains(ingredients, '🍍')].name"
//
// Values are converted to their JSON form before the expression runs, so
// field names in expressions are the JSON names (id, name, ingredients,
// price).
package query

import (
	"encoding/json"
	"strings"

	"github.com/jmespath/go-jmespath"

	"github.com/pizzalab/pizza-tester/pkg/errors"
)

// Apply evaluates expr against the JSON form of value. A blank expression
// returns value unchanged.
func Apply(value any, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return value, nil
	}

	jp, err := Compile(expr)
	if err != nil {
		return nil, err
	}

	data, err := toJSONValue(value)
	if err != nil {
		return nil, err
	}

	result, err := jp.Search(data)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "query failed", err,
			map[string]any{"query": expr})
	}
	return result, nil
}

// Compile parses expr so a bad expression fails before any request is made.
func Compile(expr string) (*jmespath.JMESPath, error) {
	jp, err := jmespath.Compile(expr)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid query expression", err,
			map[string]any{"query": expr})
	}
	return jp, nil
}

func toJSONValue(value any) (any, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode value for query", err)
	}

	var data any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to decode value for query", err)
	}
	return data, nil
}
