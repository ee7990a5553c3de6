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

package pizza

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a pizza. The API sends numeric ids, user input arrives as text,
// so both JSON forms are accepted.
type ID string

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("pizza id must be a number or string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(id), 64); err == nil && json.Valid([]byte(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Pizza is a catalog entry. Price is only set by the priced endpoints.
type Pizza struct {
	ID          ID       `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Ingredients []string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
}

// IngredientPriceMap maps an ingredient symbol to its unit price.
type IngredientPriceMap map[string]float64

// PriceResult is the price lookup answer for a single pizza.
type PriceResult struct {
	ID          ID       `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Ingredients []string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
}

// CustomPriceResult is the answer of the compute endpoint. Depending on the
// server version the amount is reported as price or as total. Ingredients
// echoes the server's normalized view of the requested list.
type CustomPriceResult struct {
	Price       *float64 `json:"price,omitempty" yaml:"price,omitempty"`
	Total       *float64 `json:"total,omitempty" yaml:"total,omitempty"`
	Ingredients []string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`

	// Raw is the payload exactly as received, unknown fields included.
	Raw json.RawMessage `json:"-" yaml:"-"`
}

// UnmarshalJSON decodes the known fields and keeps a copy of the raw payload.
func (r *CustomPriceResult) UnmarshalJSON(b []byte) error {
	type plain CustomPriceResult
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = CustomPriceResult(p)
	r.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// Amount returns the computed price, falling back to the total.
func (r CustomPriceResult) Amount() (float64, bool) {
	switch {
	case r.Price != nil:
		return *r.Price, true
	case r.Total != nil:
		return *r.Total, true
	default:
		return 0, false
	}
}

// envelope is the wrapper every successful response uses.
type envelope[T any] struct {
	Data T `json:"data"`
}

type computeRequest struct {
	Ingredients []string `json:"ingredients"`
}
