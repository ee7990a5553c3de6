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

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"

	"github.com/pizzalab/pizza-tester/pkg/pizza"
)

func TestTables(t *testing.T) {
	t.Run("pizzas without price", func(t *testing.T) {
		rows := pizzaTable{{ID: "3", Name: "Plain"}}.TableRows()
		assert.Equal(t, [][]string{{"3", "Plain", noValue, noValue}}, rows)
	})

	t.Run("zero price is shown", func(t *testing.T) {
		rows := priceRow{ID: "1", Name: "Free", Price: ptr.To(0.0)}.TableRows()
		assert.Equal(t, "0", rows[0][3])
	})

	t.Run("ingredients sorted", func(t *testing.T) {
		rows := ingredientPriceTable{"🧀": 2, "🍄": 1.25, "🍅": 1}.TableRows()
		assert.Equal(t, [][]string{{"🍄", "1.25"}, {"🍅", "1"}, {"🧀", "2"}}, rows)
	})

	t.Run("custom price prefers echoed ingredients", func(t *testing.T) {
		row := customPriceRow{
			CustomPriceResult: pizza.CustomPriceResult{Price: ptr.To(4.0), Ingredients: []string{"🍅"}},
			requested:         []string{"🍅", "🧀"},
		}
		assert.Equal(t, [][]string{{"🍅", "4"}}, row.TableRows())

		row.Ingredients = nil
		row.Price = nil
		assert.Equal(t, [][]string{{"🍅 🧀", noValue}}, row.TableRows())
	})
}
