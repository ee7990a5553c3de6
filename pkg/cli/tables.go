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
	"sort"
	"strings"

	"github.com/pizzalab/pizza-tester/pkg/pizza"
	"github.com/pizzalab/pizza-tester/pkg/render"
)

const noValue = "-"

// pizzaTable prints one row per pizza.
type pizzaTable []pizza.Pizza

func (t pizzaTable) TableHeader() []string {
	return []string{"ID", "NAME", "INGREDIENTS", "PRICE"}
}

func (t pizzaTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, p := range t {
		rows = append(rows, []string{
			p.ID.String(),
			p.Name,
			joinIngredients(p.Ingredients),
			formatPrice(p.Price),
		})
	}
	return rows
}

// pizzaRow is a single pizza printed like a one row pizzaTable.
type pizzaRow pizza.Pizza

func (r pizzaRow) TableHeader() []string {
	return pizzaTable{}.TableHeader()
}

func (r pizzaRow) TableRows() [][]string {
	return pizzaTable{pizza.Pizza(r)}.TableRows()
}

// ingredientPriceTable prints ingredients sorted by symbol.
type ingredientPriceTable pizza.IngredientPriceMap

func (t ingredientPriceTable) TableHeader() []string {
	return []string{"INGREDIENT", "PRICE"}
}

func (t ingredientPriceTable) TableRows() [][]string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, render.FormatAmount(t[k])})
	}
	return rows
}

type priceRow pizza.PriceResult

func (r priceRow) TableHeader() []string {
	return pizzaTable{}.TableHeader()
}

func (r priceRow) TableRows() [][]string {
	return [][]string{{
		r.ID.String(),
		r.Name,
		joinIngredients(r.Ingredients),
		formatPrice(r.Price),
	}}
}

// customPriceRow falls back to the requested ingredients when the server
// does not echo them.
type customPriceRow struct {
	pizza.CustomPriceResult `yaml:",inline"`

	requested []string
}

func (r customPriceRow) TableHeader() []string {
	return []string{"INGREDIENTS", "PRICE"}
}

func (r customPriceRow) TableRows() [][]string {
	ingredients := r.Ingredients
	if len(ingredients) == 0 {
		ingredients = r.requested
	}
	price := noValue
	if amount, ok := r.Amount(); ok {
		price = render.FormatAmount(amount)
	}
	return [][]string{{joinIngredients(ingredients), price}}
}

func joinIngredients(ingredients []string) string {
	if len(ingredients) == 0 {
		return noValue
	}
	return strings.Join(ingredients, " ")
}

func formatPrice(p *float64) string {
	if p == nil {
		return noValue
	}
	return render.FormatAmount(*p)
}
