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

package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/pizzalab/pizza-tester/pkg/pizza"
)

func TestPizzaGridOneCardPerPizza(t *testing.T) {
	for _, n := range []int{0, 1, 3, 12} {
		t.Run(fmt.Sprintf("%d pizzas", n), func(t *testing.T) {
			pizzas := make([]pizza.Pizza, 0, n)
			for i := range n {
				pizzas = append(pizzas, pizza.Pizza{
					ID:          pizza.ID(fmt.Sprint(i + 1)),
					Name:        fmt.Sprintf("Pizza %d", i+1),
					Ingredients: []string{"🍅"},
				})
			}

			out := string(PizzaGrid(pizzas, false))

			assert.Equal(t, n, strings.Count(out, "data-pizza-id="))
			assert.Contains(t, out, fmt.Sprintf("Total: <strong>%d</strong> pizza(s)", n))
		})
	}
}

func TestPizzaGridPriceBadge(t *testing.T) {
	margherita := pizza.Pizza{ID: "1", Name: "Margherita", Ingredients: []string{"🍅", "🧀"}}

	out := string(PizzaGrid([]pizza.Pizza{margherita}, true))
	assert.NotContains(t, out, "pizza-price", "no price field means no badge")

	margherita.Price = ptr.To(5.0)
	out = string(PizzaGrid([]pizza.Pizza{margherita}, true))
	assert.Contains(t, out, `<i class="bi bi-currency-dollar"></i>5</div>`)

	out = string(PizzaGrid([]pizza.Pizza{margherita}, false))
	assert.NotContains(t, out, "pizza-price", "badge hidden unless requested")
}

func TestPizzaGridFallbacks(t *testing.T) {
	out := string(PizzaGrid([]pizza.Pizza{{ID: "9"}}, false))

	assert.Contains(t, out, UnnamedPizza)
	assert.Contains(t, out, NoIngredients)
	assert.Contains(t, out, "ID: 9")
}

func TestPizzaGridEscapesNames(t *testing.T) {
	out := string(PizzaGrid([]pizza.Pizza{{ID: "1", Name: `<script>alert("x")</script>`}}, false))

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestIngredientPrices(t *testing.T) {
	prices := pizza.IngredientPriceMap{"🧀": 2.5, "🍅": 1, "🍄": 1.75}

	out := string(IngredientPrices(prices))

	assert.Equal(t, 3, strings.Count(out, "data-ingredient="))
	assert.Contains(t, out, "Total: <strong>3</strong> ingredient(s)")
	assert.Contains(t, out, "</i>2.5</div>")
	assert.Contains(t, out, "</i>1.75</div>")

	// deterministic ordering
	assert.Equal(t, out, string(IngredientPrices(prices)))
	assert.Less(t, strings.Index(out, `data-ingredient="🍄"`), strings.Index(out, `data-ingredient="🧀"`))
}

func TestIngredientPricesEmpty(t *testing.T) {
	out := string(IngredientPrices(nil))
	assert.Contains(t, out, "Total: <strong>0</strong> ingredient(s)")
}

func TestPizzaPrice(t *testing.T) {
	res := pizza.PriceResult{ID: "1", Name: "Margherita", Ingredients: []string{"🍅", "🧀"}, Price: ptr.To(12.5)}

	out := string(PizzaPrice(res, "1"))
	assert.Contains(t, out, "Margherita")
	assert.Contains(t, out, "ID: 1")
	assert.Contains(t, out, "🍅 🧀")
	assert.Contains(t, out, "</i>12.5</div>")
}

func TestPizzaPriceFallbacks(t *testing.T) {
	out := string(PizzaPrice(pizza.PriceResult{}, "42"))

	assert.Contains(t, out, ">"+DefaultPizzaName+"<")
	assert.Contains(t, out, "ID: 42")
	assert.NotContains(t, out, "pizza-ingredients", "ingredients block omitted when absent")
	assert.Contains(t, out, "</i>"+NotAvailable+"</div>")
}

func TestCustomPizzaPriceTotalFallback(t *testing.T) {
	raw := `{"total":7,"ingredients":["🍅","🍄"]}`
	var res pizza.CustomPriceResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))

	out := string(CustomPizzaPrice([]string{"🍅", "🍄"}, res))

	assert.Contains(t, out, "</i>7</div>")
	assert.Contains(t, out, "<strong>Ingredients:</strong> 🍅, 🍄")

	rawStart := strings.Index(out, "<pre")
	require.Positive(t, rawStart)
	rawPanel := out[rawStart:]
	assert.Contains(t, rawPanel, "&#34;total&#34;: 7")
	assert.Contains(t, rawPanel, "🍅")
	assert.Contains(t, rawPanel, "🍄")
	assert.Contains(t, out, "<details")
}

func TestCustomPizzaPriceFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		res  pizza.CustomPriceResult
		want string
	}{
		{"price", pizza.CustomPriceResult{Price: ptr.To(9.0), Total: ptr.To(7.0)}, "</i>9</div>"},
		{"total", pizza.CustomPriceResult{Total: ptr.To(7.0)}, "</i>7</div>"},
		{"none", pizza.CustomPriceResult{}, "</i>N/A</div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(CustomPizzaPrice([]string{"🍅"}, tt.res))
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCustomPizzaPriceSummaryUsesServerIngredients(t *testing.T) {
	res := pizza.CustomPriceResult{Total: ptr.To(3.0), Ingredients: []string{"🍅", "🧀"}}

	out := string(CustomPizzaPrice([]string{"tomato", "cheese"}, res))
	assert.Contains(t, out, "<strong>Ingredients:</strong> 🍅, 🧀")
	assert.Contains(t, out, "tomato cheese", "requested list still shown in the header")

	out = string(CustomPizzaPrice([]string{"🍅", "🧀"}, pizza.CustomPriceResult{Total: ptr.To(3.0)}))
	assert.Contains(t, out, "<strong>Ingredients:</strong> 🍅, 🧀")
}

func TestCustomPizzaPriceWithoutRaw(t *testing.T) {
	out := string(CustomPizzaPrice([]string{"🍅"}, pizza.CustomPriceResult{Price: ptr.To(2.0)}))
	assert.Contains(t, out, "&#34;price&#34;: 2")
}

func TestMessages(t *testing.T) {
	assert.Contains(t, string(Warning("Please enter a Pizza ID")), "Please enter a Pizza ID")
	assert.Contains(t, string(ErrorPanel("HTTP error! status: 404")), "<strong>Error:</strong> HTTP error! status: 404")
	assert.Contains(t, string(NoSearchResults([]string{"🍍", "🐟"})), "No pizzas found with ingredients: <strong>🍍 🐟</strong>")
	assert.Contains(t, string(Loading()), "spinner-border")
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		5:     "5",
		12.5:  "12.5",
		0.75:  "0.75",
		0:     "0",
		1e6:   "1000000",
		-2.25: "-2.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(in))
	}
}
