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
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/pizzalab/pizza-tester/pkg/pizza"
)

// Fallback labels for missing optional data.
const (
	UnnamedPizza     = "Unnamed Pizza"
	DefaultPizzaName = "Pizza"
	NoIngredients    = "No ingredients"
	NotAvailable     = "N/A"
)

//go:embed templates.html
var templatesHTML string

var templates = template.Must(template.New("render").Parse(templatesHTML))

type pizzaCard struct {
	ID          string
	Name        string
	Ingredients string
	Price       string
	HasPrice    bool
}

type pizzaGrid struct {
	Cards []pizzaCard
	Count int
}

type ingredientCard struct {
	Ingredient string
	Price      string
}

type ingredientGrid struct {
	Cards []ingredientCard
	Count int
}

type priceDetail struct {
	ID          string
	Name        string
	Ingredients string
	Price       string
}

type customPrice struct {
	Requested string
	Summary   string
	Price     string
	Raw       string
}

// PizzaGrid renders one card per pizza followed by a count summary.
// Price badges are only rendered when showPrice is set and the pizza has a price.
func PizzaGrid(pizzas []pizza.Pizza, showPrice bool) template.HTML {
	view := pizzaGrid{
		Cards: make([]pizzaCard, 0, len(pizzas)),
		Count: len(pizzas),
	}
	for _, p := range pizzas {
		card := pizzaCard{
			ID:          p.ID.String(),
			Name:        orDefault(p.Name, UnnamedPizza),
			Ingredients: joinOr(p.Ingredients, " ", NoIngredients),
		}
		if showPrice && p.Price != nil {
			card.HasPrice = true
			card.Price = FormatAmount(*p.Price)
		}
		view.Cards = append(view.Cards, card)
	}
	return execute("pizzaGrid", view)
}

// IngredientPrices renders one card per ingredient, ordered by symbol, and a count summary.
func IngredientPrices(prices pizza.IngredientPriceMap) template.HTML {
	keys := make([]string, 0, len(prices))
	for k := range prices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	view := ingredientGrid{
		Cards: make([]ingredientCard, 0, len(keys)),
		Count: len(keys),
	}
	for _, k := range keys {
		view.Cards = append(view.Cards, ingredientCard{
			Ingredient: k,
			Price:      FormatAmount(prices[k]),
		})
	}
	return execute("ingredientGrid", view)
}

// PizzaPrice renders the detail panel of a single price lookup. The id shown is
// the one the user asked for.
func PizzaPrice(res pizza.PriceResult, id string) template.HTML {
	view := priceDetail{
		ID:          id,
		Name:        orDefault(res.Name, DefaultPizzaName),
		Ingredients: strings.Join(res.Ingredients, " "),
		Price:       NotAvailable,
	}
	if res.Price != nil {
		view.Price = FormatAmount(*res.Price)
	}
	return execute("priceDetail", view)
}

// CustomPizzaPrice renders the computed price of a user defined ingredient list,
// with the raw server answer in a collapsible panel.
func CustomPizzaPrice(ingredients []string, res pizza.CustomPriceResult) template.HTML {
	view := customPrice{
		Requested: strings.Join(ingredients, " "),
		Summary:   strings.Join(ingredients, ", "),
		Price:     NotAvailable,
		Raw:       prettyJSON(res),
	}
	if len(res.Ingredients) > 0 {
		view.Summary = strings.Join(res.Ingredients, ", ")
	}
	if amount, ok := res.Amount(); ok {
		view.Price = FormatAmount(amount)
	}
	return execute("customPrice", view)
}

// NoSearchResults renders the notice shown when a search matched nothing.
func NoSearchResults(ingredients []string) template.HTML {
	return execute("noResults", strings.Join(ingredients, " "))
}

// Warning renders an input warning.
func Warning(message string) template.HTML {
	return execute("warning", message)
}

// ErrorPanel renders a failed action.
func ErrorPanel(message string) template.HTML {
	return execute("errorPanel", message)
}

// Loading renders the spinner placeholder.
func Loading() template.HTML {
	return execute("loading", nil)
}

// FormatAmount prints a number in its shortest form: 5, 12.5, 0.75.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		return template.HTML(template.HTMLEscapeString("render error: " + err.Error()))
	}
	return template.HTML(buf.String()) //nolint:gosec // produced by html/template
}

func prettyJSON(res pizza.CustomPriceResult) string {
	var buf bytes.Buffer
	if len(res.Raw) > 0 {
		if err := json.Indent(&buf, res.Raw, "", "  "); err == nil {
			return buf.String()
		}
		buf.Reset()
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOr(items []string, sep, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, sep)
}
