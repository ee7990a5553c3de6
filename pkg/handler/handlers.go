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

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/errors"
	"github.com/pizzalab/pizza-tester/pkg/pizza"
	"github.com/pizzalab/pizza-tester/pkg/render"
	"github.com/pizzalab/pizza-tester/pkg/ui"
)

// Titles shown above the output region.
const (
	TitleAllPizzas        = "📋 All Pizzas"
	TitlePizzaDetails     = "🔍 Pizza Details"
	TitlePizzasWithPrices = "💰 Pizzas With Prices"
	TitleIngredientPrices = "🧾 Ingredient Prices"
	TitleSearchResults    = "🔎 Search Results"
	TitlePizzaPrice       = "💵 Pizza Price"
	TitleCustomPrice      = "🎨 Custom Pizza Price"
	TitleInputRequired    = "⚠️ Input Required"
)

// Input warnings.
const (
	MsgEnterPizzaID        = "Please enter a Pizza ID"
	MsgEnterIngredients    = "Please enter ingredients (e.g., 🍅,🧀)"
	MsgEnterCustomToppings = "Please enter ingredients (e.g., 🍅,🧀,🍄)"
)

// API is the subset of the pizza client the actions use.
type API interface {
	GetAllPizzas(ctx context.Context) ([]pizza.Pizza, error)
	GetPizzaByID(ctx context.Context, id string) (pizza.Pizza, error)
	GetPizzasWithPrices(ctx context.Context) ([]pizza.Pizza, error)
	GetIngredientPrices(ctx context.Context) (pizza.IngredientPriceMap, error)
	SearchPizzasByIngredients(ctx context.Context, ingredients []string) ([]pizza.Pizza, error)
	GetPizzaPrice(ctx context.Context, id string) (pizza.PriceResult, error)
	ComputeCustomPizzaPrice(ctx context.Context, ingredients []string) (pizza.CustomPriceResult, error)
}

// Option configures Handlers.
type Option func(*Handlers)

// WithMinDelay sets the minimum time the loading state stays visible.
func WithMinDelay(d time.Duration) Option {
	return func(h *Handlers) {
		h.minDelay = d
	}
}

// Handlers runs user actions against an API and renders into a controller.
type Handlers struct {
	api      API
	ui       *ui.Controller
	minDelay time.Duration
}

// New returns the actions bound to api and controller.
func New(api API, controller *ui.Controller, options ...Option) *Handlers {
	h := &Handlers{
		api:      api,
		ui:       controller,
		minDelay: defaults.MinLoadingDelay,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Controller returns the controller the actions render into.
func (h *Handlers) Controller() *ui.Controller {
	return h.ui
}

// GetAllPizzas lists every pizza.
func (h *Handlers) GetAllPizzas(ctx context.Context) {
	gen := h.ui.ShowLoading()
	pizzas, err := ui.FetchWithMinDelay(ctx, h.minDelay, h.api.GetAllPizzas)
	if err != nil {
		h.fail(gen, "get all pizzas", err)
		return
	}
	h.ui.DisplayResultsFor(gen, TitleAllPizzas, render.PizzaGrid(pizzas, false))
}

// GetPizzaByID shows the pizza whose id is in the pizzaId field.
func (h *Handlers) GetPizzaByID(ctx context.Context) {
	id := h.ui.GetInputValue(ui.FieldPizzaID)
	if id == "" {
		h.inputRequired(MsgEnterPizzaID)
		return
	}

	gen := h.ui.ShowLoading()
	p, err := ui.FetchWithMinDelay(ctx, h.minDelay, func(ctx context.Context) (pizza.Pizza, error) {
		return h.api.GetPizzaByID(ctx, id)
	})
	if err != nil {
		h.fail(gen, "get pizza by id", err, "id", id)
		return
	}
	h.ui.DisplayResultsFor(gen, TitlePizzaDetails, render.PizzaGrid([]pizza.Pizza{p}, false))
}

// GetPizzasWithPrices lists every pizza with its price badge.
func (h *Handlers) GetPizzasWithPrices(ctx context.Context) {
	gen := h.ui.ShowLoading()
	pizzas, err := ui.FetchWithMinDelay(ctx, h.minDelay, h.api.GetPizzasWithPrices)
	if err != nil {
		h.fail(gen, "get pizzas with prices", err)
		return
	}
	h.ui.DisplayResultsFor(gen, TitlePizzasWithPrices, render.PizzaGrid(pizzas, true))
}

// GetIngredientPrices shows the unit price of every ingredient.
func (h *Handlers) GetIngredientPrices(ctx context.Context) {
	gen := h.ui.ShowLoading()
	prices, err := ui.FetchWithMinDelay(ctx, h.minDelay, h.api.GetIngredientPrices)
	if err != nil {
		h.fail(gen, "get ingredient prices", err)
		return
	}
	h.ui.DisplayResultsFor(gen, TitleIngredientPrices, render.IngredientPrices(prices))
}

// SearchPizzas searches by the comma separated symbols in the searchIngredients field.
func (h *Handlers) SearchPizzas(ctx context.Context) {
	ingredients := pizza.ParseIngredients(h.ui.GetInputValue(ui.FieldSearchIngredients))
	if len(ingredients) == 0 {
		h.inputRequired(MsgEnterIngredients)
		return
	}

	gen := h.ui.ShowLoading()
	pizzas, err := ui.FetchWithMinDelay(ctx, h.minDelay, func(ctx context.Context) ([]pizza.Pizza, error) {
		return h.api.SearchPizzasByIngredients(ctx, ingredients)
	})
	if err != nil {
		h.fail(gen, "search pizzas", err, "ingredients", ingredients)
		return
	}

	if len(pizzas) == 0 {
		h.ui.DisplayResultsFor(gen, TitleSearchResults, render.NoSearchResults(ingredients))
		return
	}
	title := fmt.Sprintf("%s (%s)", TitleSearchResults, strings.Join(ingredients, " "))
	h.ui.DisplayResultsFor(gen, title, render.PizzaGrid(pizzas, false))
}

// GetPizzaPrice shows the price of the pizza whose id is in the priceId field.
func (h *Handlers) GetPizzaPrice(ctx context.Context) {
	id := h.ui.GetInputValue(ui.FieldPriceID)
	if id == "" {
		h.inputRequired(MsgEnterPizzaID)
		return
	}

	gen := h.ui.ShowLoading()
	res, err := ui.FetchWithMinDelay(ctx, h.minDelay, func(ctx context.Context) (pizza.PriceResult, error) {
		return h.api.GetPizzaPrice(ctx, id)
	})
	if err != nil {
		h.fail(gen, "get pizza price", err, "id", id)
		return
	}
	h.ui.DisplayResultsFor(gen, TitlePizzaPrice, render.PizzaPrice(res, id))
}

// ComputeCustomPrice prices the comma separated symbols in the customIngredients field.
func (h *Handlers) ComputeCustomPrice(ctx context.Context) {
	ingredients := pizza.ParseIngredients(h.ui.GetInputValue(ui.FieldCustomIngredients))
	if len(ingredients) == 0 {
		h.inputRequired(MsgEnterCustomToppings)
		return
	}

	gen := h.ui.ShowLoading()
	res, err := ui.FetchWithMinDelay(ctx, h.minDelay, func(ctx context.Context) (pizza.CustomPriceResult, error) {
		return h.api.ComputeCustomPizzaPrice(ctx, ingredients)
	})
	if err != nil {
		h.fail(gen, "compute custom price", err, "ingredients", ingredients)
		return
	}
	h.ui.DisplayResultsFor(gen, TitleCustomPrice, render.CustomPizzaPrice(ingredients, res))
}

func (h *Handlers) inputRequired(message string) {
	h.ui.DisplayResults(TitleInputRequired, render.Warning(message))
}

func (h *Handlers) fail(gen uint64, action string, err error, attrs ...any) {
	shown := h.ui.ShowErrorFor(gen, err)
	code := errors.CodeOf(err)
	slog.Warn("action failed",
		append([]any{"action", action, "error", err, "code", code,
			"retryable", errors.IsRetryable(code), "shown", shown}, attrs...)...)
}
