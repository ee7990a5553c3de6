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
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/errors"
	"github.com/pizzalab/pizza-tester/pkg/ui"
)

// Element ids of the page buttons.
const (
	BtnGetAllPizzas        = "btn-get-all-pizzas"
	BtnGetPizzaByID        = "btn-get-pizza-by-id"
	BtnGetPizzasWithPrices = "btn-get-pizzas-with-prices"
	BtnGetIngredientPrices = "btn-get-ingredient-prices"
	BtnSearchByIngredients = "btn-search-by-ingredients"
	BtnGetPizzaPrice       = "btn-get-pizza-price"
	BtnComputeCustomPrice  = "btn-compute-custom-price"

	SubmitPizzaByID    = "submit-pizza-by-id"
	SubmitSearchPizzas = "submit-search-pizzas"
	SubmitPizzaPrice   = "submit-pizza-price"
	SubmitCustomPrice  = "submit-custom-price"
)

// KeyEnter is the only key that triggers an action from an input field.
const KeyEnter = "Enter"

// Binding is what an element triggers.
type Binding struct {
	// Label is the button text.
	Label string
	// Async marks actions that call the API and run in the background.
	Async bool
	Run   func(ctx context.Context)
}

// Button is a page button in display order.
type Button struct {
	ID    string
	Label string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithActionTimeout bounds each asynchronous action.
func WithActionTimeout(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) {
		dp.timeout = d
	}
}

// Dispatcher maps element ids to actions. Bindings are fixed at construction.
type Dispatcher struct {
	clicks  map[string]Binding
	keys    map[string]string
	buttons []Button
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher binds every page element to its action.
func NewDispatcher(h *Handlers, options ...DispatcherOption) *Dispatcher {
	show := func(kind string) func(context.Context) {
		return func(context.Context) {
			if err := h.Controller().ShowInput(kind); err != nil {
				slog.Error("failed to show input panel", "kind", kind, "error", err)
			}
		}
	}

	d := &Dispatcher{
		clicks: map[string]Binding{
			BtnGetAllPizzas:        {Label: "📋 All Pizzas", Async: true, Run: h.GetAllPizzas},
			BtnGetPizzaByID:        {Label: "🔍 Pizza by ID", Run: show(ui.PanelByID)},
			BtnGetPizzasWithPrices: {Label: "💰 Pizzas with Prices", Async: true, Run: h.GetPizzasWithPrices},
			BtnGetIngredientPrices: {Label: "🧾 Ingredient Prices", Async: true, Run: h.GetIngredientPrices},
			BtnSearchByIngredients: {Label: "🔎 Search by Ingredients", Run: show(ui.PanelSearch)},
			BtnGetPizzaPrice:       {Label: "💵 Pizza Price", Run: show(ui.PanelPrice)},
			BtnComputeCustomPrice:  {Label: "🎨 Custom Pizza Price", Run: show(ui.PanelCustom)},

			SubmitPizzaByID:    {Label: "Get Pizza", Async: true, Run: h.GetPizzaByID},
			SubmitSearchPizzas: {Label: "Search", Async: true, Run: h.SearchPizzas},
			SubmitPizzaPrice:   {Label: "Get Price", Async: true, Run: h.GetPizzaPrice},
			SubmitCustomPrice:  {Label: "Compute Price", Async: true, Run: h.ComputeCustomPrice},
		},
		keys: map[string]string{
			ui.FieldPizzaID:           SubmitPizzaByID,
			ui.FieldSearchIngredients: SubmitSearchPizzas,
			ui.FieldPriceID:           SubmitPizzaPrice,
			ui.FieldCustomIngredients: SubmitCustomPrice,
		},
		timeout: defaults.ActionTimeout,
	}

	for _, id := range []string{
		BtnGetAllPizzas,
		BtnGetPizzaByID,
		BtnGetPizzasWithPrices,
		BtnGetIngredientPrices,
		BtnSearchByIngredients,
		BtnGetPizzaPrice,
		BtnComputeCustomPrice,
	} {
		d.buttons = append(d.buttons, Button{ID: id, Label: d.clicks[id].Label})
	}

	for _, opt := range options {
		opt(d)
	}
	return d
}

// Buttons returns the main action buttons in display order.
func (d *Dispatcher) Buttons() []Button {
	return append([]Button(nil), d.buttons...)
}

// Elements returns every bound element id, sorted.
func (d *Dispatcher) Elements() []string {
	ids := make([]string, 0, len(d.clicks))
	for id := range d.clicks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Label returns the text of a bound element.
func (d *Dispatcher) Label(elementID string) string {
	return d.clicks[elementID].Label
}

// Click triggers the action bound to elementID. Asynchronous actions are
// started and Click returns immediately.
func (d *Dispatcher) Click(ctx context.Context, elementID string) error {
	b, ok := d.clicks[elementID]
	if !ok {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown element",
			map[string]any{"element": elementID})
	}

	slog.Debug("dispatching click", "element", elementID, "async", b.Async)

	if !b.Async {
		b.Run(ctx)
		return nil
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		b.Run(actx)
	}()
	return nil
}

// KeyPress triggers the submit action of an input field when key is Enter.
// Other keys are ignored.
func (d *Dispatcher) KeyPress(ctx context.Context, fieldID, key string) error {
	submit, ok := d.keys[fieldID]
	if !ok {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown input field",
			map[string]any{"field": fieldID})
	}
	if key != KeyEnter {
		return nil
	}
	return d.Click(ctx, submit)
}

// Wait blocks until every started action has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
