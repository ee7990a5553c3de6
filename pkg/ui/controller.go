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

package ui

import (
	stderrors "errors"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/pizzalab/pizza-tester/pkg/errors"
	"github.com/pizzalab/pizza-tester/pkg/render"
)

// State is the state of the output region.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateResult  State = "result"
	StateError   State = "error"
)

// ErrorTitle is the heading of the error panel.
const ErrorTitle = "❌ Error"

// Input panel kinds.
const (
	PanelByID   = "byId"
	PanelSearch = "search"
	PanelPrice  = "price"
	PanelCustom = "custom"
)

// Input field ids.
const (
	FieldPizzaID           = "pizzaId"
	FieldSearchIngredients = "searchIngredients"
	FieldPriceID           = "priceId"
	FieldCustomIngredients = "customIngredients"
)

// Region is a snapshot of the output region.
type Region struct {
	State      State         `json:"state"`
	Title      string        `json:"title,omitempty"`
	Body       template.HTML `json:"body,omitempty"`
	Generation uint64        `json:"generation"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Panel describes one input panel and the field it collects.
type Panel struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Field       string `json:"field"`
	Placeholder string `json:"placeholder"`
	Submit      string `json:"submit"`
	Active      bool   `json:"active"`
}

// ID is the element id of the panel.
func (p Panel) ID() string {
	return "input-" + p.Kind
}

var defaultPanels = []Panel{
	{Kind: PanelByID, Label: "Pizza ID", Field: FieldPizzaID, Placeholder: "e.g. 1", Submit: "submit-pizza-by-id"},
	{Kind: PanelSearch, Label: "Ingredients", Field: FieldSearchIngredients, Placeholder: "e.g. 🍅,🧀", Submit: "submit-search-pizzas"},
	{Kind: PanelPrice, Label: "Pizza ID", Field: FieldPriceID, Placeholder: "e.g. 1", Submit: "submit-pizza-price"},
	{Kind: PanelCustom, Label: "Ingredients", Field: FieldCustomIngredients, Placeholder: "e.g. 🍅,🧀,🍄", Submit: "submit-custom-price"},
}

// Controller owns the output region, the input panels and the input fields.
type Controller struct {
	mu         sync.RWMutex
	region     Region
	generation uint64
	panels     []Panel
	active     string
	inputs     map[string]string
	now        func() time.Time
}

// NewController returns a controller with an idle region and no active panel.
func NewController() *Controller {
	c := &Controller{
		panels: append([]Panel(nil), defaultPanels...),
		inputs: make(map[string]string, len(defaultPanels)),
		now:    time.Now,
	}
	c.region = Region{State: StateIdle, UpdatedAt: c.now()}
	return c
}

// Region returns the current region snapshot.
func (c *Controller) Region() Region {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.region
}

// ShowLoading puts the region into the loading state and returns the
// generation the caller must finish with.
func (c *Controller) ShowLoading() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(StateLoading, "", render.Loading())
}

// DisplayResults shows a heading and arbitrary markup. It always lands and
// invalidates any action still in flight.
func (c *Controller) DisplayResults(title string, body template.HTML) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(StateResult, title, body)
}

// ShowError shows the error panel. It always lands and invalidates any
// action still in flight.
func (c *Controller) ShowError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeLocked(StateError, ErrorTitle, render.ErrorPanel(ErrorMessage(err)))
}

// DisplayResultsFor shows results for generation gen. It reports false and
// leaves the region untouched when gen is no longer current.
func (c *Controller) DisplayResultsFor(gen uint64, title string, body template.HTML) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.setLocked(StateResult, title, body)
	return true
}

// ShowErrorFor shows an error for generation gen. It reports false and
// leaves the region untouched when gen is no longer current.
func (c *Controller) ShowErrorFor(gen uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.setLocked(StateError, ErrorTitle, render.ErrorPanel(ErrorMessage(err)))
	return true
}

func (c *Controller) writeLocked(state State, title string, body template.HTML) uint64 {
	c.generation++
	c.setLocked(state, title, body)
	return c.generation
}

func (c *Controller) setLocked(state State, title string, body template.HTML) {
	c.region = Region{
		State:      state,
		Title:      title,
		Body:       body,
		Generation: c.generation,
		UpdatedAt:  c.now(),
	}
}

// ErrorMessage is the text shown for err. Structured errors show their
// message without the code prefix.
func ErrorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		return se.Summary()
	}
	return err.Error()
}

// GetInputValue returns the trimmed text of a field, or "" when the field is
// unknown or blank.
func (c *Controller) GetInputValue(fieldID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimSpace(c.inputs[fieldID])
}

// SetInputValue stores the raw text of a field, as typed.
func (c *Controller) SetInputValue(fieldID, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs[fieldID] = value
}

// RawInputValue returns the text of a field as typed, untrimmed.
func (c *Controller) RawInputValue(fieldID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inputs[fieldID]
}

// HasField reports whether fieldID belongs to one of the panels.
func (c *Controller) HasField(fieldID string) bool {
	for _, p := range c.panels {
		if p.Field == fieldID {
			return true
		}
	}
	return false
}

// ShowInput activates the panel of the given kind and deactivates all others.
// Unknown kinds leave the current selection unchanged.
func (c *Controller) ShowInput(kind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.panels {
		if p.Kind == kind {
			c.active = kind
			return nil
		}
	}
	return errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown input panel",
		map[string]any{"kind": kind})
}

// ActivePanel returns the kind of the active panel, or "" when none is active.
func (c *Controller) ActivePanel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Panels returns the input panels in display order with their active flag set.
func (c *Controller) Panels() []Panel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Panel, len(c.panels))
	for i, p := range c.panels {
		p.Active = p.Kind == c.active
		out[i] = p
	}
	return out
}
