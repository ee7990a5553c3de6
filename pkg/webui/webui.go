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

package webui

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/pizzalab/pizza-tester/pkg/defaults"
	"github.com/pizzalab/pizza-tester/pkg/errors"
	"github.com/pizzalab/pizza-tester/pkg/handler"
	"github.com/pizzalab/pizza-tester/pkg/pizza"
	"github.com/pizzalab/pizza-tester/pkg/serializer"
	"github.com/pizzalab/pizza-tester/pkg/server"
	"github.com/pizzalab/pizza-tester/pkg/ui"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("webui").Parse(pageHTML))

// maxFormBytes bounds posted forms.
const maxFormBytes = 64 << 10

// Options configures the web UI.
type Options struct {
	// Name and Version identify the server.
	Name    string
	Version string

	// Address and Port override the server defaults when set.
	Address string
	Port    int

	// BaseURL of the pizza API. Empty uses the client default.
	BaseURL string
	// Timeout of a single API request. Zero uses the client default.
	Timeout time.Duration
	// MinDelay keeps the loading state visible at least this long. Zero
	// disables it.
	MinDelay time.Duration
	// ActionTimeout bounds a whole action. Zero uses the default.
	ActionTimeout time.Duration
	// RefreshInterval is how often the page reloads while loading.
	RefreshInterval time.Duration

	// API replaces the HTTP client, mainly for tests.
	API handler.API
}

// App is the web UI bound to one controller.
type App struct {
	opts       Options
	apiBaseURL string
	controller *ui.Controller
	dispatcher *handler.Dispatcher
}

// NewApp wires the client, controller, handlers and dispatcher.
func NewApp(opts Options) *App {
	if opts.MinDelay < 0 {
		opts.MinDelay = 0
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = defaults.ActionTimeout
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = defaults.PageRefreshInterval
	}

	api := opts.API
	baseURL := opts.BaseURL
	if api == nil {
		clientOpts := []pizza.Option{}
		if opts.BaseURL != "" {
			clientOpts = append(clientOpts, pizza.WithBaseURL(opts.BaseURL))
		}
		if opts.Timeout > 0 {
			clientOpts = append(clientOpts, pizza.WithTimeout(opts.Timeout))
		}
		client := pizza.NewClient(clientOpts...)
		api = client
		baseURL = client.BaseURL()
	}

	controller := ui.NewController()
	h := handler.New(api, controller, handler.WithMinDelay(opts.MinDelay))

	return &App{
		opts:       opts,
		apiBaseURL: baseURL,
		controller: controller,
		dispatcher: handler.NewDispatcher(h, handler.WithActionTimeout(opts.ActionTimeout)),
	}
}

// Controller returns the UI controller.
func (a *App) Controller() *ui.Controller {
	return a.controller
}

// Wait blocks until all started actions finished.
func (a *App) Wait() {
	a.dispatcher.Wait()
}

// Routes returns the page handlers keyed by ServeMux pattern.
func (a *App) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /{$}":               a.handlePage,
		"POST /click/{element}":  a.handleClick,
		"POST /keypress/{field}": a.handleKeyPress,
		"GET /region":            a.handleRegion,
		"GET /v1/state":          a.handleState,
	}
}

type panelView struct {
	ui.Panel
	Value       string
	SubmitLabel string
}

type pageData struct {
	APIBaseURL string
	Version    string
	Refresh    int
	Buttons    []handler.Button
	Panels     []panelView
	Region     ui.Region
}

func (a *App) pageData() pageData {
	region := a.controller.Region()

	data := pageData{
		APIBaseURL: a.apiBaseURL,
		Version:    a.opts.Version,
		Buttons:    a.dispatcher.Buttons(),
		Region:     region,
	}
	if region.State == ui.StateLoading {
		data.Refresh = int(math.Ceil(a.opts.RefreshInterval.Seconds()))
	}
	for _, p := range a.controller.Panels() {
		data.Panels = append(data.Panels, panelView{
			Panel:       p,
			Value:       a.controller.RawInputValue(p.Field),
			SubmitLabel: a.dispatcher.Label(p.Submit),
		})
	}
	return data
}

func (a *App) handlePage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "page", a.pageData())
}

func (a *App) handleRegion(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "region", a.controller.Region())
}

func (a *App) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render page", "template", name, "error", err)
		server.WriteError(w, r, http.StatusInternalServerError, errors.ErrCodeInternal,
			"failed to render page", true, nil)
		return
	}
	serializer.RespondHTML(w, http.StatusOK, buf.Bytes())
}

func (a *App) handleClick(w http.ResponseWriter, r *http.Request) {
	if !a.readInputs(w, r) {
		return
	}
	element := r.PathValue("element")
	if err := a.dispatcher.Click(r.Context(), element); err != nil {
		server.WriteErrorFromErr(w, r, err, "click failed", nil)
		return
	}
	a.respondAction(w, r)
}

func (a *App) handleKeyPress(w http.ResponseWriter, r *http.Request) {
	if !a.readInputs(w, r) {
		return
	}
	field := r.PathValue("field")
	if v, ok := r.PostForm["value"]; ok && len(v) > 0 && a.controller.HasField(field) {
		a.controller.SetInputValue(field, v[0])
	}
	if err := a.dispatcher.KeyPress(r.Context(), field, r.PostFormValue("key")); err != nil {
		server.WriteErrorFromErr(w, r, err, "key press failed", nil)
		return
	}
	a.respondAction(w, r)
}

// readInputs copies posted input fields into the controller. Fields that
// were not posted keep their value.
func (a *App) readInputs(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"invalid form", false, map[string]any{"error": err.Error()})
		return false
	}
	for _, p := range a.controller.Panels() {
		if v, ok := r.PostForm[p.Field]; ok && len(v) > 0 {
			a.controller.SetInputValue(p.Field, v[0])
		}
	}
	return true
}

// respondAction redirects browsers back to the page and answers API
// clients with the state.
func (a *App) respondAction(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		serializer.RespondJSON(w, http.StatusAccepted, a.state())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") || strings.Contains(accept, "+json")
}

// State is the JSON view of the controller.
type State struct {
	Region      ui.Region         `json:"region"`
	ActivePanel string            `json:"activePanel,omitempty"`
	Panels      []ui.Panel        `json:"panels"`
	Inputs      map[string]string `json:"inputs"`
	APIBaseURL  string            `json:"apiBaseUrl"`
}

func (a *App) state() State {
	panels := a.controller.Panels()
	inputs := make(map[string]string, len(panels))
	for _, p := range panels {
		inputs[p.Field] = a.controller.RawInputValue(p.Field)
	}
	return State{
		Region:      a.controller.Region(),
		ActivePanel: a.controller.ActivePanel(),
		Panels:      panels,
		Inputs:      inputs,
		APIBaseURL:  a.apiBaseURL,
	}
}

func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, a.state())
}

// NewServer returns a server hosting the app.
func (a *App) NewServer() *server.Server {
	cfg := server.NewConfig()
	if a.opts.Name != "" {
		cfg.Name = a.opts.Name
	}
	if a.opts.Version != "" {
		cfg.Version = a.opts.Version
	}
	if a.opts.Address != "" {
		cfg.Address = a.opts.Address
	}
	if a.opts.Port > 0 {
		cfg.Port = a.opts.Port
	}
	return server.New(server.WithConfig(cfg), server.WithHandler(a.Routes()))
}

// Serve runs the web UI until ctx is done or the process is signaled, then
// waits for in-flight actions.
func Serve(ctx context.Context, opts Options) error {
	app := NewApp(opts)
	s := app.NewServer()

	slog.Info("pizza tester loaded",
		"api", app.apiBaseURL,
		"minDelay", app.opts.MinDelay.String(),
		"actionTimeout", app.opts.ActionTimeout.String())

	err := s.Run(ctx)
	app.Wait()
	return err
}
