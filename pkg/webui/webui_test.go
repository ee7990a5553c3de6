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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/pizzalab/pizza-tester/pkg/handler"
	"github.com/pizzalab/pizza-tester/pkg/pizza"
	"github.com/pizzalab/pizza-tester/pkg/server"
	"github.com/pizzalab/pizza-tester/pkg/ui"
)

type stubAPI struct {
	mu    sync.Mutex
	ids   []string
	gate  chan struct{}
	calls int
}

func (s *stubAPI) wait(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	gate := s.gate
	s.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *stubAPI) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubAPI) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

var margherita = pizza.Pizza{ID: "1", Name: "Margherita", Ingredients: []string{"🍅", "🧀"}, Price: ptr.To(8.5)}

func (s *stubAPI) GetAllPizzas(ctx context.Context) ([]pizza.Pizza, error) {
	return []pizza.Pizza{margherita}, s.wait(ctx)
}

func (s *stubAPI) GetPizzaByID(ctx context.Context, id string) (pizza.Pizza, error) {
	s.mu.Lock()
	s.ids = append(s.ids, id)
	s.mu.Unlock()
	return margherita, s.wait(ctx)
}

func (s *stubAPI) GetPizzasWithPrices(ctx context.Context) ([]pizza.Pizza, error) {
	return []pizza.Pizza{margherita}, s.wait(ctx)
}

func (s *stubAPI) GetIngredientPrices(ctx context.Context) (pizza.IngredientPriceMap, error) {
	return pizza.IngredientPriceMap{"🍅": 1}, s.wait(ctx)
}

func (s *stubAPI) SearchPizzasByIngredients(ctx context.Context, _ []string) ([]pizza.Pizza, error) {
	return nil, s.wait(ctx)
}

func (s *stubAPI) GetPizzaPrice(ctx context.Context, id string) (pizza.PriceResult, error) {
	s.mu.Lock()
	s.ids = append(s.ids, id)
	s.mu.Unlock()
	return pizza.PriceResult{ID: pizza.ID(id), Name: "Margherita", Price: ptr.To(8.5)}, s.wait(ctx)
}

func (s *stubAPI) ComputeCustomPizzaPrice(ctx context.Context, _ []string) (pizza.CustomPriceResult, error) {
	return pizza.CustomPriceResult{Total: ptr.To(3.0)}, s.wait(ctx)
}

func newTestApp(t *testing.T, api handler.API) (*App, http.Handler) {
	t.Helper()
	app := NewApp(Options{
		Version:       "test",
		BaseURL:       "http://pizza.test/API",
		API:           api,
		ActionTimeout: 2 * time.Second,
	})
	t.Cleanup(app.Wait)
	return app, app.NewServer().Handler()
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, accept string) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func getState(t *testing.T, h http.Handler) State {
	t.Helper()
	w := do(t, h, http.MethodGet, "/v1/state", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var st State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	return st
}

func TestPage(t *testing.T) {
	_, h := newTestApp(t, &stubAPI{})

	w := do(t, h, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	for _, id := range []string{
		handler.BtnGetAllPizzas,
		handler.BtnGetPizzaByID,
		handler.BtnGetPizzasWithPrices,
		handler.BtnGetIngredientPrices,
		handler.BtnSearchByIngredients,
		handler.BtnGetPizzaPrice,
		handler.BtnComputeCustomPrice,
		handler.SubmitPizzaByID,
		handler.SubmitSearchPizzas,
		handler.SubmitPizzaPrice,
		handler.SubmitCustomPrice,
		ui.FieldPizzaID,
		ui.FieldSearchIngredients,
		ui.FieldPriceID,
		ui.FieldCustomIngredients,
	} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, "http://pizza.test/API")
	assert.Contains(t, body, "Choose an action above")
	assert.NotContains(t, body, "input-section card card-body mb-4 active")
	assert.NotContains(t, body, `http-equiv="refresh"`)
}

func TestClick_ShowInput(t *testing.T) {
	app, h := newTestApp(t, &stubAPI{})

	w := do(t, h, http.MethodPost, "/click/"+handler.BtnGetPizzaPrice, url.Values{}, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, ui.PanelPrice, app.Controller().ActivePanel())

	page := do(t, h, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, page, `mb-4 active" id="input-price"`)
}

func TestClick_Action(t *testing.T) {
	api := &stubAPI{}
	app, h := newTestApp(t, api)

	w := do(t, h, http.MethodPost, "/click/"+handler.SubmitPizzaByID,
		url.Values{ui.FieldPizzaID: {"  1 "}}, "application/json")
	require.Equal(t, http.StatusAccepted, w.Code)

	app.Wait()

	assert.Equal(t, []string{"1"}, api.IDs())
	st := getState(t, h)
	assert.Equal(t, ui.StateResult, st.Region.State)
	assert.Equal(t, handler.TitlePizzaDetails, st.Region.Title)
	assert.Equal(t, "  1 ", st.Inputs[ui.FieldPizzaID])

	region := do(t, h, http.MethodGet, "/region", nil, "").Body.String()
	assert.Contains(t, region, "Margherita")
}

func TestClick_BlankInput(t *testing.T) {
	api := &stubAPI{}
	app, h := newTestApp(t, api)

	do(t, h, http.MethodPost, "/click/"+handler.SubmitCustomPrice,
		url.Values{ui.FieldCustomIngredients: {" , "}}, "")
	app.Wait()

	assert.Zero(t, api.Calls())
	assert.Equal(t, handler.TitleInputRequired, getState(t, h).Region.Title)
}

func TestClick_UnknownElement(t *testing.T) {
	_, h := newTestApp(t, &stubAPI{})

	w := do(t, h, http.MethodPost, "/click/btn-nope", url.Values{}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "btn-nope", resp.Details["element"])
}

func TestKeyPress(t *testing.T) {
	api := &stubAPI{}
	app, h := newTestApp(t, api)

	w := do(t, h, http.MethodPost, "/keypress/"+ui.FieldPriceID,
		url.Values{"key": {"a"}, "value": {"2"}}, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	app.Wait()
	assert.Zero(t, api.Calls())
	assert.Equal(t, "2", app.Controller().RawInputValue(ui.FieldPriceID))

	do(t, h, http.MethodPost, "/keypress/"+ui.FieldPriceID, url.Values{"key": {"Enter"}}, "")
	app.Wait()
	assert.Equal(t, []string{"2"}, api.IDs())
	assert.Equal(t, handler.TitlePizzaPrice, getState(t, h).Region.Title)

	w = do(t, h, http.MethodPost, "/keypress/nope", url.Values{"key": {"Enter"}}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadingPageRefreshes(t *testing.T) {
	api := &stubAPI{gate: make(chan struct{})}
	app, h := newTestApp(t, api)

	do(t, h, http.MethodPost, "/click/"+handler.BtnGetAllPizzas, url.Values{}, "")

	require.Eventually(t, func() bool {
		return app.Controller().Region().State == ui.StateLoading
	}, time.Second, 5*time.Millisecond)

	page := do(t, h, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, page, `http-equiv="refresh" content="1"`)
	assert.Contains(t, page, "spinner-border")
	assert.Contains(t, page, `data-state="loading"`)

	close(api.gate)
	app.Wait()

	page = do(t, h, http.MethodGet, "/", nil, "").Body.String()
	assert.NotContains(t, page, `http-equiv="refresh"`)
	assert.Contains(t, page, handler.TitleAllPizzas)
}

func TestInputsAreEscaped(t *testing.T) {
	app, h := newTestApp(t, &stubAPI{})
	app.Controller().SetInputValue(ui.FieldSearchIngredients, `"><script>x</script>`)

	page := do(t, h, http.MethodGet, "/", nil, "").Body.String()
	assert.NotContains(t, page, "<script>x</script>")
}

func TestNewApp_DefaultClient(t *testing.T) {
	app := NewApp(Options{BaseURL: "http://example.test/API/", Timeout: time.Second})
	assert.Equal(t, "http://example.test/API", app.apiBaseURL)

	app = NewApp(Options{})
	assert.Equal(t, "https://mypizzasapi.onrender.com/API", app.apiBaseURL)
}
