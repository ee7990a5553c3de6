// Package pizza is the client for the remote pizza catalog API.
//
// Every endpoint answers with a JSON envelope of the form {"data": ...}; the
// client unwraps it and returns the payload as a typed value. Non-2xx answers
// and transport failures come back as *errors.StructuredError values whose
// message carries the HTTP status ("HTTP error! status: 404") or the
// transport cause. Nothing is retried.
//
// Endpoints, relative to the base URL:
//
//	GET  /pizzas                                   GetAllPizzas
//	GET  /pizzas/{id}                              GetPizzaByID
//	GET  /pizzasWithPrices                         GetPizzasWithPrices
//	GET  /ingredientPrices                         GetIngredientPrices
//	GET  /pizzas/search?ingredient=a&ingredient=b  SearchPizzasByIngredients
//	GET  /pizzasWithPrices/{id}/price              GetPizzaPrice
//	POST /pizzasWithPrices/compute                 ComputeCustomPizzaPrice
//
// Usage:
//
//	c := pizza.NewClient(pizza.WithBaseURL("http://localhost:3000/API"))
//	pizzas, err := c.GetAllPizzas(ctx)
//
// The search endpoint receives one ingredient parameter per symbol. Whether the
// server matches pizzas containing all or any of them is decided server side.
package pizza
