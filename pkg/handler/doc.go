// Package handler implements the user actions of the tester page and the
// dispatcher that binds page elements to them.
//
// Every action is a linear sequence: read and validate at most one input
// field, show the loading state, make exactly one API call, then render the
// result or the error into the output region. Actions never return errors or
// panic; failures end up in the region.
//
// The Dispatcher is built once and maps element ids to actions:
//
//	d := handler.NewDispatcher(handler.New(client, controller))
//	_ = d.Click(ctx, "btn-get-all-pizzas")
//	_ = d.KeyPress(ctx, "pizzaId", "Enter")
//
// Actions that reach the network run asynchronously, one goroutine per
// action, with no queueing; the controller's generation counter decides which
// result is shown.
package handler
