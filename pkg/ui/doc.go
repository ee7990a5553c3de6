// Package ui holds the view-model of the tester page.
//
// A Controller is created once at startup and passed explicitly to every
// handler. It owns:
//
//   - the output region, which is always in exactly one of the idle, loading,
//     result or error states
//   - the input panels, of which at most one is active at a time
//   - the text of the named input fields
//
// Actions that talk to the API start with ShowLoading, which returns a
// generation number, and finish with DisplayResultsFor or ShowErrorFor. A
// finishing write is dropped when a newer action has started in between, so
// the region always reflects the latest action even when responses arrive out
// of order.
//
// A Controller is safe for concurrent use.
package ui
