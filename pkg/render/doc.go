// Package render turns pizza API payloads into HTML fragments.
//
// All functions are pure: same input, same markup, no I/O. Output is produced
// by html/template, so names and ingredient symbols coming from the API are
// escaped before they reach the page.
//
// Missing optional data is never an error. A pizza without a name renders
// as "Unnamed Pizza", one without ingredients as "No ingredients", and a
// custom price without price or total as "N/A".
package render
