// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "failed to fetch pizza price",
//	    ctx.Err(),
//	    map[string]any{
//	        "endpoint": "pizzasWithPrices/{id}/price",
//	        "id":       id,
//	    },
//	)
//
// Callers that only need the classification use CodeOf:
//
//	if errors.CodeOf(err) == errors.ErrCodeNotFound {
//	    ...
//	}
package errors
