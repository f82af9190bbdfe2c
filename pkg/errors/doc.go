// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeIntrospection,
//	    "failed to read container header",
//	    cmdErr,
//	    map[string]interface{}{
//	        "command": "h5dump",
//	        "file": path,
//	    },
//	)
package errors
