// Package errors provides the classified error type used across the docs site.
//
// A ClassifiedError carries a category (config, not_found, filesystem, ...), a
// severity and a free-form context map. Adapters translate it into HTTP status
// codes and JSON bodies, or into CLI exit codes.
//
//	err := errors.NotFoundError("document not found").
//		WithContext("set", "cli").
//		WithContext("slug", "sdk").
//		WithCause(docserrors.ErrDocumentNotFound).
//		Build()
package errors
