// Package handlers contains HTTP handlers for the docs site.
//
// This package provides handlers for:
//   - HTML pages for document sets (landing page, document pages with navigation)
//   - JSON API endpoints for manifests, default slugs and rendered documents
//   - Health and readiness endpoints for the admin server
//
// Errors are reported through the foundation/errors HTTP adapter, so a missing
// document or unknown set becomes a 404 with a structured body.
package handlers
