// Package docs builds ordered manifests of document sets and resolves single
// documents by slug.
//
// A document set is a directory of text files with a fixed extension. Each
// file's path relative to the set root, minus the extension, is its slug. The
// set's configuration decides how slugs map to sections, which order value a
// document gets, and which document is opened by default. All operations read
// the file system on every call; nothing is cached.
package docs
