// Package markdown renders document bodies to HTML with stable heading anchors
// and a table of contents, and extracts level-1 titles from raw text.
package markdown
