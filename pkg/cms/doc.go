// Package cms describes the blog post document kept in the hosted content
// store: its field schema, editorial status and the checks editors get
// before publishing.
package cms
