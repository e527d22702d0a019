// Package template defines the page rendering seam used by the site server.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template
