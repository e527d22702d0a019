// Package site serves the public blog pages, the simulators page and the
// JSON API behind the contact forms. Pages are rendered through the
// template engine with the active theme; API requests are validated against
// the embedded OpenAPI document before they reach a handler.
package site
