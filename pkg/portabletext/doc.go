// Package portabletext renders the CMS rich content format (arrays of
// blocks, spans and mark definitions) to sanitised HTML and plain text.
package portabletext
