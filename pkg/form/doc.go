// Package form manages the display state of the site's forms: it runs the
// mask → validate → show-error pipeline on change and blur events and
// forces all errors visible on submit.
package form
