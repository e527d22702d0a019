// Package prompt runs the contact form in a terminal. Each answer goes
// through the form's Change and Blur events, so masks and error messages
// match the website exactly; invalid fields are asked again until their
// error clears.
package prompt
