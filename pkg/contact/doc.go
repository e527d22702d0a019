// Package contact holds the site's contact form variants (personal, company
// and partner contacts plus the per-solution forms) and the Session that
// validates and submits them through a relay.Sender.
package contact
