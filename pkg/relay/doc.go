// Package relay submits validated form payloads to a hosted form relay.
//
// A submission is a single JSON POST. Any 2xx response counts as delivered;
// everything else is reported as a *SubmitError carrying normalised
// form-level messages, and network failures wrap ErrUnavailable. Callers
// surface both as a retry prompt without touching per-field state.
package relay
