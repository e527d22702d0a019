// Package mask formats raw user input into the canonical display masks used
// by the contact forms: Brazilian phone numbers, CPF (personal taxpayer id)
// and CNPJ (company registry id).
//
// Every formatter strips non-digits before applying the mask, so formatting
// an already formatted value yields the same string and partial input
// produces a partial mask on every keystroke.
package mask
