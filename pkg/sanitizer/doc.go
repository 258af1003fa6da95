// Package sanitizer normalizes request input before validation and storage.
//
// All functions are idempotent. Input that cannot be normalized is returned
// trimmed but otherwise untouched so that validation reports it as submitted.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - E-mail: trimmed and lower-cased
//   - Phone numbers: E.164 when the number is valid, trimmed input otherwise
//   - Money: rounded to cents
package sanitizer
