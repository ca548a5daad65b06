// Package sanitizer normalizes patient-supplied booking input before it is
// validated and stored.
//
// All normalization functions are idempotent: applying them twice gives the
// same result as applying them once. Invalid input is never rejected here;
// the functions return a best-effort value and leave rejection to the
// validator.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number]) when the number parses and
//     is valid for the clinic's region, otherwise the trimmed input as typed
//   - Names and free text: collapse whitespace runs, trim both ends
//   - Search terms: trim and lowercase for case-insensitive matching
package sanitizer
