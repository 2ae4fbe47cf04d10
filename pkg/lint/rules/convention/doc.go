// Package convention provides lint rules for likely mistakes and style.
//
// Rules in this package:
//   - CV01: loop or branch condition compares two constants
//   - CV02: label present but empty
package convention
