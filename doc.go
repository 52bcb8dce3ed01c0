// Package calc implements a calculator for integer and floating-point
// arithmetic expressions.
//
// Expressions are built from decimal numbers, parentheses, the binary
// operators + - * / % ^, the prefix operators + and -, and the postfix
// factorial operator !. "2^3^2" is "2^(3^2)", and "4!!" is "(4!)!". Numbers
// written with only digits are 64-bit integers; numbers with a decimal point
// are floats. Arithmetic on two integers stays in integers and reports
// overflow as an error instead of wrapping, except for subtraction. Mixing in
// a float makes the operation use floats.
//
// Errors are either a *ParseError, for input that is not an expression, or a
// *ValueError, for an operation without a valid result.
package calc
