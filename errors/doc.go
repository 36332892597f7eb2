// Package errors provides the unified error type used across xesmeta.
//
// Every public operation that can fail returns an *AppError carrying a
// machine-readable code, a human-readable message and the original cause.
// Callers branch on the code with Is or AsAppError and reach the cause
// through the standard errors.Unwrap chain.
package errors
