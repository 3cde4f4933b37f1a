// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context. ActionableError attaches
// an operation, a resource and fix suggestions to an underlying error; the
// Issue catalog holds rendered help texts for the handful of conditions that
// abort startup entirely.
package issue
