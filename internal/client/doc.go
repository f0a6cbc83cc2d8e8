// SPDX-License-Identifier: Apache-2.0

// Package client implements the interactive client application runtime.
//
// It wires the session and journal services into a single process lifecycle
// with a line-oriented command loop on standard input.
package client
