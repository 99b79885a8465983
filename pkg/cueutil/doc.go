// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates documents against embedded CUE schemas.
//
// Project files and the configuration file share one flow:
//
//  1. Compile the embedded schema
//  2. Compile (or encode) the user data and unify it with a schema definition
//  3. Validate and decode to a Go struct
//
// Errors carry the file name and a JSON-style path to the offending field,
// e.g. "project.cue: commands[2].script: incomplete value [...string]".
package cueutil
