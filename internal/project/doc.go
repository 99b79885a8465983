// SPDX-License-Identifier: MPL-2.0

// Package project loads and resolves project files.
//
// A project is a directory containing project.cue (or project.yml /
// project.yaml). The file declares variables, directories to create, named
// commands made of shell script lines with declared deps and outputs, and
// named workflows that list commands in order. Both formats are validated
// against the same embedded CUE schema.
//
// Script lines, deps and outputs may reference ${vars.name} (dotted paths
// into nested vars) and ${env.NAME}. Expand resolves them before execution.
package project
