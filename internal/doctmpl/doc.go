// Package doctmpl defines the documentation template: the ordered set of
// managed fields docsync generates, each mapped to a canonical markdown
// heading and level.
//
// The template is the contract between the generation layer (which produces
// content per field) and the merger (which decides which headings in an
// existing document are reserved). Heading matching is normalized: headings
// are compared case-insensitively with surrounding and interior whitespace
// collapsed, so "##  design decisions" and "## Design Decisions" refer to the
// same managed field.
package doctmpl
