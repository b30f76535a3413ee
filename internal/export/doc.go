// Package export writes a synthesis result to disk: it stages the template
// files into the export directory, substitutes @KEY@ placeholders with the
// rendered artifacts, and writes an HCL report of the offset tables.
package export
