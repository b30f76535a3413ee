// Package hcl loads Problem Descriptions written in HCL. It decodes the
// `problem`, `group` and `substitute` blocks with gohcl, converts numeric
// lists and matrices with cty, and keeps shutdown predicates as parsed
// expressions.
package hcl
