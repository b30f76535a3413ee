// Package yamlload loads Problem Descriptions written in YAML. The document
// mirrors the HCL format field for field; shutdown predicates are strings in
// HCL expression syntax.
package yamlload
