// Package xmlcodec implements the project interchange format: a canonical
// XML document for export and re-import. Encoding and decoding operate over
// explicit document structs rather than reflecting on the domain entities, so
// the canonical shape and defaulting rules are visible in one place. The
// codec is identity-agnostic: decoding never assigns student, teacher, or
// creator references; the caller stamps those onto the draft.
package xmlcodec
