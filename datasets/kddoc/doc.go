// Package kddoc implements the knowledge distillation document classification dataset.
//
// Each row carries the raw text, the teacher's probabilities and logits,
// the label names in the order the teacher emitted them, and the hard
// document label. Teacher score vectors are realigned to one canonical
// label order before they are batched.
package kddoc
