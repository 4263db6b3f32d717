// Package main provides a command line tool for preparing knowledge distillation data.
// It reads tab separated rows holding text and teacher outputs, tokenizes the text,
// realigns teacher scores to the canonical label order and writes one JSON object per example.
package main
