// Package datasets holds the sample contracts shared by dataset packages and the tab separated reader they use
package datasets

// Sample is one training example as seen by a classifier
type Sample interface {

	// Feature extracts the n-th feature
	Feature(n int) uint32

	// Parity is xored with the output to balance the classes
	Parity() uint16

	// Output is the expected class
	Output() uint16
}

// Dataslice is an indexable collection of samples
type Dataslice interface {
	Len() int
	Get(n int) Sample
}

// Row is one parsed line, keyed by column name
type Row map[string]string
