// Package dataprocessing turns a raw tabular sales source into the
// dimensional model: it cleans the raw table, probes the available columns
// into an immutable capability schema, and extracts customer, product and
// region dimension tables plus the sales fact table with derived measures.
//
// The stages run strictly in sequence and each owns its output outright;
// nothing here is safe for concurrent mutation and nothing needs to be.
package dataprocessing
