// Package seed loads source documents into the vector backend and the
// document store. Each collection ships as a JSON array file; documents
// are embedded in batch and upserted with their full native payload, so
// the backend holds exactly what the source files hold.
package seed
