// Package docstore persists the raw source documents behind the vector
// index. Documents are schema-flexible JSON objects stored verbatim, keyed
// by collection and the document's own identifier field, so the original
// record can always be retrieved exactly as it was ingested.
package docstore
