// Package protocol implements the binary wire format between the message
// server and its browser client.
//
// Traffic is framed: a 4-byte header (type, flags, big-endian payload
// length) followed by the payload. Payloads use varint-prefixed strings
// and varint integers. The server sends patch batches describing document
// mutations; the client sends browser events addressed by node id.
//
// The package is transport-agnostic and has no dependency on the document
// model; pkg/server does the mapping in both directions.
package protocol
