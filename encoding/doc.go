// Package encoding provides the columnar codecs used by the snapshot
// interchange format: delta compression for position references and
// length-prefixed encoding for variable-length strings.
//
// Encoders accumulate into pooled byte buffers and must be finalized with
// Finish to return their buffers to the pool. Decoders operate directly on
// byte slices and expose iterator-based sequential access.
package encoding
