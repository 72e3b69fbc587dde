// Package wire parses and formats sigil's text wire records.
//
// Every record is colon- or underscore-delimited with base64 binary fields:
//
//	Identity        <b64 signPublicKey>_<b64 boxPublicKey>
//	Signature       ed25519-1:<identity>:<b64 signature>
//	Envelope        naclbox-1:<writer>:<b64 nonce>:<b64 w1>,<b64 w2>,...:<b64 ciphertext>
//	Locked secret   <b64 nonce>_<b64 ciphertext>
//	Secret bundle   <b64 signSecretKey>_<b64 boxSecretKey>
//	Wrapped key     naclbox-1:<b64 one-time key>
//
// Standard base64 never produces ':', '_' or ',', so the delimiters are
// unambiguous. Records are parsed into structs once, at the boundary, and
// only turned back into text by their String methods.
package wire
