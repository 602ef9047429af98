// Package ipcc defines the collaborator contract for the inter-processor
// doorbell peripheral.
package ipcc

// Each direction exposes six one-bit channel flags carrying no payload.
// Ringing a flag is the only cross-core signal and doubles as the memory
// visibility boundary: it must be the last store of a transfer.
//
// The register-level peripheral is out of scope; the sim subpackage
// provides an in-process double for tests and demos.
