// Package bitval implements a fixed-capacity bit vector value used for every
// waveform sample and every value typed by a user.
//
// A Value has an active width between 1 and MaxBits bits, stored as Words
// little-endian 64-bit words. Bits at or above the width are always zero.
// The sign of a value is kept in a separate flag and storage always holds the
// magnitude; two's-complement layouts are computed on demand when printing.
//
// Text representation
//
// Parse accepts an optional sign, an optional base prefix and digits:
//
//	[+|-][0b|0o|0x]digits
//
// The prefix letter is case-insensitive and a missing prefix selects base 10.
// Failures are reported as a *ParseError listing one Diagnostic per offending
// chunk of digits, each tied to a byte range of the input.
package bitval
