// Package vcd imports Value Change Dump files into waves.
//
// The header ($timescale, $scope, $var, ...) is parsed with a participle
// grammar; the change records that follow are replayed in file order. A
// timestamp #t extends every wave to t/divisor+1 samples by repeating the
// last value, and each scalar or vector change then overwrites the final
// sample of the waves bound to its identifier code.
//
// Only header problems fail an import. Records the importer cannot use are
// logged and skipped.
package vcd
