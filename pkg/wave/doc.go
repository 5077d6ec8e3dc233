// Package wave models one signal timeline: a slice of bitval samples plus
// the signal type (wire, clock, register), a display mode, a selection set,
// a cached pair of extrema and a small edit state machine.
//
// A Wave starts in StateShow. BeginEdit moves it to StateEdit and
// BeginTypeChange to StateTypeChange; the matching Commit and Cancel calls
// move it back. Clock samples are generated from the clock parameters and
// cannot be edited one by one.
package wave
