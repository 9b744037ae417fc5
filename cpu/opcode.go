package cpu

// OpCode is a raw fetched instruction byte, kept as a distinct type from
// uint8 so call sites can't accidentally do byte arithmetic on it before
// it has gone through Decode.
type OpCode uint8
