package rowbinary

import "fmt"

// UUID holds a value in canonical textual byte order: 4-byte group A,
// 2-byte group B, 2-byte group C, 2-byte group D, 6-byte group E. The
// wire layout permutes these groups.
type UUID [16]byte

func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}

func reverse4(b []byte) [4]byte {
	var out [4]byte
	for i := 0; i < 4; i++ {
		out[i] = b[3-i]
	}
	return out
}

func reverse2(b []byte) [2]byte {
	return [2]byte{b[1], b[0]}
}

func reverse6(b []byte) [6]byte {
	var out [6]byte
	for i := 0; i < 6; i++ {
		out[i] = b[5-i]
	}
	return out
}

// uuidToWire permutes a canonical UUID into wire order: C (LE), B (LE),
// A (LE), D reversed, E reversed.
func uuidToWire(u UUID) [16]byte {
	var wire [16]byte
	c := reverse2(u[6:8])
	b := reverse2(u[4:6])
	a := reverse4(u[0:4])
	d := reverse2(u[8:10])
	e := reverse6(u[10:16])
	copy(wire[0:2], c[:])
	copy(wire[2:4], b[:])
	copy(wire[4:8], a[:])
	copy(wire[8:10], d[:])
	copy(wire[10:16], e[:])
	return wire
}

// uuidFromWire inverts uuidToWire.
func uuidFromWire(wire []byte) UUID {
	var u UUID
	c := reverse2(wire[0:2])
	b := reverse2(wire[2:4])
	a := reverse4(wire[4:8])
	d := reverse2(wire[8:10])
	e := reverse6(wire[10:16])
	copy(u[0:4], a[:])
	copy(u[4:6], b[:])
	copy(u[6:8], c[:])
	copy(u[8:10], d[:])
	copy(u[10:16], e[:])
	return u
}
