// Package ekey builds the symmetric key that binds a cartridge image to one
// printer. There is no hashing and no entropy involved: each key byte is the
// one's complement of a fixed byte picked from the three 8-byte inputs.
package ekey

// Size of the derived key in bytes.
const Size = 16

type source int

const (
	fromFragment source = iota
	fromMachine
	fromDevice
)

// derivationTable fixes which input byte feeds each key byte. The printer
// firmware expects this exact permutation; reordering any entry produces a
// key that fails to interoperate without raising an error here.
var derivationTable = [Size]struct {
	source source
	index  int
}{
	{fromFragment, 0},
	{fromFragment, 2},
	{fromDevice, 2},
	{fromFragment, 6},
	{fromMachine, 0},
	{fromMachine, 2},
	{fromDevice, 6},
	{fromMachine, 6},
	{fromMachine, 7},
	{fromDevice, 1},
	{fromMachine, 3},
	{fromMachine, 1},
	{fromFragment, 7},
	{fromDevice, 5},
	{fromFragment, 3},
	{fromFragment, 1},
}

// Derive is a pure function: the same fragment, machine number, and device
// uid always yield the same key.
func Derive(fragment, machineNumber, deviceUID [8]byte) [Size]byte {
	key := [Size]byte{}
	for i, entry := range derivationTable {
		b := byte(0)
		switch entry.source {
		case fromFragment:
			b = fragment[entry.index]
		case fromMachine:
			b = machineNumber[entry.index]
		case fromDevice:
			b = deviceUID[entry.index]
		}
		key[i] = ^b
	}
	return key
}
