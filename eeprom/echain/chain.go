// Package echain maintains the image's integrity slots: 16-bit checksums
// over fixed sub-regions, stored at fixed offsets. One table describes every
// check, so the stamping side and the verifying side cannot drift apart.
package echain

import (
	"fmt"

	"cartkit/eeprom/ebuf"
	"cartkit/eeprom/ecrc"
)

type (
	// Check covers the bytes in [Start, End) and stores their checksum at
	// Slot.
	Check struct {
		Name  string
		Start int
		End   int
		Slot  int
	}
	IntegrityError struct {
		Check    string
		Expected uint16
		Actual   uint16
	}
)

var (
	// PlainContent and PlainQuantity are stamped at pack time, before any
	// encryption, and verified at unpack time, after full decryption.
	PlainContent  = Check{"plain content", 0x00, 0x40, 0x40}
	PlainQuantity = Check{"current material quantity", 0x58, 0x60, 0x62}

	// CryptedContent and CryptedQuantity are stamped right after their
	// region is encrypted and verified right before it is decrypted, so a
	// flipped bit in either encrypted region is caught before the cipher
	// ever runs on it.
	CryptedContent  = Check{"crypted content", 0x00, 0x40, 0x46}
	CryptedQuantity = Check{"crypted current material quantity", 0x58, 0x60, 0x60}

	// KeyFragment is stamped at pack time. Decoding does not gate on it;
	// verifying it is left to callers that want the extra check.
	KeyFragment = Check{"key fragment", 0x48, 0x50, 0x50}
)

func (r IntegrityError) Error() string {
	return fmt.Sprintf(
		`invalid %s checksum: expected "%#04x", got "%#04x"`,
		r.Check, r.Expected, r.Actual,
	)
}

// Compute delegates to the checksum port for the bytes the check covers.
func Compute(image []byte, check Check) uint16 {
	return ecrc.Checksum(image[check.Start:check.End])
}

// Stamp writes the freshly computed checksum into the check's slot.
func Stamp(image []byte, check Check) {
	ebuf.PutUint16(image, check.Slot, Compute(image, check))
}

// Verify recomputes the check and compares it against the stored slot.
func Verify(image []byte, check Check) error {
	expected := ebuf.GetUint16(image, check.Slot)
	actual := Compute(image, check)
	if expected != actual {
		return IntegrityError{
			Check:    check.Name,
			Expected: expected,
			Actual:   actual,
		}
	}
	return nil
}
