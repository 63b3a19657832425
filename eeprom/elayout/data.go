// Package elayout converts a cartridge record to and from the fixed-size
// EEPROM byte image. Packing and unpacking both consult the one field table
// below, so the two directions cannot disagree on an offset or a width.
package elayout

import (
	"fmt"
)

// ImageSize is the exact on-chip image length. The image is never resized.
const ImageSize = 0x71

type (
	FieldSpec struct {
		Offset int
		Width  int
	}
	EncodingError struct {
		Field  string
		Reason string
	}
)

var (
	FieldSerialNumber      = FieldSpec{0x00, 8}
	FieldMaterialID        = FieldSpec{0x08, 8}
	FieldManufacturingLot  = FieldSpec{0x10, 20}
	FieldVersion           = FieldSpec{0x24, 2}
	FieldManufacturingDate = FieldSpec{0x28, 8}
	FieldLastUseDate       = FieldSpec{0x30, 8}
	FieldInitialQuantity   = FieldSpec{0x38, 8}
	FieldKeyFragment       = FieldSpec{0x48, 8}
	FieldCurrentQuantity   = FieldSpec{0x58, 8}
	FieldSignature         = FieldSpec{0x68, 9}
)

func (r EncodingError) Error() string {
	return fmt.Sprintf(`cannot encode field "%s": %s`, r.Field, r.Reason)
}
