package elayout

import (
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"cartkit/eeprom/ebuf"
	"cartkit/eeprom/ecart"
	"cartkit/eeprom/echain"
	"cartkit/material"
	"github.com/pkg/errors"
)

// Unpack is the inverse of Pack. It expects fully decrypted bytes and
// verifies both plaintext checksums before reading a single field, so a
// record that fails validation never reaches the caller.
func Unpack(image []byte) (*ecart.Cartridge, error) {
	if len(image) != ImageSize {
		return nil, EncodingError{
			Field:  "image",
			Reason: fmt.Sprintf("expected %d bytes, got %d", ImageSize, len(image)),
		}
	}
	if err := echain.Verify(image, echain.PlainContent); err != nil {
		return nil, errors.Wrap(err, "elayout.Unpack error")
	}
	if err := echain.Verify(image, echain.PlainQuantity); err != nil {
		return nil, errors.Wrap(err, "elayout.Unpack error")
	}

	materialName, err := material.NameFromID(materialID(image))
	if err != nil {
		return nil, errors.Wrap(err, "elayout.Unpack error")
	}

	c := ecart.Cartridge{
		SerialNumber:            ebuf.GetFloat64(image, FieldSerialNumber.Offset),
		MaterialName:            materialName,
		ManufacturingLot:        ebuf.GetString(image, FieldManufacturingLot.Offset, FieldManufacturingLot.Width),
		Version:                 ebuf.GetUint16(image, FieldVersion.Offset),
		ManufacturingDate:       getDate(image, FieldManufacturingDate),
		LastUseDate:             getDate(image, FieldLastUseDate),
		InitialMaterialQuantity: ebuf.GetFloat64(image, FieldInitialQuantity.Offset),
		CurrentMaterialQuantity: ebuf.GetFloat64(image, FieldCurrentQuantity.Offset),
		KeyFragment:             hex.EncodeToString(ebuf.GetBytes(image, FieldKeyFragment.Offset, FieldKeyFragment.Width)),
		Signature:               ebuf.GetString(image, FieldSignature.Offset, FieldSignature.Width),
	}
	return &c, nil
}

// materialID narrows the stored double to an id the table can look up. A
// value that is not a small non-negative integer maps to -1, which fails the
// lookup instead of crashing on a float conversion.
func materialID(image []byte) int {
	value := ebuf.GetFloat64(image, FieldMaterialID.Offset)
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > math.MaxInt32 {
		return -1
	}
	return int(value)
}

func getDate(image []byte, spec FieldSpec) ecart.Timestamp {
	offset := spec.Offset
	return ecart.NewTimestamp(
		int(ebuf.GetUint16(image, offset))+1900,
		time.Month(image[offset+2]),
		int(image[offset+3]),
		int(image[offset+4]),
		int(image[offset+5]),
		int(ebuf.GetUint16(image, offset+6)),
	)
}
