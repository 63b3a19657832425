package elayout

import (
	"encoding/hex"
	"fmt"
	"math"

	"cartkit/eeprom/ebuf"
	"cartkit/eeprom/ecart"
	"cartkit/eeprom/echain"
	"cartkit/material"
	"github.com/pkg/errors"
)

// Pack writes every cartridge field at its fixed offset and stamps the three
// plaintext checksums (content, key fragment, current quantity). The result
// is a fresh buffer ready for the encryption stage; Pack itself never
// encrypts anything.
func Pack(c ecart.Cartridge) ([]byte, error) {
	image := make([]byte, ImageSize)

	ebuf.PutFloat64(image, FieldSerialNumber.Offset, c.SerialNumber)
	materialID, err := material.IDFromName(c.MaterialName)
	if err != nil {
		return nil, errors.Wrap(err, "elayout.Pack error")
	}
	// The numeric id is stored as a double, like the other numerics.
	ebuf.PutFloat64(image, FieldMaterialID.Offset, float64(materialID))
	if err := putString(image, "manufacturing_lot", FieldManufacturingLot, c.ManufacturingLot); err != nil {
		return nil, err
	}
	ebuf.PutUint16(image, FieldVersion.Offset, c.Version)
	if err := putDate(image, "manufacturing_date", FieldManufacturingDate, c.ManufacturingDate); err != nil {
		return nil, err
	}
	if err := putDate(image, "last_use_date", FieldLastUseDate, c.LastUseDate); err != nil {
		return nil, err
	}
	ebuf.PutFloat64(image, FieldInitialQuantity.Offset, c.InitialMaterialQuantity)
	echain.Stamp(image, echain.PlainContent)

	fragment, err := decodeKeyFragment(c.KeyFragment)
	if err != nil {
		return nil, err
	}
	ebuf.PutBytes(image, FieldKeyFragment.Offset, fragment)
	echain.Stamp(image, echain.KeyFragment)

	ebuf.PutFloat64(image, FieldCurrentQuantity.Offset, c.CurrentMaterialQuantity)
	echain.Stamp(image, echain.PlainQuantity)

	if err := putString(image, "signature", FieldSignature, c.Signature); err != nil {
		return nil, err
	}

	return image, nil
}

func putString(image []byte, name string, spec FieldSpec, value string) error {
	if len(value) > spec.Width {
		return EncodingError{
			Field:  name,
			Reason: fmt.Sprintf("%d bytes does not fit in %d", len(value), spec.Width),
		}
	}
	ebuf.PutBytes(image, spec.Offset, []byte(value))
	return nil
}

// putDate decomposes a timestamp into (year-1900, month, day, hour, minute,
// second) with the caller's calendar fields written verbatim. The year and
// the second take two bytes each; the rest take one.
func putDate(image []byte, name string, spec FieldSpec, t ecart.Timestamp) error {
	year := t.Year() - 1900
	if year < 0 || year > math.MaxUint16 {
		return EncodingError{
			Field:  name,
			Reason: fmt.Sprintf("year %d is not storable as an offset from 1900", t.Year()),
		}
	}
	offset := spec.Offset
	ebuf.PutUint16(image, offset, uint16(year))
	image[offset+2] = byte(t.Month())
	image[offset+3] = byte(t.Day())
	image[offset+4] = byte(t.Hour())
	image[offset+5] = byte(t.Minute())
	ebuf.PutUint16(image, offset+6, uint16(t.Second()))
	return nil
}

func decodeKeyFragment(value string) ([]byte, error) {
	fragment, err := hex.DecodeString(value)
	if err != nil {
		return nil, EncodingError{Field: "key_fragment", Reason: err.Error()}
	}
	if len(fragment) != FieldKeyFragment.Width {
		return nil, EncodingError{
			Field:  "key_fragment",
			Reason: fmt.Sprintf("expected %d bytes, got %d", FieldKeyFragment.Width, len(fragment)),
		}
	}
	return fragment, nil
}
