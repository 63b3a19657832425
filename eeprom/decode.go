package eeprom

import (
	"fmt"

	"cartkit/eeprom/ecart"
	"cartkit/eeprom/echain"
	"cartkit/eeprom/edesx"
	"cartkit/eeprom/elayout"
	"github.com/pkg/errors"
)

// Decode reverses Encode. Each encrypted region's checksum is verified
// before that region is decrypted, and the plaintext checksums are verified
// before any field is read, so a mismatch anywhere means no record comes
// back at all.
//
// Decoding with the wrong machine number or EEPROM uid derives the wrong
// key: the encrypted-region checksums still pass, but the garbage plaintext
// fails its checksum and the call errors out instead of returning a record.
func Decode(machineNumber, deviceUID [8]byte, image []byte) (*ecart.Cartridge, error) {
	if !IsImage(image) {
		return nil, elayout.EncodingError{
			Field:  "image",
			Reason: fmt.Sprintf("expected %d bytes, got %d", elayout.ImageSize, len(image)),
		}
	}
	packed, err := decryptRegions(machineNumber, deviceUID, image)
	if err != nil {
		return nil, errors.Wrap(err, "eeprom.Decode error")
	}
	c, err := elayout.Unpack(packed)
	if err != nil {
		return nil, errors.Wrap(err, "eeprom.Decode error")
	}
	return c, nil
}

func decryptRegions(machineNumber, deviceUID [8]byte, image []byte) ([]byte, error) {
	key := deriveKey(image, machineNumber, deviceUID)
	packed := make([]byte, len(image))
	copy(packed, image)

	if err := echain.Verify(image, echain.CryptedContent); err != nil {
		return nil, err
	}
	content, err := edesx.Decrypt(key[:], image[echain.CryptedContent.Start:echain.CryptedContent.End])
	if err != nil {
		return nil, err
	}
	copy(packed[echain.CryptedContent.Start:], content)

	if err := echain.Verify(image, echain.CryptedQuantity); err != nil {
		return nil, err
	}
	quantity, err := edesx.Decrypt(key[:], image[echain.CryptedQuantity.Start:echain.CryptedQuantity.End])
	if err != nil {
		return nil, err
	}
	copy(packed[echain.CryptedQuantity.Start:], quantity)

	return packed, nil
}
