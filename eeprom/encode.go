package eeprom

import (
	"cartkit/eeprom/ecart"
	"cartkit/eeprom/echain"
	"cartkit/eeprom/edesx"
	"cartkit/eeprom/elayout"
	"github.com/pkg/errors"
)

// Encode turns a cartridge into the exact byte image its EEPROM stores:
// pack, derive the device-bound key, encrypt the content and quantity
// regions, and stamp a checksum over each encrypted region. Either every
// step succeeds or no image is returned at all.
func Encode(machineNumber, deviceUID [8]byte, c ecart.Cartridge) ([]byte, error) {
	packed, err := elayout.Pack(c)
	if err != nil {
		return nil, errors.Wrap(err, "eeprom.Encode error")
	}
	image, err := encryptRegions(machineNumber, deviceUID, packed)
	if err != nil {
		return nil, errors.Wrap(err, "eeprom.Encode error")
	}
	return image, nil
}

// encryptRegions returns a new buffer: packed stays plaintext throughout, so
// a checksum can never silently be computed over a half-transformed region.
func encryptRegions(machineNumber, deviceUID [8]byte, packed []byte) ([]byte, error) {
	key := deriveKey(packed, machineNumber, deviceUID)
	image := make([]byte, len(packed))
	copy(image, packed)

	content, err := edesx.Encrypt(key[:], packed[echain.CryptedContent.Start:echain.CryptedContent.End])
	if err != nil {
		return nil, err
	}
	copy(image[echain.CryptedContent.Start:], content)
	echain.Stamp(image, echain.CryptedContent)

	quantity, err := edesx.Encrypt(key[:], packed[echain.CryptedQuantity.Start:echain.CryptedQuantity.End])
	if err != nil {
		return nil, err
	}
	copy(image[echain.CryptedQuantity.Start:], quantity)
	echain.Stamp(image, echain.CryptedQuantity)

	return image, nil
}
