// Package edesx is the cipher port of the codec: a DES variant with key
// whitening, applied in ECB fashion over 8-byte blocks. Ciphertext length
// always equals plaintext length; there is no padding.
package edesx

import (
	"crypto/cipher"
	"crypto/des"

	"github.com/pkg/errors"
)

const (
	// KeySize is 8 whitening bytes followed by 8 DES key bytes.
	KeySize   = 16
	BlockSize = 8
)

func splitKey(key []byte) (cipher.Block, []byte, error) {
	if len(key) != KeySize {
		return nil, nil, errors.Errorf("splitKey error: expected a %d byte key, got %d bytes", KeySize, len(key))
	}
	whitening := key[:BlockSize]
	block, err := des.NewCipher(key[BlockSize:])
	if err != nil {
		return nil, nil, errors.Wrap(err, "splitKey error")
	}
	return block, whitening, nil
}

func xorBlock(dst, src, whitening []byte) {
	for i := 0; i < BlockSize; i++ {
		dst[i] = src[i] ^ whitening[i]
	}
}

// Encrypt transforms each 8-byte block of plaintext as DES(p ^ w) ^ w.
func Encrypt(key []byte, plaintext []byte) ([]byte, error) {
	block, whitening, err := splitKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "edesx.Encrypt error")
	}
	if len(plaintext)%BlockSize != 0 {
		return nil, errors.Errorf("edesx.Encrypt error: plaintext length %d is not a multiple of %d", len(plaintext), BlockSize)
	}
	ciphertext := make([]byte, len(plaintext))
	buf := make([]byte, BlockSize)
	for i := 0; i < len(plaintext); i += BlockSize {
		xorBlock(buf, plaintext[i:i+BlockSize], whitening)
		block.Encrypt(ciphertext[i:i+BlockSize], buf)
		xorBlock(ciphertext[i:i+BlockSize], ciphertext[i:i+BlockSize], whitening)
	}
	return ciphertext, nil
}

// Decrypt is the exact inverse of Encrypt.
func Decrypt(key []byte, ciphertext []byte) ([]byte, error) {
	block, whitening, err := splitKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "edesx.Decrypt error")
	}
	if len(ciphertext)%BlockSize != 0 {
		return nil, errors.Errorf("edesx.Decrypt error: ciphertext length %d is not a multiple of %d", len(ciphertext), BlockSize)
	}
	plaintext := make([]byte, len(ciphertext))
	buf := make([]byte, BlockSize)
	for i := 0; i < len(ciphertext); i += BlockSize {
		xorBlock(buf, ciphertext[i:i+BlockSize], whitening)
		block.Decrypt(plaintext[i:i+BlockSize], buf)
		xorBlock(plaintext[i:i+BlockSize], plaintext[i:i+BlockSize], whitening)
	}
	return plaintext, nil
}
