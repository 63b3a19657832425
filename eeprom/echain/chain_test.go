package echain

import (
	"testing"

	"cartkit/eeprom/ebuf"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createImage() []byte {
	image := make([]byte, 0x71)
	for i := range image {
		image[i] = byte(i)
	}
	return image
}

func TestStampThenVerify(t *testing.T) {
	image := createImage()
	checks := []Check{PlainContent, CryptedContent, KeyFragment, CryptedQuantity, PlainQuantity}
	lo.ForEach(checks, func(check Check, _ int) {
		Stamp(image, check)
		assert.NoErrorf(t, Verify(image, check), check.Name)
	})
}

func TestVerifyMismatch(t *testing.T) {
	image := createImage()
	Stamp(image, PlainContent)
	image[0x10] ^= 0x01

	err := Verify(image, PlainContent)
	require.Error(t, err)

	integrityErr := IntegrityError{}
	require.True(t, errors.As(err, &integrityErr))
	assert.Equal(t, "plain content", integrityErr.Check)
	assert.Equal(t, ebuf.GetUint16(image, PlainContent.Slot), integrityErr.Expected)
	assert.Equal(t, Compute(image, PlainContent), integrityErr.Actual)
	assert.NotEqual(t, integrityErr.Expected, integrityErr.Actual)
}

func TestSlotsSitOutsideTheirRegions(t *testing.T) {
	// stamping a check must never change the bytes it covers
	checks := []Check{PlainContent, CryptedContent, KeyFragment, CryptedQuantity, PlainQuantity}
	lo.ForEach(checks, func(check Check, _ int) {
		assert.Truef(t, check.Slot >= check.End || check.Slot+2 <= check.Start, check.Name)
	})
}
