package elayout

import (
	"strings"
	"testing"
	"time"

	"cartkit/eeprom/ebuf"
	"cartkit/eeprom/ecart"
	"cartkit/eeprom/echain"
	"cartkit/material"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCartridge() ecart.Cartridge {
	return ecart.Cartridge{
		SerialNumber:            413203.0,
		MaterialName:            "ABS",
		ManufacturingLot:        "1234",
		Version:                 1,
		ManufacturingDate:       ecart.NewTimestamp(2014, time.January, 2, 13, 14, 15),
		LastUseDate:             ecart.NewTimestamp(2014, time.March, 4, 5, 6, 7),
		InitialMaterialQuantity: 92.3,
		CurrentMaterialQuantity: 91.5,
		KeyFragment:             "4142434445464748",
		Signature:               "STRATASYS",
	}
}

func TestPackOffsets(t *testing.T) {
	c := createCartridge()
	image, err := Pack(c)
	require.NoError(t, err)
	require.Len(t, image, ImageSize)

	assert.Equal(t, 413203.0, ebuf.GetFloat64(image, FieldSerialNumber.Offset))
	assert.Equal(t, 0.0, ebuf.GetFloat64(image, FieldMaterialID.Offset))
	assert.Equal(t, "1234", ebuf.GetString(image, FieldManufacturingLot.Offset, FieldManufacturingLot.Width))
	assert.EqualValues(t, 0, image[FieldManufacturingLot.Offset+4], "lot is NUL padded")
	assert.EqualValues(t, 1, ebuf.GetUint16(image, FieldVersion.Offset))

	offset := FieldManufacturingDate.Offset
	assert.EqualValues(t, 2014-1900, ebuf.GetUint16(image, offset))
	assert.EqualValues(t, 1, image[offset+2])
	assert.EqualValues(t, 2, image[offset+3])
	assert.EqualValues(t, 13, image[offset+4])
	assert.EqualValues(t, 14, image[offset+5])
	assert.EqualValues(t, 15, ebuf.GetUint16(image, offset+6))

	assert.Equal(t, 92.3, ebuf.GetFloat64(image, FieldInitialQuantity.Offset))
	assert.Equal(t, []byte("ABCDEFGH"), ebuf.GetBytes(image, FieldKeyFragment.Offset, FieldKeyFragment.Width))
	assert.Equal(t, 91.5, ebuf.GetFloat64(image, FieldCurrentQuantity.Offset))
	assert.Equal(t, "STRATASYS", ebuf.GetString(image, FieldSignature.Offset, FieldSignature.Width))
}

func TestPackStampsPlaintextChecksums(t *testing.T) {
	image, err := Pack(createCartridge())
	require.NoError(t, err)

	assert.NoError(t, echain.Verify(image, echain.PlainContent))
	assert.NoError(t, echain.Verify(image, echain.KeyFragment))
	assert.NoError(t, echain.Verify(image, echain.PlainQuantity))
}

func TestPackUnpackRoundTrip(t *testing.T) {
	c := createCartridge()
	image, err := Pack(c)
	require.NoError(t, err)

	unpacked, err := Unpack(image)
	require.NoError(t, err)
	assert.Equal(t, c, *unpacked)
}

func TestPackFieldTooWide(t *testing.T) {
	tests := map[string]ecart.Cartridge{}

	lotTooLong := createCartridge()
	lotTooLong.ManufacturingLot = strings.Repeat("1", FieldManufacturingLot.Width+1)
	tests["manufacturing_lot"] = lotTooLong

	signatureTooLong := createCartridge()
	signatureTooLong.Signature = "0123456789"
	tests["signature"] = signatureTooLong

	for field, c := range tests {
		_, err := Pack(c)
		require.Errorf(t, err, field)

		encodingErr := EncodingError{}
		require.Truef(t, errors.As(err, &encodingErr), field)
		assert.Equal(t, field, encodingErr.Field)
	}
}

func TestPackBadKeyFragment(t *testing.T) {
	for _, fragment := range []string{"zz42434445464748", "4142", ""} {
		c := createCartridge()
		c.KeyFragment = fragment

		_, err := Pack(c)
		require.Errorf(t, err, `fragment "%s"`, fragment)

		encodingErr := EncodingError{}
		require.True(t, errors.As(err, &encodingErr))
		assert.Equal(t, "key_fragment", encodingErr.Field)
	}
}

func TestPackUnknownMaterial(t *testing.T) {
	c := createCartridge()
	c.MaterialName = "VIBRANIUM"

	_, err := Pack(c)
	require.Error(t, err)

	unknownErr := material.UnknownMaterialError{}
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "VIBRANIUM", unknownErr.Name)
}

func TestPackYearBefore1900(t *testing.T) {
	c := createCartridge()
	c.ManufacturingDate = ecart.NewTimestamp(1899, time.December, 31, 23, 59, 59)

	_, err := Pack(c)
	require.Error(t, err)

	encodingErr := EncodingError{}
	require.True(t, errors.As(err, &encodingErr))
	assert.Equal(t, "manufacturing_date", encodingErr.Field)
}

func TestUnpackRejectsTampering(t *testing.T) {
	image, err := Pack(createCartridge())
	require.NoError(t, err)

	for _, offset := range []int{0x00, 0x10, 0x3F, 0x58, 0x5F} {
		tampered := make([]byte, len(image))
		copy(tampered, image)
		tampered[offset] ^= 0x01

		_, err := Unpack(tampered)
		require.Errorf(t, err, "offset %#02x", offset)

		integrityErr := echain.IntegrityError{}
		require.Truef(t, errors.As(err, &integrityErr), "offset %#02x", offset)
	}
}

func TestUnpackRejectsWrongSize(t *testing.T) {
	_, err := Unpack(make([]byte, ImageSize-1))
	assert.Error(t, err)
	_, err = Unpack(nil)
	assert.Error(t, err)
}

func TestUnpackUnknownMaterialID(t *testing.T) {
	image, err := Pack(createCartridge())
	require.NoError(t, err)

	// overwrite the material id and restamp, so only the lookup can fail
	ebuf.PutFloat64(image, FieldMaterialID.Offset, 9999.0)
	echain.Stamp(image, echain.PlainContent)

	_, err = Unpack(image)
	require.Error(t, err)

	unknownErr := material.UnknownMaterialError{}
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, 9999, unknownErr.ID)
}
