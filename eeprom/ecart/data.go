// Package ecart stores the domain representation of a material cartridge:
// the fully decoded counterpart of the raw EEPROM image.
package ecart

type (
	Cartridge struct {
		SerialNumber            float64   `json:"serial_number"`
		MaterialName            string    `json:"material_name"`
		ManufacturingLot        string    `json:"manufacturing_lot"`
		Version                 uint16    `json:"version"`
		ManufacturingDate       Timestamp `json:"manufacturing_date"`
		LastUseDate             Timestamp `json:"last_use_date"`
		InitialMaterialQuantity float64   `json:"initial_material_quantity"`
		CurrentMaterialQuantity float64   `json:"current_material_quantity"`
		// KeyFragment holds the 8 device-binding bytes as 16 hex characters.
		// It is stored on the EEPROM in the clear and never encrypted.
		KeyFragment string `json:"key_fragment"`
		Signature   string `json:"signature"`
	}
)
