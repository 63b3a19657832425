// Package material is the bidirectional lookup between material names and
// the numeric ids stored on cartridge EEPROMs.
package material

import (
	"fmt"

	"github.com/samber/lo"
)

type (
	Entry struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	UnknownMaterialError struct {
		Name string
		ID   int
	}
)

func (r UnknownMaterialError) Error() string {
	if r.Name != "" {
		return fmt.Sprintf(`unknown material name "%s"`, r.Name)
	}
	return fmt.Sprintf(`unknown material id "%d"`, r.ID)
}

const unknownName = "unknown"

// idToName is indexed by the numeric id; ids with no known assignment hold
// "unknown" and fail lookups in both directions.
var idToName = []string{
	"ABS",
	"ABS_RED",
	"ABS_GRN",
	"ABS_BLK",
	"ABS_YEL",
	"ABS_BLU",
	"ABS_CST",
	"ABSI",
	"ABSI_RED",
	"ABSI_GRN",
	"ABSI_BLK",
	"ABSI_YEL",
	"ABSI_BLU",
	"ABSI_AMB",
	"ABSI_CST",
	"ABS_S",
	"PC",
	unknownName,
	unknownName,
	"ABS_SS",
	"PC_RED",
	unknownName,
	"PC_S",
	"ULT9085",
	unknownName,
	"ULT_S",
	"PPSF",
	"PPSF_S",
	unknownName,
	unknownName,
	"P401",
	unknownName,
	"ABS_SGRY",
	"PC_ABS",
	"PC_ABS_RED",
	unknownName,
	"PC_ABS_BLK",
	"PC_ISO",
	unknownName,
	"ABS_M30",
	"ABS_M30_RED",
	"ABS_M30_GRN",
	"ABS_M30_BLK",
	"ABS_M30_YEL",
	"ABS_M30_BLU",
	unknownName,
	"ABS_M30I",
	"ABS_ESD7",
	unknownName,
	"ASA",
	"NYLON12",
	"SR20",
	"SR30",
	"SR100",
}

var nameToID = func() map[string]int {
	m := make(map[string]int, len(idToName))
	for id, name := range idToName {
		if name == unknownName {
			continue
		}
		m[name] = id
	}
	return m
}()

func IDFromName(name string) (int, error) {
	id, ok := nameToID[name]
	if !ok {
		return 0, UnknownMaterialError{Name: name, ID: -1}
	}
	return id, nil
}

func NameFromID(id int) (string, error) {
	if id < 0 || id >= len(idToName) || idToName[id] == unknownName {
		return "", UnknownMaterialError{ID: id}
	}
	return idToName[id], nil
}

// Entries lists every known material with its id, in table order.
func Entries() []Entry {
	return lo.FilterMap(
		idToName,
		func(name string, id int) (Entry, bool) {
			return Entry{ID: id, Name: name}, name != unknownName
		},
	)
}
