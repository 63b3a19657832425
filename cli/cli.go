package cli

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"cartkit/diagfmt"
	"cartkit/eeprom"
	"cartkit/eeprom/ecart"
	"cartkit/material"
	"cartkit/ui"
	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
)

type (
	Args struct {
		Encode      *EncodeCmd      `arg:"subcommand:encode"`
		Decode      *DecodeCmd      `arg:"subcommand:decode"`
		Create      *CreateCmd      `arg:"subcommand:create"`
		Material    *MaterialCmd    `arg:"subcommand:material"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive"`
	}
	EncodeCmd struct {
		MachineNumber string `arg:"-t,--machine-number,required" help:"machine number as 16 hex characters" placeholder:"2c30478bb7de81e8"`
		EepromUID     string `arg:"-e,--eeprom-uid,required" help:"EEPROM uid as 16 hex characters" placeholder:"11010a01ba325d23"`
		Diag          bool   `help:"write the diagnostic-port ASCII form instead of raw bytes"`
		Force         bool   `help:"overwrite the destination file"`
		From          string `arg:"required" help:"path to the cartridge JSON file" placeholder:"cartridge.json"`
		To            string `arg:"required" help:"path to the output image" placeholder:"eeprom.bin"`
	}
	DecodeCmd struct {
		MachineNumber string `arg:"-t,--machine-number,required" help:"machine number as 16 hex characters" placeholder:"2c30478bb7de81e8"`
		EepromUID     string `arg:"-e,--eeprom-uid,required" help:"EEPROM uid as 16 hex characters" placeholder:"11010a01ba325d23"`
		Diag          bool   `help:"read the input in the diagnostic-port ASCII form"`
		Force         bool   `help:"overwrite the destination file"`
		From          string `arg:"required" help:"path to the image dump" placeholder:"eeprom.bin"`
		To            string `arg:"required" help:"path to the cartridge JSON file" placeholder:"cartridge.json"`
	}
	CreateCmd struct {
		MaterialName      string  `arg:"-m,--material-name,required" help:"run \"material --list\" for the known names"`
		ManufacturingLot  string  `arg:"-l,--manufacturing-lot,required" placeholder:"1234"`
		ManufacturingDate string  `arg:"-d,--manufacturing-date,required" help:"format: 2006-01-02 15:04:05"`
		UseDate           string  `arg:"-u,--use-date,required" help:"format: 2006-01-02 15:04:05"`
		InitialMaterial   float64 `arg:"-n,--initial-material,required" help:"unit: cubic inches"`
		CurrentMaterial   float64 `arg:"-c,--current-material,required" help:"unit: cubic inches"`
		KeyFragment       string  `arg:"-k,--key-fragment,required" help:"16 hex characters" placeholder:"abcdef0123456789"`
		SerialNumber      float64 `arg:"-s,--serial-number,required" placeholder:"413203.0"`
		Version           uint16  `arg:"-v,--version" default:"1"`
		Signature         string  `arg:"-g,--signature" default:"STRATASYS"`
		To                string  `arg:"required" help:"path to the cartridge JSON file" placeholder:"cartridge.json"`
	}
	MaterialCmd struct {
		List bool `arg:"-l,--list" help:"print the known materials"`
	}
	InteractiveCmd struct {
		MachineNumber string `arg:"-t,--machine-number,required" help:"machine number as 16 hex characters"`
		EepromUID     string `arg:"-e,--eeprom-uid,required" help:"EEPROM uid as 16 hex characters"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"A CLI utility to read and write the EEPROM images of material",
			"cartridges in the command line: decode a dump into an editable",
			"JSON record, or burn a record back into a byte-exact image.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func checkDestination(path string, force bool) bool {
	if CheckExistence(path) && !force {
		println("Destination file existed. Please type the command again with --force to allow overwriting!")
		return false
	}
	return true
}

func parseIDs(machineNumber string, eepromUID string) ([8]byte, [8]byte, error) {
	machine, err := eeprom.ParseID(machineNumber)
	if err != nil {
		return machine, [8]byte{}, errors.Wrap(err, "invalid machine number")
	}
	uid, err := eeprom.ParseID(eepromUID)
	if err != nil {
		return machine, uid, errors.Wrap(err, "invalid EEPROM uid")
	}
	return machine, uid, nil
}

func StartEncoding(cmd EncodeCmd) {
	if !CheckExistence(cmd.From) {
		println("Source file does not exist!")
		return
	}
	if !checkDestination(cmd.To, cmd.Force) {
		return
	}
	machine, uid, err := parseIDs(cmd.MachineNumber, cmd.EepromUID)
	if err != nil {
		println(err.Error())
		return
	}
	recordBytes, err := ioutil.ReadFile(cmd.From)
	if err != nil {
		println("Error happened reading file at: " + cmd.From)
		return
	}
	c := ecart.Cartridge{}
	if err := json.Unmarshal(recordBytes, &c); err != nil {
		println("Error happened parsing the cartridge JSON: " + err.Error())
		return
	}
	image, err := eeprom.Encode(machine, uid, c)
	if err != nil {
		println("Error happened encoding the cartridge: " + err.Error())
		return
	}
	if cmd.Diag {
		comments := []string{
			"material name: " + c.MaterialName,
			"eeprom uid: " + cmd.EepromUID,
			"machine number: " + cmd.MachineNumber,
		}
		image = diagfmt.Dump(image, comments)
	}
	if err := ioutil.WriteFile(cmd.To, image, 0644); err != nil {
		println("Error happened writing to file at: " + cmd.To)
		return
	}
	println("Done encoding. Please check your result file at: " + cmd.To)
}

func StartDecoding(cmd DecodeCmd) {
	if !CheckExistence(cmd.From) {
		println("Source file does not exist!")
		return
	}
	if !checkDestination(cmd.To, cmd.Force) {
		return
	}
	machine, uid, err := parseIDs(cmd.MachineNumber, cmd.EepromUID)
	if err != nil {
		println(err.Error())
		return
	}
	image, err := ioutil.ReadFile(cmd.From)
	if err != nil {
		println("Error happened reading file at: " + cmd.From)
		return
	}
	if cmd.Diag {
		image, err = diagfmt.Parse(image)
		if err != nil {
			println("Error happened parsing the diagnostic-port form: " + err.Error())
			return
		}
	}
	c, err := eeprom.Decode(machine, uid, image)
	if err != nil {
		println("Error happened decoding the image: " + err.Error())
		return
	}
	recordBytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		println("Error happened rendering the cartridge JSON: " + err.Error())
		return
	}
	if err := ioutil.WriteFile(cmd.To, recordBytes, 0644); err != nil {
		println("Error happened writing to file at: " + cmd.To)
		return
	}
	println("Done decoding. Please check your result file at: " + cmd.To)
}

func StartCreating(cmd CreateCmd) {
	manufacturingDate, err := ecart.ParseTimestamp(cmd.ManufacturingDate)
	if err != nil {
		println("Error happened parsing the manufacturing date: " + err.Error())
		return
	}
	useDate, err := ecart.ParseTimestamp(cmd.UseDate)
	if err != nil {
		println("Error happened parsing the use date: " + err.Error())
		return
	}
	c := ecart.Cartridge{
		SerialNumber:            cmd.SerialNumber,
		MaterialName:            cmd.MaterialName,
		ManufacturingLot:        cmd.ManufacturingLot,
		Version:                 cmd.Version,
		ManufacturingDate:       manufacturingDate,
		LastUseDate:             useDate,
		InitialMaterialQuantity: cmd.InitialMaterial,
		CurrentMaterialQuantity: cmd.CurrentMaterial,
		KeyFragment:             cmd.KeyFragment,
		Signature:               cmd.Signature,
	}
	recordBytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		println("Error happened rendering the cartridge JSON: " + err.Error())
		return
	}
	if err := ioutil.WriteFile(cmd.To, recordBytes, 0644); err != nil {
		println("Error happened writing to file at: " + cmd.To)
		return
	}
	println("Done creating. Please check your result file at: " + cmd.To)
}

func StartMaterialListing(cmd MaterialCmd) {
	if !cmd.List {
		return
	}
	for _, entry := range material.Entries() {
		fmt.Printf("%d\t%s\n", entry.ID, entry.Name)
	}
}

func StartInteractive(cmd InteractiveCmd) {
	machine, uid, err := parseIDs(cmd.MachineNumber, cmd.EepromUID)
	if err != nil {
		println(err.Error())
		return
	}
	ui.Start(machine, uid)
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	switch {
	case args.Encode != nil:
		StartEncoding(*args.Encode)
	case args.Decode != nil:
		StartDecoding(*args.Decode)
	case args.Create != nil:
		StartCreating(*args.Create)
	case args.Material != nil:
		StartMaterialListing(*args.Material)
	case args.Interactive != nil:
		StartInteractive(*args.Interactive)
	default:
		parser.WriteHelp(os.Stdout)
	}
}
