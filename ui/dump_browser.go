package ui

import (
	"encoding/json"
	"io/fs"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cartkit/eeprom"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// DumpBrowser lists the .bin files of the working directory and decodes the
// selected one in place, with the machine number and EEPROM uid fixed at
// start time.
type DumpBrowser struct {
	machineNumber [8]byte
	eepromUID     [8]byte
	cwd           string
	dumps         []string
	cursor        int
	decoded       string
	errMsg        string
}

func CreateDumpBrowser(machineNumber, eepromUID [8]byte) DumpBrowser {
	cwd, err := os.Getwd()
	if err != nil {
		err := errors.Wrap(err, "CreateDumpBrowser get current working directory error")
		log.Panic(err)
	}
	return DumpBrowser{
		machineNumber: machineNumber,
		eepromUID:     eepromUID,
		cwd:           cwd,
		dumps:         readDumps(cwd),
	}
}

func readDumps(path string) []string {
	files, err := ioutil.ReadDir(path)
	if err != nil {
		log.Fatal(err)
	}
	return lo.FilterMap(
		files,
		func(file fs.FileInfo, _ int) (string, bool) {
			return file.Name(), strings.HasSuffix(file.Name(), ".bin")
		},
	)
}

func (s *DumpBrowser) decodeSelected() {
	if len(s.dumps) == 0 {
		return
	}
	s.decoded = ""
	image, err := ioutil.ReadFile(filepath.Join(s.cwd, s.dumps[s.cursor]))
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	c, err := eeprom.Decode(s.machineNumber, s.eepromUID, image)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	pretty, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.decoded = string(pretty)
	s.errMsg = ""
}

func (s *DumpBrowser) Init() tea.Cmd {
	return nil
}

func (s *DumpBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return s, tea.Quit
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.dumps)-1 {
				s.cursor++
			}
		case "enter":
			s.decodeSelected()
		}
	}
	return s, nil
}

func (s *DumpBrowser) View() string {
	output := "CARTRIDGE EEPROM BROWSER\n\n"
	output += "Current directory: " + s.cwd + "\n\n"

	if len(s.dumps) == 0 {
		output += "No .bin dumps in here. Please start the tool from a directory holding them.\n"
		return output
	}
	for i, dump := range s.dumps {
		marker := "  "
		if i == s.cursor {
			marker = "> "
		}
		output += marker + dump + "\n"
	}
	output += "\n"
	if s.errMsg != "" {
		output += "Decoding failed: " + s.errMsg + "\n"
	}
	if s.decoded != "" {
		output += s.decoded + "\n"
	}
	output += "\n(enter decodes, q quits)\n"
	return output
}
