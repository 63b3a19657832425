package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func Start(machineNumber, eepromUID [8]byte) {
	browser := CreateDumpBrowser(machineNumber, eepromUID)
	if err := tea.NewProgram(&browser).Start(); err != nil {
		panic(err)
	}
}
