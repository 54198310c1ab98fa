package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	promptColor     = color.New(color.FgCyan)
	successColor    = color.New(color.FgGreen)
	warnColor       = color.New(color.FgYellow)
	errorColor      = color.New(color.FgRed)
	identifierColor = color.New(color.FgBlue)
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)
