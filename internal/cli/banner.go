package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

const banner = `
 _____                 _
| ____|_ __ ___  _ __ | | ___  _   _  ___  ___
|  _| | '_ ` + "`" + ` _ \| '_ \| |/ _ \| | | |/ _ \/ _ \
| |___| | | | | | |_) | | (_) | |_| |  __/  __/
|_____|_| |_| |_| .__/|_|\___/ \__, |\___|\___|
                |_|            |___/
 __  __
|  \/  | __ _ _ __   __ _  __ _  ___ _ __
| |\/| |/ _` + "`" + ` | '_ \ / _` + "`" + ` |/ _` + "`" + ` |/ _ \ '__|
| |  | | (_| | | | | (_| | (_| |  __/ |
|_|  |_|\__,_|_| |_|\__,_|\__, |\___|_|
                          |___/                 `

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 2)

// PrintBanner writes the startup banner.
func PrintBanner(w io.Writer) {
	_, _ = io.WriteString(w, bannerStyle.Render(banner)+"\n")
}
