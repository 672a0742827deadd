package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // confirmed, free
	ColorWarning   = lipgloss.Color("#FFB800") // pending, stale
	ColorError     = lipgloss.Color("#FF4444")
	ColorInfo      = lipgloss.Color("#4CC9F0")
	ColorAddress   = lipgloss.Color("#00B4D8")
	ColorValue     = lipgloss.Color("#FFFFFF")
	ColorMeta      = lipgloss.Color("#555555")
	ColorBorder    = lipgloss.Color("#1E3A5F")
	ColorBrand     = lipgloss.Color("#9B5DE5")
	ColorHighlight = lipgloss.Color("#F15BB5") // button, selected rows
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleBrand   = lipgloss.NewStyle().Foreground(ColorBrand).Bold(true)
	StyleDim     = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleKey     = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorBrand).
			Bold(true).
			MarginBottom(1)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	// StyleButton is the enabled mint button; StyleButtonOff the disabled one.
	StyleButton = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true).
			Padding(0, 2)

	StyleButtonOff = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 2)

	StyleInput = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Width(8).
			Padding(0, 1)
)

// Banner returns the mintpad banner.
func Banner() string {
	art := `
  ┌┬┐┬┌┐┌┌┬┐┌─┐┌─┐┌┬┐
  │││││││ │ ├─┘├─┤ ││
  ┴ ┴┴┘└┘ ┴ ┴  ┴ ┴─┴┘`
	return StyleBrand.Render(art) + "\n" + StyleMeta.Render("  terminal minting for EVM collections") + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Info formats a neutral status line.
func Info(msg string) string { return StyleInfo.Render("ℹ " + msg) }

// Hint formats a suggestion for what to run next.
func Hint(msg string) string { return StyleMeta.Render("→ " + msg) }

// Addr formats an address.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// TruncateAddr shortens an address for tables: 0x1234…5678.
func TruncateAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// Condense is the connected-wallet label: first and last five characters.
func Condense(addr string) string {
	if len(addr) <= 13 {
		return addr
	}
	return addr[:5] + "..." + addr[len(addr)-5:]
}
