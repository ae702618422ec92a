package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

const bannerArt = `
 ███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗███╗   ███╗ █████╗ ████████╗███████╗
 ██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝████╗ ████║██╔══██╗╚══██╔══╝██╔════╝
 ███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝ ██╔████╔██║███████║   ██║   █████╗
 ╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝  ██║╚██╔╝██║██╔══██║   ██║   ██╔══╝
 ███████║   ██║   ╚██████╔╝██████╔╝   ██║   ██║ ╚═╝ ██║██║  ██║   ██║   ███████╗
 ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝   ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚══════╝`

const bannerCompact = "S T U D Y M A T E"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 80

// RenderBanner returns the STUDYMATE banner styled in the primary color,
// or the compact fallback when the art does not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
