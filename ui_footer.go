package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

type footerState struct {
	Mode      mode
	ModeInput string

	FileName  string
	Columns   []string
	Transform string
	Dragging  bool

	Visible   int
	TotalRows int

	StatusMessage string
	Legend        string
}

type footerStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	FileNameFG lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	DragFG     lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
}

func defaultFooterStyles() footerStyles {
	return footerStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		FileNameFG: lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		DragFG:     lipgloss.Color("#5fd7ff"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
	}
}

// renderFooter draws the control bar (mode, file, columns, transform, row
// counts) above the status bar (notice or window, key legend).
func renderFooter(width int, st footerState, styles footerStyles) string {
	if width <= 0 {
		return ""
	}
	if st.Legend == "" {
		st.Legend = modeHints(st.Mode)
	}
	st.Visible = max(st.Visible, 0)
	st.TotalRows = max(st.TotalRows, 0)

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func renderControlBar(width int, st footerState, styles footerStyles) string {
	gapW := 1

	rightPlain := fmt.Sprintf(" Rows %d/%d", st.Visible, st.TotalRows)
	rightPlain = truncatePlain(rightPlain, width)
	rightW := runeWidth(rightPlain)
	leftW := max(width-rightW, 0)

	modeText := modeLabel(st.Mode)
	modeColW := min(runeWidth(modeText)+2, leftW)
	statusPlain := statusSegmentText(st)
	statusColW := min(runeWidth(statusPlain), max(leftW-modeColW-2*gapW, 0))
	fileColW := max(leftW-modeColW-statusColW-2*gapW, 0)

	modeSeg := renderModeSegment(modeColW, modeText, styles)
	fileSeg := renderFileSegment(fileColW, st, styles)
	statusSeg := renderStatusSegment(statusColW, statusPlain, st, styles)

	left := modeSeg + strings.Repeat(" ", gapW) + fileSeg + strings.Repeat(" ", gapW) + statusSeg
	leftWActual := modeColW + fileColW + statusColW + 2*gapW
	if leftWActual < leftW {
		left += strings.Repeat(" ", leftW-leftWActual)
	}
	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st footerState, styles footerStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	legendW := runeWidth(legendPlain)
	leftW := max(width-legendW, 0)

	msgPlain := truncatePlain(st.StatusMessage, leftW)
	msgPlain = padRightPlain(msgPlain, leftW)

	linePlain := applyFG(msgPlain, styles.StatusFG, styles.StatusFG) + applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(linePlain, styles.StatusBG, styles.StatusFG)
}

func renderModeSegment(colW int, label string, styles footerStyles) string {
	if colW <= 0 {
		return ""
	}
	pillPlain := truncatePlain(" "+label+" ", colW)
	pad := strings.Repeat(" ", colW-runeWidth(pillPlain))

	pill := ansiBg(styles.ModePillBG) + ansiFg(styles.ModePillFG) + pillPlain
	pill += ansiBg(styles.BarBG) + ansiFg(styles.TextFG) + pad
	return pill
}

// renderFileSegment shows "▸ file ▸ col1, col2", or the drawer's input
// instead of the columns while one is being edited.
func renderFileSegment(colW int, st footerState, styles footerStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.FileName)
	if name == "" {
		name = "(no file)"
	}
	filePlain := truncatePlain("▸ "+name, colW)
	remaining := colW - runeWidth(filePlain)

	detail := strings.Join(st.Columns, ", ")
	if input := strings.TrimSpace(st.ModeInput); input != "" {
		detail = input
	}
	if detail == "" {
		detail = "no numeric columns"
	}
	detailPlain := ""
	if remaining > 0 {
		detailPlain = truncatePlain(" ▸ "+detail, remaining)
		remaining -= runeWidth(detailPlain)
	}
	pad := strings.Repeat(" ", max(remaining, 0))
	return applyFG(filePlain, styles.FileNameFG, styles.TextFG) + applyFG(detailPlain, styles.DimFG, styles.TextFG) + pad
}

func statusSegmentText(st footerState) string {
	drag := "idle"
	if st.Dragging {
		drag = "DRAG"
	}
	return fmt.Sprintf("[%s] · [%s]", st.Transform, drag)
}

func renderStatusSegment(colW int, plain string, st footerState, styles footerStyles) string {
	if colW <= 0 {
		return ""
	}
	plain = padRightPlain(truncatePlain(plain, colW), colW)
	fg := styles.DimFG
	if st.Dragging {
		fg = styles.DragFG
	}
	return applyFG(plain, fg, styles.TextFG)
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return ansiBg(bg) + ansiFg(baseFG) + s + "\x1b[0m"
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return ansiFg(fg) + s + ansiFg(resetFG)
}

func ansiFg(c lipgloss.Color) string {
	return ansiColor(false, c)
}

func ansiBg(c lipgloss.Color) string {
	return ansiColor(true, c)
}

func ansiColor(isBg bool, c lipgloss.Color) string {
	s := string(c)
	if s == "" {
		if isBg {
			return "\x1b[49m"
		}
		return "\x1b[39m"
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, _ := strconv.ParseInt(s[1:3], 16, 0)
		g, _ := strconv.ParseInt(s[3:5], 16, 0)
		b, _ := strconv.ParseInt(s[5:7], 16, 0)
		code := 38
		if isBg {
			code = 48
		}
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", code, r, g, b)
	}
	return ""
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	cur := runeWidth(s)
	if cur >= w {
		return s
	}
	return s + strings.Repeat(" ", w-cur)
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return truncate.String(s, uint(w))
}

func runeWidth(s string) int {
	return runewidth.StringWidth(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
