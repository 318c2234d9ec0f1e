package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	clrDim     = color.New(color.FgHiBlack)
	clrSubtle  = color.New(color.FgWhite)
	clrAccent  = color.New(color.FgCyan, color.Bold)
	clrPrimary = color.New(color.FgBlue, color.Bold)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)
)

// Box-drawing characters
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// Log levels, lowest first.
var levels = map[string]int{"debug": 0, "info": 1, "success": 1, "warn": 2, "warning": 2, "error": 3}

var (
	outMu    sync.Mutex
	out      io.Writer = os.Stdout
	minLevel           = 1
)

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

// SetLevel sets the minimum level printed. Unknown names leave it unchanged.
func SetLevel(level string) {
	if n, ok := levels[strings.ToLower(level)]; ok {
		outMu.Lock()
		minLevel = n
		outMu.Unlock()
	}
}

func printLine(format string, a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, a...)
}

func enabled(category string) bool {
	n, ok := levels[category]
	if !ok {
		n = levels["info"]
	}
	outMu.Lock()
	defer outMu.Unlock()
	return n >= minLevel
}

func timestamp() string {
	return clrDim.Sprint(time.Now().Format("15:04:05"))
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	if !enabled(category) {
		return
	}

	var icon, styledMsg string
	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styledMsg = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styledMsg = clrError.Sprint(message)
	case "warn", "warning":
		icon = clrWarning.Sprint("⚠")
		styledMsg = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styledMsg = clrSubtle.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styledMsg = clrDim.Sprint(message)
	}

	printLine("%s  %s  %s\n", timestamp(), icon, styledMsg)
}

// LogGroup starts a boxed block of key/value lines
func LogGroup(title string) {
	printLine("\n%s\n", clrDim.Sprintf("%s%s %s %s%s",
		boxTopLeft,
		strings.Repeat(boxHorizontal, 2),
		clrPrimary.Sprint(title),
		clrDim.Sprint(strings.Repeat(boxHorizontal, max(2, 50-VisibleWidth(title)))),
		boxTopRight))
}

// LogGroupItem logs an item within a group
func LogGroupItem(label, value string) {
	printLine("%s  %s %s\n",
		clrDim.Sprint(boxVertical),
		clrDim.Sprint(label+":"),
		clrAccent.Sprint(value))
}

// LogGroupEnd closes a grouped block
func LogGroupEnd() {
	printLine("%s\n\n", clrDim.Sprint(boxBottomLeft+strings.Repeat(boxHorizontal, 56)+boxBottomRight))
}

// LogRequest prints one HTTP access line
func LogRequest(method, path string, status int, latency time.Duration, clientIP string) {
	if !enabled("debug") && status < 400 {
		return
	}

	statusStyle := clrSuccess
	switch {
	case status >= 500:
		statusStyle = clrError
	case status >= 400:
		statusStyle = clrWarning
	}

	printLine("%s  %s  %s %s  %s  %s\n",
		timestamp(),
		clrPrimary.Sprint("→"),
		clrAccent.Sprintf("%-6s", method),
		clrSubtle.Sprintf("%-28s", path),
		statusStyle.Sprintf("%d", status),
		clrDim.Sprintf("%-10s %s", latency.Round(time.Microsecond), clientIP))
}

// LogSession shows a session lifecycle event
func LogSession(event, id string) {
	if !enabled("debug") {
		return
	}

	var icon string
	switch event {
	case "create":
		icon = clrPrimary.Sprint("◆")
	case "expire":
		icon = clrDim.Sprint("◇")
	default:
		icon = clrDim.Sprint("●")
	}

	printLine("%s  %s  %s %s\n", timestamp(), icon, clrDim.Sprint(event), clrSubtle.Sprint(id))
}

// LogGracefulShutdown announces the start of shutdown
func LogGracefulShutdown() {
	LogStatus("warn", "Shutdown signal received, draining requests...")
}
