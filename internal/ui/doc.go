// Package ui provides semantic text formatting for cpz output.
//
// Formatters render in color when the terminal supports it. When NO_COLOR
// is set or the terminal cannot show colors, a text decoration is used
// instead so the meaning survives.
//
//	ui.Code.Sprint("cpz file decrypt notes.txt.cpz")
//	ui.Path.Sprint("notes.txt.cpz")
//	ui.Secret.Sprint(password)
//	ui.Label.Sprint("original length")
//	ui.Highlight.Sprint("alice")
//
// Colors are disabled when NO_COLOR is set (any value) or fatih/color
// detects a terminal without color support.
package ui
