package tui

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"go.withmatt.com/triage/internal/config"
)

func markdownStyle(theme config.Theme, mode config.Mode) ansi.StyleConfig {
	style := styles.DarkStyleConfig
	if mode == config.ModeLight {
		style = styles.LightStyleConfig
	}

	style.Document.Color = ptr(theme.Status.Fg)
	style.Document.Margin = ptr(uint(0))
	style.Paragraph.Color = ptr(theme.Detail.SummaryFg)
	style.Text.Color = ptr(theme.Status.Fg)

	style.BlockQuote.Color = ptr(theme.Status.Dim)
	style.BlockQuote.IndentToken = ptr("▍ ")

	style.Heading.Color = ptr(theme.Status.ModeBg)
	style.H1.Color = ptr(theme.Status.ModeBg)
	style.H1.BackgroundColor = nil
	style.H1.Prefix = ""
	style.H1.Suffix = ""
	style.H2.Color = ptr(theme.Status.ModeBg)
	style.H3.Color = ptr(theme.Status.ModeBg)

	style.Strong.Color = ptr(theme.Detail.HeaderLabelFg)
	style.HorizontalRule.Color = ptr(theme.Status.Dim)
	style.Item.Color = ptr(theme.Detail.SummaryFg)

	style.Link.Color = ptr(theme.Status.TabBg)
	style.LinkText.Color = ptr(theme.Status.TabBg)
	style.LinkText.Bold = ptr(true)

	style.Code.Color = ptr(theme.Status.Fg)
	style.Code.BackgroundColor = ptr(theme.Detail.BorderNormal)
	style.CodeBlock.Color = ptr(theme.Status.Fg)

	return style
}

func ptr[T any](value T) *T {
	return &value
}
