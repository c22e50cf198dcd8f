// Package ui renders the client's panels, graph canvas, and chat transcript
// to a terminal. Every type here is an implementation of a seam defined by
// the session or graph packages.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/coursemap/coursemap/internal/core/model"
	"github.com/coursemap/coursemap/internal/graph"
)

var (
	headerColor = color.New(color.FgYellow, color.Bold)
	topicColor  = color.New(color.FgCyan)
	fileColor   = color.New(color.FgHiBlack)
	userColor   = color.New(color.FgGreen, color.Bold)
	botColor    = color.New(color.FgMagenta, color.Bold)
	errColor    = color.New(color.FgRed)
)

// Panel is a stage view that prints its body when shown.
type Panel struct {
	out     io.Writer
	title   string
	body    []string
	visible bool
}

func NewPanel(out io.Writer, title string, body ...string) *Panel {
	return &Panel{out: out, title: title, body: body}
}

func (p *Panel) Show() {
	p.visible = true
	headerColor.Fprintf(p.out, "== %s ==\n", p.title)
	for _, line := range p.body {
		fmt.Fprintln(p.out, line)
	}
}

func (p *Panel) Hide() {
	p.visible = false
}

func (p *Panel) Visible() bool {
	return p.visible
}

// Canvas prints the graph as an adjacency listing, topics and files in
// distinct colors.
type Canvas struct {
	out io.Writer
}

func NewCanvas(out io.Writer) *Canvas {
	return &Canvas{out: out}
}

func (c *Canvas) Clear() {
	headerColor.Fprintln(c.out, "-- course graph --")
}

func (c *Canvas) DrawNode(node model.Node, style graph.NodeStyle) {
	paint := topicColor
	if node.Kind() == model.KindFile {
		paint = fileColor
	}
	paint.Fprintf(c.out, "[%s] %s (%s)\n", node.ID, node.Label, style.Shape)
}

func (c *Canvas) DrawEdge(edge model.Edge) {
	fmt.Fprintf(c.out, "  %s -> %s\n", edge.From, edge.To)
}

// DetailView prints node details, replacing nothing on screen but visually
// delimiting each selection.
type DetailView struct {
	out io.Writer
}

func NewDetailView(out io.Writer) *DetailView {
	return &DetailView{out: out}
}

func (d *DetailView) ShowDetail(dt graph.Detail) {
	headerColor.Fprintf(d.out, "-- %s --\n", dt.Title)
	for _, line := range dt.Lines {
		fmt.Fprintln(d.out, line)
	}
}

// PrintMessage writes one transcript entry.
func PrintMessage(out io.Writer, msg model.ChatMessage) {
	switch msg.Role {
	case model.RoleUser:
		userColor.Fprint(out, "you: ")
	default:
		botColor.Fprint(out, "assistant: ")
	}
	fmt.Fprintln(out, msg.Body)
	if len(msg.Sources) > 0 {
		fmt.Fprintf(out, "  sources: %s\n", strings.Join(msg.Sources, ", "))
	}
}

// PrintError surfaces a user-visible error line.
func PrintError(out io.Writer, msg string) {
	errColor.Fprintf(out, "error: %s\n", msg)
}
