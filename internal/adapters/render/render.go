// Package render writes summary reports in the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/highscores/internal/domain/types"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	// none is printed in text output for an absent value.
	none = "-"
)

// Renderer writes a report to w.
type Renderer interface {
	Render(w io.Writer, r types.Report) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(w io.Writer, r types.Report) error

// Render calls f(w, r).
func (f RendererFunc) Render(w io.Writer, r types.Report) error { return f(w, r) }

// New returns the renderer for format. "yml" is accepted as yaml.
func New(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return RendererFunc(renderText), nil
	case FormatJSON:
		return RendererFunc(renderJSON), nil
	case FormatYAML, "yml":
		return RendererFunc(renderYAML), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func renderJSON(w io.Writer, r types.Report) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(normalize(r))
}

func renderYAML(w io.Writer, r types.Report) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(normalize(r)); err != nil {
		return err
	}
	return e.Close()
}

func renderText(w io.Writer, r types.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", r.ID)
	fmt.Fprintf(tw, "scores:\t%s\n", JoinScores(r.Scores))
	fmt.Fprintf(tw, "latest:\t%s\n", Optional(r.Latest))
	fmt.Fprintf(tw, "personal best:\t%s\n", Optional(r.PersonalBest))
	fmt.Fprintf(tw, "top three:\t%s\n", JoinScores(r.TopThree))
	return tw.Flush()
}

// normalize makes empty lists encode as [] rather than null.
func normalize(r types.Report) types.Report {
	if r.Scores == nil {
		r.Scores = []uint32{}
	}
	if r.TopThree == nil {
		r.TopThree = []uint32{}
	}
	return r
}

// Optional formats an optional score, using "-" when absent.
func Optional(v *uint32) string {
	if v == nil {
		return none
	}
	return strconv.FormatUint(uint64(*v), 10)
}

// JoinScores formats scores space separated, using "-" for an empty list.
func JoinScores(scores []uint32) string {
	if len(scores) == 0 {
		return none
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = strconv.FormatUint(uint64(s), 10)
	}
	return strings.Join(parts, " ")
}
