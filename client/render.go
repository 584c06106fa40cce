package client

import (
	"cubetris/cube"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/template"

	"github.com/charmbracelet/lipgloss"
)

const (
	clearScreen = "\033[2J"
	resetPos    = "\033[H" // Reset cursor position to 0,0

	slicesPerRow = 5
)

//go:embed "layout.tmpl"
var layout string

// 256 color codes for the layer palette.
var colorMap = map[cube.Color]lipgloss.Color{
	cube.SkyBlue: "117",
	cube.Coral:   "209",
	cube.Yellow:  "226",
	cube.Violet:  "177",
	cube.Red:     "196",
	cube.Orange:  "214",
	cube.Green:   "46",
	cube.Fuchsia: "201",
	cube.Blue:    "21",
}

type message []string

func defaultLobby() message {
	return message{"Welcome to Cubetris", "", "(p)lay   (o)nline   (q)uit"}
}

func connecting() message {
	return message{"connecting to server...", "", ""}
}

func errorMessage() message {
	return message{"something went wrong :(", "", "(p)lay   (o)nline   (q)uit"}
}

func gameOver(score int) message {
	return message{"Game Over", fmt.Sprintf("score %d", score), "(r)estart   (q)uit"}
}

func highScore(score, rank int) message {
	return message{"New high score!", fmt.Sprintf("#%d with %d", rank+1, score), "(r)estart   (q)uit"}
}

type templateData struct {
	State   *cube.State
	Message message
}

type styles struct {
	title, piece, empty, slice, label, box lipgloss.Style
	renderer                               *lipgloss.Renderer
}

func newStyles(w io.Writer) *styles {
	re := lipgloss.NewRenderer(w)
	return &styles{
		renderer: re,
		title:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),
		piece:    re.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		empty:    re.NewStyle().Foreground(lipgloss.Color("238")),
		slice:    re.NewStyle().Border(lipgloss.NormalBorder()),
		label:    re.NewStyle().Foreground(lipgloss.Color("245")),
		box: re.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("15")).
			Padding(0, 2).
			Align(lipgloss.Center),
	}
}

func (s *styles) layer(c cube.Color) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(colorMap[c])
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	styles   *styles
	*templateData

	mu sync.Mutex
}

func newRender(l *slog.Logger) (*render, error) {
	r := &render{
		writer:       os.Stdout,
		logger:       l,
		styles:       newStyles(os.Stdout),
		templateData: &templateData{},
	}
	tmp, err := r.loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	r.template = tmp
	return r, nil
}

func (r *render) loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"title":  func(s string) string { return r.styles.title.Render(s) },
		"slices": r.slices,
		"next":   r.next,
		"box":    r.box,
	}
	return template.New("layout").Funcs(funcMap).Parse(layout)
}

func (r *render) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Message = nil
	fmt.Fprint(r.writer, clearScreen)
}

func (r *render) lobby(m message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, clearScreen+resetPos)
	r.write(r.box(m) + "\n")
}

// game draws a new state. A running state clears any banner left from the
// previous game.
func (r *render) game(s *cube.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.State = s
	if s.Running {
		r.Message = nil
	}
	r.draw()
}

// banner draws a message under the last state.
func (r *render) banner(m message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Message = m
	r.draw()
}

func (r *render) draw() {
	var sb strings.Builder
	if err := r.template.Execute(&sb, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
		return
	}
	fmt.Fprint(r.writer, resetPos)
	r.write(sb.String())
}

// write outputs s for a terminal in raw mode, where a new line doesn't imply
// a carriage return.
func (r *render) write(s string) {
	fmt.Fprint(r.writer, strings.ReplaceAll(s, "\n", "\r\n"))
}

// slices draws every playable depth slice as a small top down grid, nearest
// slice first. +Y points up the screen.
func (r *render) slices(s *cube.State) string {
	var boxes []string
	for z := range s.Depth - 1 {
		layer := s.Layers[z]
		var sb strings.Builder
		for y := s.Height - 1; y >= 0; y-- {
			for x := range s.Width {
				switch {
				case s.PieceAt(x, y, z):
					sb.WriteString(r.styles.piece.Render("[]"))
				case layer.Blocks[x][y]:
					sb.WriteString(r.styles.layer(layer.Color).Render("██"))
				default:
					sb.WriteString(r.styles.empty.Render(" ."))
				}
			}
			if y > 0 {
				sb.WriteString("\n")
			}
		}
		grid := r.styles.slice.BorderForeground(colorMap[layer.Color]).Render(sb.String())
		boxes = append(boxes, lipgloss.JoinVertical(lipgloss.Center, grid, r.styles.label.Render(fmt.Sprint(z))))
	}

	var rows []string
	for i := 0; i < len(boxes); i += slicesPerRow {
		end := min(i+slicesPerRow, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// next draws the template of the upcoming piece, two rows of four cells.
func (r *render) next(s *cube.State) []string {
	blocks := (&cube.Piece{Type: s.Next}).Blocks()
	style := r.styles.layer(cube.SkyBlue)
	rendered := make([]string, 0, 2)
	for y := 0; y >= -1; y-- {
		var sb strings.Builder
		for x := -1; x <= 2; x++ {
			out := "  "
			for _, b := range blocks {
				if int(b.X) == x && int(b.Y) == y {
					out = style.Render("██")
					break
				}
			}
			sb.WriteString(out)
		}
		rendered = append(rendered, sb.String())
	}
	return rendered
}

func (r *render) box(m message) string {
	lines := make([]string, len(m))
	copy(lines, m)
	if len(lines) > 0 {
		lines[0] = r.styles.title.Render(lines[0])
	}
	return r.styles.box.Render(strings.Join(lines, "\n"))
}
