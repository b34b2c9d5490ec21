package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/buddyh/noteist/internal/api"
	"github.com/buddyh/noteist/internal/config"
	"github.com/buddyh/noteist/internal/daterange"
)

const (
	topLevelMarker = "* "
	subtaskMarker  = "  - "

	completedLayout = "2006-01-02 15:04:05"
	separatorWidth  = 56
)

// Envelope wraps all JSON responses for consistent parsing
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *string     `json:"error,omitempty"`
}

// Options configures a Formatter
type Options struct {
	JSON  bool
	Color ColorMode
	// Location for completion timestamps. Nil means time.Local.
	Location *time.Location
}

// Formatter handles output formatting
type Formatter struct {
	w      io.Writer
	asJSON bool
	loc    *time.Location
	style  styles
}

// NewFormatter creates a new output formatter
func NewFormatter(w io.Writer, opts Options) *Formatter {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{
		w:      w,
		asJSON: opts.JSON,
		loc:    loc,
		style:  newStyles(w, opts.Color),
	}
}

// JSON outputs data wrapped in envelope
func (f *Formatter) JSON(v interface{}) error {
	env := Envelope{Success: true, Data: v}
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f.w, string(b))
	return err
}

// WriteError outputs an error. A project lookup failure also lists the
// projects that do exist.
func (f *Formatter) WriteError(err error) {
	var nf *api.ProjectNotFoundError
	hasNames := errors.As(err, &nf)

	if f.asJSON {
		msg := err.Error()
		env := Envelope{Success: false, Error: &msg}
		if hasNames {
			env.Data = map[string][]string{"available_projects": nf.AvailableNames()}
		}
		b, _ := json.Marshal(env)
		fmt.Fprintln(f.w, string(b))
		return
	}

	fmt.Fprintf(f.w, "\n%s\n\n", f.style.failure.Render("Error: "+err.Error()))
	if hasNames && len(nf.Available) > 0 {
		fmt.Fprintln(f.w, "Available projects:")
		for _, name := range nf.AvailableNames() {
			fmt.Fprintf(f.w, "  - %s\n", name)
		}
	}
}

// WriteSuccess outputs a success message
func (f *Formatter) WriteSuccess(msg string) {
	if f.asJSON {
		f.JSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintf(f.w, "\n%s\n\n", f.style.success.Render(msg))
	}
}

// FormatTaskLine renders one completed task. prev is the task printed
// just before it (nil for the first); a top-level task following a
// subtask is preceded by a blank line.
func (f *Formatter) FormatTaskLine(prev, t *api.Task) string {
	marker := topLevelMarker
	contentStyle := f.style.topLevel
	if t.IsSubtask() {
		marker = subtaskMarker
		contentStyle = f.style.subtask
	}

	var b strings.Builder
	if prev.IsSubtask() && !t.IsSubtask() {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s%s (completed: %s)", marker, contentStyle.Render(t.Content), f.localTime(t.CompletedAt))

	if t.Description != "" {
		pad := strings.Repeat(" ", len(marker))
		lines := strings.Split(t.Description, "\n")
		for i, ln := range lines {
			if strings.TrimSpace(ln) != "" {
				lines[i] = pad + f.style.body.Render(ln)
			}
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

// localTime converts an RFC3339 timestamp to the formatter's zone.
// Unparsable values are returned unchanged.
func (f *Formatter) localTime(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.In(f.loc).Format(completedLayout)
}

// Report is a project's completed tasks over a window, in API order.
type Report struct {
	Project string
	Range   daterange.Range
	Tasks   []api.Task
}

type reportJSON struct {
	Project string     `json:"project"`
	Since   string     `json:"since"`
	Until   string     `json:"until"`
	Total   int        `json:"total"`
	Tasks   []api.Task `json:"tasks"`
}

// WriteReport outputs the completed-task report
func (f *Formatter) WriteReport(r Report) error {
	if f.asJSON {
		tasks := r.Tasks
		if tasks == nil {
			tasks = []api.Task{}
		}
		return f.JSON(reportJSON{
			Project: r.Project,
			Since:   r.Range.Since.Format(daterange.DateLayout),
			Until:   r.Range.Until.Format(daterange.DateLayout),
			Total:   len(tasks),
			Tasks:   tasks,
		})
	}

	if len(r.Tasks) == 0 {
		_, err := fmt.Fprintf(f.w, "\nNo completed tasks found %s\n", r.Range)
		return err
	}

	fmt.Fprintf(f.w, "\n%s\n", f.style.title.Render(fmt.Sprintf("📋 Completed Tasks in #%s %s", r.Project, r.Range)))
	fmt.Fprintln(f.w, strings.Repeat("=", separatorWidth))
	fmt.Fprintf(f.w, "Total completed: %d\n\n", len(r.Tasks))

	var prev *api.Task
	for i := range r.Tasks {
		t := &r.Tasks[i]
		if _, err := fmt.Fprintln(f.w, f.FormatTaskLine(prev, t)); err != nil {
			return err
		}
		prev = t
	}

	return nil
}

// WriteProjects outputs a list of projects
func (f *Formatter) WriteProjects(projects []api.Project) error {
	if f.asJSON {
		if projects == nil {
			projects = []api.Project{}
		}
		return f.JSON(projects)
	}

	if len(projects) == 0 {
		fmt.Fprintln(f.w, "No projects found.")
		return nil
	}

	for _, p := range projects {
		fmt.Fprintf(f.w, "%s  %s\n", f.style.muted.Render(p.ID), p.Name)
	}

	return nil
}

// WriteConfig outputs the saved defaults with the token masked
func (f *Formatter) WriteConfig(path string, cfg *config.Config) error {
	values := map[string]string{
		"path":    path,
		"token":   maskToken(cfg.Token),
		"project": cfg.Project,
		"color":   cfg.Color,
	}
	if f.asJSON {
		return f.JSON(values)
	}

	fmt.Fprintf(f.w, "%s\n", f.style.muted.Render("# "+path))
	for _, key := range config.Keys() {
		v := values[key]
		if v == "" {
			v = f.style.muted.Render("(unset)")
		}
		fmt.Fprintf(f.w, "%-8s %s\n", key, v)
	}
	return nil
}

// maskToken keeps the last four characters visible.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
