package build

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/devsolux/yt-dlp-gui/internal/platform"
)

// Requirement defines an external tool the packaging pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a packaging tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the tools needed to package for the given OS.
func Requirements(goos string) []Requirement {
	reqs := []Requirement{
		{Name: "Go", Command: "go", Description: "Go toolchain used to compile the application"},
		{Name: "Fyne", Command: "fyne", Description: "fyne CLI used to build the application bundle"},
	}

	if goos == platform.OSDarwin {
		reqs = append(reqs,
			Requirement{Name: "hdiutil", Command: "hdiutil", Description: "creates the DMG disk image"},
			Requirement{Name: "ditto", Command: "ditto", Description: "copies the app bundle preserving metadata", Optional: true},
			Requirement{Name: "xattr", Command: "xattr", Description: "strips quarantine attributes from the bundle", Optional: true},
		)
	}

	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns an error naming the unavailable required tools.
func MissingRequired(statuses []Status) error {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// RenderStatusTable formats dependency statuses as a terminal table.
func RenderStatusTable(statuses []Status) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Tool", "Command", "Status", "Detail"})

	for _, status := range statuses {
		state := "ok"
		if !status.Available {
			if status.Optional {
				state = "missing (optional)"
			} else {
				state = "missing"
			}
		}
		tw.AppendRow(table.Row{status.Name, status.Command, state, status.Detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
