package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgriffin78/maas/internal/maas"
)

// Format selects a report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (expected text, json or yaml)", name)
}

// Empty-section sentences. These are part of the report's output contract.
const (
	noAvailableMsg = "  No machines in 'Ready' state found with the 'available' tag."
	noDCOPSMsg     = "  No machines in 'Ready' state found with a 'DCOPS-*' tag."
	noFailedMsg    = "  No machines found in a failed or broken state."
)

// Write renders the classification in the requested format. Each section is
// sorted by hostname ascending; equal hostnames keep their input order.
func Write(w io.Writer, c Classification, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, c)
	case FormatYAML:
		return writeYAML(w, c)
	default:
		return writeText(w, c)
	}
}

func writeText(w io.Writer, c Classification) error {
	banner := strings.Repeat("=", 60)
	fmt.Fprintf(w, "\n%s\n", banner)
	fmt.Fprintln(w, "        MaaS Machine Status Report")
	fmt.Fprintf(w, "%s\n\n", banner)

	writeMachineSection(w, "(servers available)", c.Available, noAvailableMsg)
	writeMachineSection(w, "(servers with potential issues)", c.PotentialIssue, noDCOPSMsg)
	writeFailedSection(w, c.Failed)
	return nil
}

func writeMachineSection(w io.Writer, title string, machines []maas.Machine, emptyMsg string) {
	banner := strings.Repeat("=", 30)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, banner)
	if len(machines) == 0 {
		fmt.Fprintln(w, emptyMsg)
	} else {
		for _, m := range sortByHostname(machines) {
			fmt.Fprintf(w, "  - Host: %-25s System ID: %-12s Owner: %-15s Tags: %v\n",
				m.Hostname, m.SystemID, ownerName(m), m.Tags)
		}
	}
	fmt.Fprint(w, "\n\n")
}

func writeFailedSection(w io.Writer, machines []maas.Machine) {
	banner := strings.Repeat("=", 40)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "(Machines in any kind of failed state)")
	fmt.Fprintln(w, banner)
	if len(machines) == 0 {
		fmt.Fprintln(w, noFailedMsg)
	} else {
		for _, m := range sortByHostname(machines) {
			msg := ""
			if m.StatusMessage != "" {
				msg = "Message: " + m.StatusMessage
			}
			fmt.Fprintf(w, "  - Host: %-25s System ID: %-12s Status: %-20s %s\n",
				m.Hostname, m.SystemID, m.StatusName, msg)
		}
	}
	fmt.Fprint(w, "\n\n")
}

// document is the machine-readable report shape shared by the JSON and YAML
// renderings.
type document struct {
	Available       []machineRow `json:"available" yaml:"available"`
	PotentialIssues []machineRow `json:"potential_issues" yaml:"potential_issues"`
	Failed          []failedRow  `json:"failed" yaml:"failed"`
}

type machineRow struct {
	Hostname string   `json:"hostname" yaml:"hostname"`
	SystemID string   `json:"system_id" yaml:"system_id"`
	Owner    string   `json:"owner" yaml:"owner"`
	Tags     []string `json:"tags" yaml:"tags"`
}

type failedRow struct {
	Hostname      string `json:"hostname" yaml:"hostname"`
	SystemID      string `json:"system_id" yaml:"system_id"`
	StatusName    string `json:"status_name" yaml:"status_name"`
	StatusMessage string `json:"status_message,omitempty" yaml:"status_message,omitempty"`
}

func newDocument(c Classification) document {
	doc := document{
		Available:       make([]machineRow, 0, len(c.Available)),
		PotentialIssues: make([]machineRow, 0, len(c.PotentialIssue)),
		Failed:          make([]failedRow, 0, len(c.Failed)),
	}
	for _, m := range sortByHostname(c.Available) {
		doc.Available = append(doc.Available, newMachineRow(m))
	}
	for _, m := range sortByHostname(c.PotentialIssue) {
		doc.PotentialIssues = append(doc.PotentialIssues, newMachineRow(m))
	}
	for _, m := range sortByHostname(c.Failed) {
		doc.Failed = append(doc.Failed, failedRow{
			Hostname:      m.Hostname,
			SystemID:      m.SystemID,
			StatusName:    m.StatusName,
			StatusMessage: m.StatusMessage,
		})
	}
	return doc
}

func newMachineRow(m maas.Machine) machineRow {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return machineRow{
		Hostname: m.Hostname,
		SystemID: m.SystemID,
		Owner:    ownerName(m),
		Tags:     tags,
	}
}

func writeJSON(w io.Writer, c Classification) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(c))
}

func writeYAML(w io.Writer, c Classification) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(newDocument(c)); err != nil {
		return err
	}
	return enc.Close()
}

// sortByHostname returns a sorted copy; the input slice is never reordered.
func sortByHostname(machines []maas.Machine) []maas.Machine {
	sorted := make([]maas.Machine, len(machines))
	copy(sorted, machines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Hostname < sorted[j].Hostname
	})
	return sorted
}

func ownerName(m maas.Machine) string {
	if m.Owner.Username == "" {
		return "Unassigned"
	}
	return m.Owner.Username
}
