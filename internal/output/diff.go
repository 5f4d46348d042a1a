package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// DiffYAML computes a structural diff between two YAML documents using dyff.
// An empty string means the documents are equivalent.
func DiffYAML(nameA string, a []byte, nameB string, b []byte, useColor bool) (string, error) {
	if len(a) == 0 && len(b) == 0 {
		return "", nil
	}

	fromInput, err := parseYAMLInput(nameA, a)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", nameA, err)
	}

	toInput, err := parseYAMLInput(nameB, b)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", nameB, err)
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// DiffSummary returns a one-line summary for a diff body.
func DiffSummary(body string) string {
	if body == "" {
		return StyleSummary.Render("No differences.")
	}
	changes := 0
	for _, line := range strings.Split(body, "\n") {
		if line != "" && !strings.HasPrefix(line, " ") {
			changes++
		}
	}
	return StyleSummary.Render(fmt.Sprintf("%d path(s) differ.", changes))
}
