// Package export writes ranked match results to CSV and JSON sinks.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spigell/staffmatch/internal/matching"
)

const matchedSkillsSeparator = "; "

var csvHeader = []string{
	"Employee Name",
	"ID",
	"Total Score",
	"Skill Score",
	"Experience Score",
	"Availability Score",
	"Matched Skills",
}

// WriteCSV writes one row per result, in the given order.
func WriteCSV(w io.Writer, results []matching.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Employee.Name,
			r.Employee.ID,
			strconv.Itoa(r.TotalScore),
			strconv.FormatFloat(r.Breakdown.SkillScore, 'f', 2, 64),
			strconv.Itoa(r.Breakdown.ExperienceScore),
			strconv.Itoa(r.Breakdown.AvailabilityScore),
			strings.Join(r.MatchedSkills, matchedSkillsSeparator),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVFileName is the download name for a project's results.
func CSVFileName(projectID string) string {
	return fmt.Sprintf("matching_results_%s.csv", projectID)
}

// ToCSVFile writes the results into dir and returns the created path.
func ToCSVFile(dir, projectID string, results []matching.Result) (string, error) {
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, CSVFileName(projectID))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteCSV(file, results); err != nil {
		return "", fmt.Errorf("write csv %q: %w", path, err)
	}

	return path, nil
}

func DumpToTmpFile(results []matching.Result) (string, error) {
	file, err := os.CreateTemp("", "matching_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}
