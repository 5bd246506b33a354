package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/cutplan/internal/model"
)

// FileExtension is the conventional suffix of saved projects.
const FileExtension = ".cutplan"

// SaveProject writes the project, including its last plan if any, as JSON.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("save project %s: %w", path, err)
	}
	return nil
}

// LoadProject reads a project file. Missing lists come back empty rather
// than nil, and a missing settings block falls back to the defaults.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("load project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project %s: %w", path, err)
	}
	if p.Cuts == nil {
		p.Cuts = []model.Cut{}
	}
	if p.Sheets == nil {
		p.Sheets = []model.Sheet{}
	}
	return p, nil
}
