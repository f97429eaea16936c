package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"echofinder/internal/echo"
)

// Project is the flat on-disk record of one analysis session: the text, the
// tuning parameters, the whitelist, the chosen preset and policy, and the
// last result set. The engine itself never reads or writes this file; the
// surrounding shell maps it to and from engine inputs and outputs.
type Project struct {
	ProjectName        string        `json:"project_name"`
	OriginalText       string        `json:"original_text"`
	MinPhraseWords     int           `json:"min_phrase_words"`
	MaxPhraseWords     int           `json:"max_phrase_words"`
	StripPunctuation   bool          `json:"strip_punctuation"`
	CustomWhitelist    []string      `json:"custom_whitelist"`
	LastUsedSortPreset string        `json:"last_used_sort_preset"`
	SelectionPolicy    string        `json:"selection_policy"`
	EchoResults        []echo.Result `json:"echo_results"`
}

// DefaultWhitelist are the abbreviations a new project starts with.
func DefaultWhitelist() []string {
	return []string{"Dr.", "Mr.", "Mrs.", "St.", "e.g.", "i.e."}
}

func NewProject() *Project {
	return &Project{
		ProjectName:        "Unnamed Project",
		OriginalText:       "",
		MinPhraseWords:     2,
		MaxPhraseWords:     8,
		StripPunctuation:   true,
		CustomWhitelist:    DefaultWhitelist(),
		LastUsedSortPreset: string(echo.ByWordCount),
		SelectionPolicy:    string(echo.MaximalSubstring),
		EchoResults:        []echo.Result{},
	}
}

func LoadProject(path string) (*Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	p := NewProject()
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	return p, nil
}

func (p *Project) Save(path string) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// AddWhitelistEntry inserts entry unless it is already present, keeping the
// list sorted. Reports whether the list changed.
func (p *Project) AddWhitelistEntry(entry string) bool {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return false
	}
	for _, e := range p.CustomWhitelist {
		if e == entry {
			return false
		}
	}
	p.CustomWhitelist = append(p.CustomWhitelist, entry)
	sort.Strings(p.CustomWhitelist)
	return true
}

// RemoveWhitelistEntry deletes entry if present. Reports whether the list
// changed.
func (p *Project) RemoveWhitelistEntry(entry string) bool {
	for i, e := range p.CustomWhitelist {
		if e == entry {
			p.CustomWhitelist = append(p.CustomWhitelist[:i], p.CustomWhitelist[i+1:]...)
			return true
		}
	}
	return false
}

// ProjectPath maps a project name to its file inside the workspace, using a
// short hash so arbitrary titles stay filesystem-safe.
func ProjectPath(workspaceRoot, name string) string {
	return filepath.Join(workspaceRoot, "projects", projectNameHash(name), "project.json")
}

// ReportPath is where the HTML report for a project lives.
func ReportPath(workspaceRoot, name string) string {
	return filepath.Join(workspaceRoot, "projects", projectNameHash(name), "report.html")
}

func projectNameHash(name string) string {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}
