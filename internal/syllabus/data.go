package syllabus

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed chapters.yaml
var chaptersYAML []byte

type chapterDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type staticData struct {
	Subjects map[string][]chapterDef `yaml:"subjects"`
	Generic  []chapterDef            `yaml:"generic"`
	Exams    map[string][]string     `yaml:"exams"`
}

var static = mustLoad(chaptersYAML)

func mustLoad(raw []byte) staticData {
	d, err := loadStatic(raw)
	if err != nil {
		panic(fmt.Sprintf("syllabus: embedded data: %v", err))
	}
	return d
}

func loadStatic(raw []byte) (staticData, error) {
	var d staticData
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return staticData{}, err
	}
	if len(d.Generic) == 0 {
		return staticData{}, fmt.Errorf("no generic chapters")
	}
	if len(d.Exams["default"]) == 0 {
		return staticData{}, fmt.Errorf("no default exam subjects")
	}
	return d, nil
}

// FallbackChapters returns the built-in chapters for subject, or the
// generic five-chapter outline for subjects without a table.
func FallbackChapters(subject string) []Chapter {
	defs, ok := static.Subjects[subject]
	if !ok {
		defs = static.Generic
	}
	out := make([]Chapter, len(defs))
	for i, d := range defs {
		out[i] = Chapter{
			ID:    d.ID,
			Name:  strings.ReplaceAll(d.Name, "{subject}", subject),
			Order: i + 1,
		}
	}
	return out
}

// HasFallback reports whether subject has its own built-in table.
func HasFallback(subject string) bool {
	_, ok := static.Subjects[subject]
	return ok
}

// SubjectsForExam returns the subjects shown for an exam.
func SubjectsForExam(exam string) []string {
	subjects, ok := static.Exams[exam]
	if !ok {
		subjects = static.Exams["default"]
	}
	return append([]string(nil), subjects...)
}
