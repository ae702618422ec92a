// Package profile holds the learner profile and the provider that shares
// it with the rest of the app.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/studymate/internal/store"
)

// Exam types.
const (
	ExamBoards = "Boards"
	ExamNEET   = "NEET"
	ExamJEE    = "JEE"
	ExamUPSC   = "UPSC"
)

// Learning styles.
const (
	StyleVisual = "visual"
	StyleAudio  = "audio"
	StyleText   = "text"
)

// Exams lists the supported exam types in display order.
var Exams = []string{ExamBoards, ExamNEET, ExamJEE, ExamUPSC}

// Styles lists the supported learning styles in display order.
var Styles = []string{StyleVisual, StyleAudio, StyleText}

// Grades lists the supported class levels.
var Grades = []int{11, 12}

var ErrInvalid = errors.New("invalid profile")

// Profile describes a learner.
type Profile struct {
	UserID            string
	FullName          string
	GradeLevel        int
	ExamType          string
	LearningStyle     string
	PreferredSubjects []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Default is the profile used before the learner has set one up.
func Default(userID string) Profile {
	return Profile{
		UserID:        userID,
		GradeLevel:    11,
		ExamType:      ExamBoards,
		LearningStyle: StyleText,
	}
}

// Validate checks the enumerations.
func (p Profile) Validate() error {
	if p.GradeLevel != 11 && p.GradeLevel != 12 {
		return fmt.Errorf("%w: grade must be 11 or 12, got %d", ErrInvalid, p.GradeLevel)
	}
	if !contains(Exams, p.ExamType) {
		return fmt.Errorf("%w: unknown exam %q", ErrInvalid, p.ExamType)
	}
	if !contains(Styles, p.LearningStyle) {
		return fmt.Errorf("%w: unknown learning style %q", ErrInvalid, p.LearningStyle)
	}
	return nil
}

// Class returns the grade as the syllabus class key ("11" or "12").
func (p Profile) Class() string {
	return fmt.Sprint(p.GradeLevel)
}

// PrefersAudio reports whether narration should start enabled.
func (p Profile) PrefersAudio() bool {
	return p.LearningStyle == StyleAudio
}

// DedupeSubjects trims names and drops blanks and case-insensitive
// duplicates, keeping first-seen order.
func DedupeSubjects(subjects []string) []string {
	seen := make(map[string]bool, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// ParseExam matches an exam name case-insensitively.
func ParseExam(s string) (string, bool) {
	return match(Exams, s)
}

// ParseStyle matches a learning style case-insensitively.
func ParseStyle(s string) (string, bool) {
	return match(Styles, s)
}

func match(values []string, s string) (string, bool) {
	for _, v := range values {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return v, true
		}
	}
	return "", false
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func fromRecord(r store.ProfileRecord) Profile {
	return Profile{
		UserID:            r.UserID,
		FullName:          r.FullName,
		GradeLevel:        r.GradeLevel,
		ExamType:          r.ExamType,
		LearningStyle:     r.LearningStyle,
		PreferredSubjects: r.PreferredSubjects,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (p Profile) record() store.ProfileRecord {
	return store.ProfileRecord{
		UserID:            p.UserID,
		FullName:          p.FullName,
		GradeLevel:        p.GradeLevel,
		ExamType:          p.ExamType,
		LearningStyle:     p.LearningStyle,
		PreferredSubjects: p.PreferredSubjects,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
