package lessons

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseFlashcard reads "FRONT:" and "BACK:" lines from text. It never
// fails: a missing side gets a default built from concept and topic.
func ParseFlashcard(text, topic, concept string) Flashcard {
	var card Flashcard
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case card.Front == "" && strings.HasPrefix(line, "FRONT:"):
			card.Front = strings.TrimSpace(strings.TrimPrefix(line, "FRONT:"))
		case card.Back == "" && strings.HasPrefix(line, "BACK:"):
			card.Back = strings.TrimSpace(strings.TrimPrefix(line, "BACK:"))
		}
	}
	if card.Front == "" {
		card.Front = fmt.Sprintf("What is %s?", concept)
	}
	if card.Back == "" {
		card.Back = fmt.Sprintf("%s is a fundamental concept in %s.", concept, topic)
	}
	return card
}

var (
	questionRe    = regexp.MustCompile(`(?i)^(?:\*\*)?(?:question|q)(?:\*\*)?\s*[:.)]\s*(?:\*\*)?\s*(.+)$`)
	optionRe      = regexp.MustCompile(`^\(?([A-Da-d])[).:]\s+(.+)$`)
	answerRe      = regexp.MustCompile(`(?i)^(?:\*\*)?(?:correct answer|answer)(?:\*\*)?\s*[:\-]\s*(?:\*\*)?\s*\(?([A-Da-d])\b`)
	explanationRe = regexp.MustCompile(`(?i)^(?:\*\*)?explanation(?:\*\*)?\s*[:\-]\s*(?:\*\*)?\s*(.*)$`)
)

// ParseQuizText extracts a question from a plain text block of the form
//
//	Question: ...
//	A) ...   B) ...   C) ...   D) ...
//	Answer: X
//	Explanation: ...
//
// It reports false unless a question, four options and an answer letter
// are all present.
func ParseQuizText(text string) (Quiz, bool) {
	var (
		q           Quiz
		options     [4]string
		seen        int
		answer      = -1
		explanation []string
		inExplain   bool
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := explanationRe.FindStringSubmatch(line); m != nil {
			inExplain = true
			if s := strings.TrimSpace(m[1]); s != "" {
				explanation = append(explanation, s)
			}
			continue
		}
		if m := answerRe.FindStringSubmatch(line); m != nil {
			answer = letterIndex(m[1])
			inExplain = false
			continue
		}
		if inExplain {
			explanation = append(explanation, line)
			continue
		}
		if m := questionRe.FindStringSubmatch(line); m != nil && q.Question == "" {
			q.Question = cleanEmphasis(m[1])
			continue
		}
		if m := optionRe.FindStringSubmatch(strings.TrimLeft(line, "-• ")); m != nil {
			i := letterIndex(m[1])
			if options[i] == "" {
				seen++
			}
			options[i] = cleanEmphasis(m[2])
		}
	}

	if q.Question == "" || seen != 4 || answer < 0 {
		return Quiz{}, false
	}
	q.Options = options[:]
	q.CorrectIndex = answer
	q.Explanation = strings.Join(explanation, " ")
	q.Source = QuizParsed
	return q, true
}

// TemplateQuiz is the last-resort question. Its explanation is the last
// two lines of the raw reply.
func TemplateQuiz(topic, raw string) Quiz {
	lines := strings.Split(raw, "\n")
	if len(lines) > 2 {
		lines = lines[len(lines)-2:]
	}
	return Quiz{
		Question: fmt.Sprintf("Which of the following best describes %s?", topic),
		Options: []string{
			"Option A - Basic concept",
			"Option B - Intermediate application",
			"Option C - Advanced theory",
			"Option D - All of the above",
		},
		CorrectIndex: 1,
		Explanation:  strings.Join(lines, " "),
		Source:       QuizTemplate,
	}
}

func letterIndex(s string) int {
	return int(strings.ToUpper(s)[0] - 'A')
}

func cleanEmphasis(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
