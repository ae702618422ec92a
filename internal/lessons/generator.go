package lessons

import (
	"context"
	"fmt"

	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/syllabus"
)

// Completer is the chat capability the generators need. *llm.Gateway
// implements it.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) llm.Completion
}

// Generator builds prompts for each kind of study material and turns
// the replies into artifacts. Because the gateway never fails, the
// methods only return an error when ctx is done.
type Generator struct {
	chat Completer
	cfg  Config
	log  *logger.Logger
}

// NewGenerator creates a generator on top of chat.
func NewGenerator(chat Completer, cfg Config, log *logger.Logger) *Generator {
	return &Generator{chat: chat, cfg: cfg, log: logger.OrNop(log)}
}

func (g *Generator) complete(ctx context.Context, purpose llm.Purpose, system, user string, schema *llm.Schema) (llm.Completion, error) {
	ctx = llm.WithPurpose(ctx, purpose)
	c := g.chat.Complete(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err := ctx.Err(); err != nil {
		return llm.Completion{}, fmt.Errorf("%s generation: %w", purpose, err)
	}
	return c, nil
}

// Roadmap returns a day-wise plan for one chapter.
func (g *Generator) Roadmap(ctx context.Context, subject, chapter string, days int, p profile.Profile) (string, error) {
	return g.roadmap(ctx, llm.PurposeRoadmap, subject, chapter, days, p)
}

func (g *Generator) roadmap(ctx context.Context, purpose llm.Purpose, subject, chapter string, days int, p profile.Profile) (string, error) {
	c, err := g.complete(ctx, purpose,
		roadmapSystemPrompt(p),
		buildRoadmapUserMessage(subject, chapter, days, p),
		nil)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// ChunkedContent returns the lesson text for chunk chunkIndex (0-based).
func (g *Generator) ChunkedContent(ctx context.Context, topic string, chunkIndex int, p profile.Profile) (string, error) {
	c, err := g.complete(ctx, llm.PurposeContent,
		contentSystemPrompt,
		buildContentUserMessage(topic, chunkIndex, p),
		nil)
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// Flashcard returns a card for concept. Missing FRONT/BACK lines are
// replaced by defaults.
func (g *Generator) Flashcard(ctx context.Context, topic, concept string) (Flashcard, error) {
	c, err := g.complete(ctx, llm.PurposeFlashcard,
		flashcardSystemPrompt,
		buildFlashcardUserMessage(topic, concept),
		nil)
	if err != nil {
		return Flashcard{}, err
	}
	return ParseFlashcard(c.Text, topic, concept), nil
}

type quizOutput struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Quiz returns one multiple choice question about topic. Structured JSON
// is preferred, then a text question block, then the fixed template.
func (g *Generator) Quiz(ctx context.Context, topic, difficulty string) (Quiz, error) {
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	c, err := g.complete(ctx, llm.PurposeQuiz,
		quizSystemPrompt,
		buildQuizUserMessage(topic, difficulty),
		QuizSchema)
	if err != nil {
		return Quiz{}, err
	}

	if !c.Simulated {
		if q, ok := decodeQuiz(c.Text); ok {
			return q, nil
		}
	}
	if q, ok := ParseQuizText(c.Text); ok {
		return q, nil
	}
	g.log.Debug("quiz reply not parseable, using template", "topic", topic, "simulated", c.Simulated)
	return TemplateQuiz(topic, c.Text), nil
}

func decodeQuiz(text string) (Quiz, bool) {
	var out quizOutput
	if err := llm.Decode(QuizSchema, text, &out); err != nil {
		return Quiz{}, false
	}
	return Quiz{
		Question:     out.Question,
		Options:      out.Options,
		CorrectIndex: out.CorrectIndex,
		Explanation:  out.Explanation,
		Source:       QuizStructured,
	}, true
}

// StudyPlan returns a long-horizon plan for an exam.
func (g *Generator) StudyPlan(ctx context.Context, exam string, tf syllabus.Timeframe, p profile.Profile) (string, error) {
	return g.roadmap(ctx, llm.PurposeStudyPlan, "Comprehensive Study Plan",
		fmt.Sprintf("%s preparation for %s", tf.Label, exam), tf.Days, p)
}
