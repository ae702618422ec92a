package lessons

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/profile"
	"github.com/abhisek/studymate/internal/syllabus"
)

// fakeChat returns queued completions and records requests.
type fakeChat struct {
	replies []llm.Completion
	calls   []llm.Request
	ctxs    []context.Context
}

func (f *fakeChat) Complete(ctx context.Context, req llm.Request) llm.Completion {
	f.calls = append(f.calls, req)
	f.ctxs = append(f.ctxs, ctx)
	if len(f.replies) == 0 {
		return llm.Completion{Text: llm.Simulate(req), Simulated: true}
	}
	c := f.replies[0]
	f.replies = f.replies[1:]
	return c
}

func reply(text string) llm.Completion { return llm.Completion{Text: text, Model: "fake"} }

func testProfile() profile.Profile {
	return profile.Profile{GradeLevel: 12, ExamType: profile.ExamNEET, LearningStyle: profile.StyleVisual}
}

func TestRoadmapPrompt(t *testing.T) {
	chat := &fakeChat{replies: []llm.Completion{reply("Day 1: vectors")}}
	g := NewGenerator(chat, DefaultConfig(), nil)

	out, err := g.Roadmap(context.Background(), "Physics", "Kinematics", 7, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Day 1: vectors" {
		t.Errorf("roadmap = %q", out)
	}

	req := chat.calls[0]
	wantSystem := "You are an expert educational AI tutor specializing in NEET preparation for 12th class students. Create detailed, day-wise study roadmaps that are engaging and effective."
	if req.System != wantSystem {
		t.Errorf("system prompt = %q", req.System)
	}
	user := req.Messages[0].Content
	for _, want := range []string{
		"Create a 7-day study roadmap for Physics - Kinematics.",
		"Student profile: Class 12, Target: NEET, Learning style: visual.",
		"daily goals, topics to cover, and practice recommendations",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q:\n%s", want, user)
		}
	}
	if req.Temperature != 0.7 || req.MaxTokens != 1024 {
		t.Errorf("temperature/max tokens = %v/%d", req.Temperature, req.MaxTokens)
	}
	if got := llm.PurposeFrom(chat.ctxs[0]); got != "roadmap" {
		t.Errorf("purpose = %q", got)
	}
}

func TestChunkedContentPrompt(t *testing.T) {
	chat := &fakeChat{replies: []llm.Completion{reply("Vectors have direction.")}}
	g := NewGenerator(chat, DefaultConfig(), nil)

	out, err := g.ChunkedContent(context.Background(), "Physics - Kinematics", 2, testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Vectors have direction." {
		t.Errorf("content = %q", out)
	}
	user := chat.calls[0].Messages[0].Content
	if !strings.Contains(user, "Explain Physics - Kinematics in an engaging way (chunk 3).") {
		t.Errorf("user message = %q", user)
	}
	if chat.calls[0].System != contentSystemPrompt {
		t.Errorf("system prompt = %q", chat.calls[0].System)
	}
}

func TestFlashcardParsesPrefixes(t *testing.T) {
	chat := &fakeChat{replies: []llm.Completion{reply("Here you go!\nFRONT: What is displacement?\nBACK: Change in position.\n")}}
	g := NewGenerator(chat, DefaultConfig(), nil)

	card, err := g.Flashcard(context.Background(), "Physics - Kinematics", "Chunk 1 concepts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Front != "What is displacement?" || card.Back != "Change in position." {
		t.Errorf("card = %+v", card)
	}
	if !strings.Contains(chat.calls[0].Messages[0].Content, `Format as "FRONT: question" and "BACK: answer"`) {
		t.Error("flashcard prompt lacks format instruction")
	}
}

func TestFlashcardDefaults(t *testing.T) {
	card := ParseFlashcard("no prefixes at all", "Chemistry - Hydrogen", "Chunk 2 concepts")
	if card.Front != "What is Chunk 2 concepts?" {
		t.Errorf("front = %q", card.Front)
	}
	if card.Back != "Chunk 2 concepts is a fundamental concept in Chemistry - Hydrogen." {
		t.Errorf("back = %q", card.Back)
	}

	half := ParseFlashcard("FRONT: Define isotope", "Chem", "isotopes")
	if half.Front != "Define isotope" || half.Back != "isotopes is a fundamental concept in Chem." {
		t.Errorf("half card = %+v", half)
	}
}

func TestQuizStructured(t *testing.T) {
	chat := &fakeChat{replies: []llm.Completion{reply("```json\n" + `{"question":"SI unit of force?","options":["joule","newton","watt","pascal"],"correct_index":1,"explanation":"F = ma gives kg m/s^2."}` + "\n```")}}
	g := NewGenerator(chat, DefaultConfig(), nil)

	q, err := g.Quiz(context.Background(), "Physics - Laws of Motion", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Source != QuizStructured {
		t.Fatalf("source = %s", q.Source)
	}
	if q.Question != "SI unit of force?" || q.Options[1] != "newton" || !q.IsCorrect(1) {
		t.Errorf("quiz = %+v", q)
	}
	if chat.calls[0].Schema != QuizSchema {
		t.Error("expected quiz schema on request")
	}
	if !strings.Contains(chat.calls[0].Messages[0].Content, "Create a medium level quiz question about Physics - Laws of Motion.") {
		t.Errorf("prompt = %q", chat.calls[0].Messages[0].Content)
	}
}

func TestQuizInvalidJSONFallsBackToText(t *testing.T) {
	text := `Question: Which gas is lightest?
A) Helium
B) Hydrogen
C) Oxygen
D) Nitrogen
Answer: B
Explanation: Hydrogen has the lowest molar mass.
It is diatomic.`
	chat := &fakeChat{replies: []llm.Completion{reply(text)}}
	g := NewGenerator(chat, DefaultConfig(), nil)

	q, err := g.Quiz(context.Background(), "Chemistry - Hydrogen", DifficultyHard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Source != QuizParsed {
		t.Fatalf("source = %s", q.Source)
	}
	if q.Question != "Which gas is lightest?" || q.CorrectIndex != 1 || q.Options[3] != "Nitrogen" {
		t.Errorf("quiz = %+v", q)
	}
	if q.Explanation != "Hydrogen has the lowest molar mass. It is diatomic." {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestQuizSimulatedUsesTemplate(t *testing.T) {
	chat := &fakeChat{}
	g := NewGenerator(chat, DefaultConfig(), nil)

	q, err := g.Quiz(context.Background(), "Biology - Biomolecules", DifficultyMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Source != QuizTemplate {
		t.Fatalf("source = %s", q.Source)
	}
	if q.Question != "Which of the following best describes Biology - Biomolecules?" {
		t.Errorf("question = %q", q.Question)
	}
	if len(q.Options) != 4 || q.Options[3] != "Option D - All of the above" || q.CorrectIndex != 1 {
		t.Errorf("quiz = %+v", q)
	}
	if q.Explanation == "" {
		t.Error("template explanation should come from the reply")
	}
}

func TestTemplateQuizExplanation(t *testing.T) {
	q := TemplateQuiz("Optics", "line one\nline two\nline three")
	if q.Explanation != "line two line three" {
		t.Errorf("explanation = %q", q.Explanation)
	}
	if got := TemplateQuiz("Optics", "only").Explanation; got != "only" {
		t.Errorf("single line explanation = %q", got)
	}
}

func TestParseQuizTextMarkdown(t *testing.T) {
	text := `**Question:** What is the SI unit of work?
- A) Newton
- B) Joule
- C) Watt
- D) Pascal
**Correct Answer:** B
**Explanation:** Work is force times displacement.`

	q, ok := ParseQuizText(text)
	if !ok {
		t.Fatal("expected markdown quiz to parse")
	}
	if q.Question != "What is the SI unit of work?" || q.Options[0] != "Newton" || q.CorrectIndex != 1 {
		t.Errorf("quiz = %+v", q)
	}
}

func TestParseQuizTextIncomplete(t *testing.T) {
	if _, ok := ParseQuizText("Question: x?\nA) 1\nB) 2\nAnswer: A"); ok {
		t.Error("two options should not parse")
	}
	if _, ok := ParseQuizText("Question: x?\nA) 1\nB) 2\nC) 3\nD) 4"); ok {
		t.Error("missing answer should not parse")
	}
}

func TestStudyPlan(t *testing.T) {
	chat := &fakeChat{replies: []llm.Completion{reply("Month 1: basics")}}
	g := NewGenerator(chat, DefaultConfig(), nil)

	tf, err := syllabus.LookupTimeframe("6months")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.StudyPlan(context.Background(), "JEE", tf, testProfile()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := chat.calls[0].Messages[0].Content
	if !strings.Contains(user, "Create a 180-day study roadmap for Comprehensive Study Plan - 6 Months preparation for JEE.") {
		t.Errorf("user message = %q", user)
	}
	if got := llm.PurposeFrom(chat.ctxs[0]); got != llm.PurposeStudyPlan {
		t.Errorf("purpose = %q", got)
	}
}

func TestGeneratorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGenerator(&fakeChat{}, DefaultConfig(), nil)

	if _, err := g.ChunkedContent(ctx, "x", 0, testProfile()); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := g.Quiz(ctx, "x", ""); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestGeneratorWithUnavailableGateway(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.SimulatedDelay = 0
	gw := llm.NewGateway(nil, "no key", cfg, nil)
	g := NewGenerator(gw, DefaultConfig(), nil)

	card, err := g.Flashcard(context.Background(), "Physics - Gravitation", "Chunk 1 concepts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Front != "What is Chunk 1 concepts?" {
		t.Errorf("front = %q", card.Front)
	}
}
