package syllabus

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studymate/internal/store"
)

func TestFallbackChapters(t *testing.T) {
	for _, subject := range []string{"Physics", "Chemistry", "Mathematics", "Biology"} {
		chapters := FallbackChapters(subject)
		require.Len(t, chapters, 10, subject)
		for i, ch := range chapters {
			assert.Equal(t, i+1, ch.Order)
			assert.NotEmpty(t, ch.ID)
		}
	}

	phy := FallbackChapters("Physics")
	assert.Equal(t, "phy_01", phy[0].ID)
	assert.Equal(t, "Physical World and Measurement", phy[0].Name)
	assert.Equal(t, "Work, Energy and Power", phy[3].Name)
	assert.Equal(t, "Cell: The Unit of Life", FallbackChapters("Biology")[7].Name)
}

func TestGenericFallback(t *testing.T) {
	assert.False(t, HasFallback("English"))
	chapters := FallbackChapters("English")
	require.Len(t, chapters, 5)
	assert.Equal(t, Chapter{ID: "intro_01", Name: "Introduction to English", Order: 1}, chapters[0])
	assert.Equal(t, "prob_05", chapters[4].ID)
}

func TestSubjectsForExam(t *testing.T) {
	assert.Equal(t, []string{"Physics", "Chemistry", "Biology"}, SubjectsForExam("NEET"))
	assert.Equal(t, []string{"Physics", "Chemistry", "Mathematics"}, SubjectsForExam("JEE"))
	assert.Contains(t, SubjectsForExam("UPSC"), "Science & Technology")
	assert.Equal(t, []string{"Physics", "Chemistry", "Mathematics", "Biology", "English"}, SubjectsForExam("Boards"))

	s := SubjectsForExam("JEE")
	s[0] = "changed"
	assert.Equal(t, "Physics", SubjectsForExam("JEE")[0])
}

func TestLoadStaticRejectsIncompleteData(t *testing.T) {
	_, err := loadStatic([]byte("subjects: {}\n"))
	assert.Error(t, err)
	_, err = loadStatic([]byte("::"))
	assert.Error(t, err)
}

func TestTimeframes(t *testing.T) {
	days := map[string]int{"1month": 30, "3months": 90, "6months": 180, "1year": 365}
	for key, want := range days {
		tf, err := LookupTimeframe(key)
		require.NoError(t, err)
		assert.Equal(t, want, tf.Days)
	}
	_, err := LookupTimeframe("2weeks")
	assert.Error(t, err)

	tf, err := LookupTimeframe(DefaultTimeframe)
	require.NoError(t, err)
	assert.Equal(t, "3 Months", tf.Label)
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 3, ClampDays(1))
	assert.Equal(t, 7, ClampDays(7))
	assert.Equal(t, 21, ClampDays(40))
}

type failingRepo struct{}

func (failingRepo) Chapters(context.Context, string, string) ([]store.SyllabusEntry, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Seed(context.Context, []store.SyllabusEntry) error {
	return errors.New("connection refused")
}

func TestCatalogFallsBackOnError(t *testing.T) {
	c := NewCatalog(failingRepo{}, nil)
	chapters, src := c.Chapters(context.Background(), "11", "Physics")
	assert.Equal(t, SourceFallback, src)
	assert.Len(t, chapters, 10)

	_, err := c.Seed(context.Background())
	assert.Error(t, err)
}

func TestCatalogWithoutBackend(t *testing.T) {
	c := NewCatalog(nil, nil)
	chapters, src := c.Chapters(context.Background(), "12", "History")
	assert.Equal(t, SourceFallback, src)
	assert.Len(t, chapters, 5)

	_, err := c.Seed(context.Background())
	assert.Error(t, err)
}

func TestCatalogSeedThenRead(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "syllabus.db"))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	c := NewCatalog(s.SyllabusRepo(), nil)
	_, src := c.Chapters(ctx, "11", "Physics")
	assert.Equal(t, SourceFallback, src)

	n, err := c.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80, n)

	chapters, src := c.Chapters(ctx, "11", "Physics")
	assert.Equal(t, SourceBackend, src)
	require.Len(t, chapters, 10)
	assert.Equal(t, "Kinematics", chapters[1].Name)

	// Seeding twice is an upsert.
	_, err = c.Seed(ctx, "12")
	require.NoError(t, err)
	chapters, _ = c.Chapters(ctx, "12", "Chemistry")
	assert.Len(t, chapters, 10)
}
