package analysis

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// ReportGenerator produces the two report strings returned by the analyze
// endpoint. Handlers depend on this interface so tests can substitute a
// deterministic implementation.
type ReportGenerator interface {
	Semantic(content string) string
	Threat(content string) string
}

var (
	topics     = []string{"social", "political", "personal", "business"}
	sentiments = []string{"positive", "negative", "neutral"}
	entities   = []string{"person", "organization", "location", "event"}

	threatLevels = []string{"Low", "Medium", "High", "Critical"}

	threatIndicators = []string{
		"Aggressive language",
		"Threatening statements",
		"Radicalization markers",
		"Violent imagery",
		"Conspiratorial rhetoric",
		"Extremist ideology",
		"Targeted harassment",
	}

	recommendations = map[string]string{
		"Low":      "Routine monitoring",
		"Medium":   "Enhanced monitoring",
		"High":     "Escalate for review",
		"Critical": "Immediate action required",
	}
)

// Generator is the production ReportGenerator. Reports mix real statistics
// of the submitted text with randomly selected labels; only the statistics
// are content-derived. The seed is configurable so runs can be reproduced.
// rand.Rand is not safe for concurrent use, hence the mutex.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (g *Generator) Semantic(content string) string {
	words := strings.Fields(content)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
	}

	g.mu.Lock()
	topic := topics[g.rng.Intn(len(topics))]
	sentiment := sentiments[g.rng.Intn(len(sentiments))]
	picked := g.pickShuffled(entities, 1+g.rng.Intn(3))

	formality := "Informal"
	if g.rng.Float64() > 0.5 {
		formality = "Formal"
	}
	terminology := "Not significant"
	if g.rng.Float64() > 0.7 {
		terminology = "Present"
	}
	intensity := []string{"Low", "Medium", "High"}[g.rng.Intn(3)]
	originality := "potentially derivative"
	if g.rng.Float64() > 0.3 {
		originality = "original"
	}
	g.mu.Unlock()

	return fmt.Sprintf(`Semantic Analysis Report

Content Length: %d characters
Word Count: %d words
Unique Words: %d

Primary Topic: %s
Overall Sentiment: %s
Key Entities Detected: %s

Language Patterns:
- Formality: %s
- Technical terminology: %s
- Emotional intensity: %s

Content appears to be %s.
`, len(content), len(words), len(unique), topic, sentiment, strings.Join(picked, ", "),
		formality, terminology, intensity, originality)
}

func (g *Generator) Threat(_ string) string {
	g.mu.Lock()
	level := threatLevels[g.rng.Intn(len(threatLevels))]
	picked := g.pickShuffled(threatIndicators, g.rng.Intn(4))
	g.mu.Unlock()

	indicators := "No specific threat indicators detected."
	if len(picked) > 0 {
		var b strings.Builder
		b.WriteString("Indicators Detected:\n")
		for _, ind := range picked {
			b.WriteString("- ")
			b.WriteString(ind)
			b.WriteString("\n")
		}
		indicators = strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf(`Threat Analysis Report

Threat Level: %s

%s

Recommendation: %s

Analysis timestamp: %s
`, level, indicators, recommendations[level], g.now().UTC().Format(time.RFC3339))
}

// pickShuffled returns n random items from vocab. Caller must hold g.mu.
func (g *Generator) pickShuffled(vocab []string, n int) []string {
	shuffled := make([]string, len(vocab))
	copy(shuffled, vocab)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
