package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
)

func result(t *testing.T, body string) *entities.TranslationResult {
	t.Helper()
	var r entities.TranslationResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return &r
}

type sent struct {
	kind      string // "message", "typing" or "card"
	channelID string
	text      string
	card      entities.Card
}

type fakeMessenger struct {
	mu          sync.Mutex
	sent        []sent
	sendErr     error
	cardErr     error
	typingErr   error
	panicOnSend bool
	panicOnCard bool
}

func (m *fakeMessenger) SendMessage(_ context.Context, channelID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicOnSend {
		panic("send exploded")
	}
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sent{kind: "message", channelID: channelID, text: text})
	return nil
}

func (m *fakeMessenger) SendTyping(_ context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sent{kind: "typing", channelID: channelID})
	return m.typingErr
}

func (m *fakeMessenger) SendCard(_ context.Context, channelID string, card entities.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panicOnCard {
		panic("card exploded")
	}
	if m.cardErr != nil {
		return m.cardErr
	}
	m.sent = append(m.sent, sent{kind: "card", channelID: channelID, card: card})
	return nil
}

func (m *fakeMessenger) kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		kinds = append(kinds, s.kind)
	}
	return kinds
}

func (m *fakeMessenger) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var texts []string
	for _, s := range m.sent {
		if s.kind == "message" {
			texts = append(texts, s.text)
		}
	}
	return texts
}

type fakeService struct {
	result  *entities.TranslationResult
	err     error
	calls   int
	text    string
	lang    string
	block   bool
	panicky bool
}

func (s *fakeService) Translate(ctx context.Context, text, targetLang string) (*entities.TranslationResult, error) {
	s.calls++
	s.text, s.lang = text, targetLang
	if s.panicky {
		panic("provider exploded")
	}
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.result, s.err
}

type fakeLookup map[string]string

func (l fakeLookup) Country(code string) string {
	if c, ok := l[code]; ok {
		return c
	}
	return code
}

// fakeT renders "key map[Field:value ...]" so tests can check both the
// message key and the template data.
type fakeT struct{}

func (fakeT) T(_, key string, data map[string]any) string {
	if data == nil {
		return key
	}
	return fmt.Sprintf("%s %v", key, data)
}

type fakeRecorder struct {
	mu           sync.Mutex
	intents      []domain.Intent
	successes    int
	failures     int
	hits         int
	misses       int
	reportFailed int
}

func (r *fakeRecorder) Intent(i domain.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, i)
}

func (r *fakeRecorder) Translation(ok bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.successes++
	} else {
		r.failures++
	}
}

func (r *fakeRecorder) CacheLookup(hit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func (r *fakeRecorder) ReportFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reportFailed++
}

type cacheKey struct{ lang, text string }

type fakeCache struct {
	entries map[cacheKey]*entities.TranslationResult
	getErr  error
	putErr  error
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[cacheKey]*entities.TranslationResult{}}
}

func (c *fakeCache) Get(_ context.Context, lang, text string) (*entities.TranslationResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[cacheKey{lang, text}], nil
}

func (c *fakeCache) Put(_ context.Context, lang, text string, r *entities.TranslationResult) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[cacheKey{lang, text}] = r
	return nil
}
