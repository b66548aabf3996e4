package application

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transbot/internal/domain"
)

func newTestPipeline(service *fakeService, recorder *fakeRecorder, opts PipelineOptions) *Pipeline {
	logger, _ := test.NewNullLogger()
	lookup := fakeLookup{"en": "gb", "ja": "jp", "uk": "ua"}
	return NewPipeline(service, lookup, recorder, logger, opts)
}

func TestPipeline_TranslateSuccess(t *testing.T) {
	service := &fakeService{result: result(t, `{"code":200,"lang":"en-fr","text":["bonjour le monde"]}`)}
	recorder := &fakeRecorder{}
	p := newTestPipeline(service, recorder, PipelineOptions{})

	out := p.Translate(context.Background(), "C1", "bot to fr hello world")

	require.True(t, out.Succeeded())
	assert.Nil(t, out.Rejection)
	assert.Equal(t, "hello world", service.text)
	assert.Equal(t, "fr", service.lang)

	d := out.Display
	assert.Equal(t, ":flag_gb:", d.SrcMarker)
	assert.Equal(t, ":flag_fr:", d.DstMarker)
	assert.Equal(t, "hello world", d.OriginalText)
	assert.Equal(t, "bonjour le monde", d.TranslatedText)

	link, err := url.Parse(d.ReferenceLink)
	require.NoError(t, err)
	assert.Equal(t, "translate.yandex.ru", link.Host)
	assert.Equal(t, "en-fr", link.Query().Get("lang"))
	assert.Equal(t, "hello world", link.Query().Get("text"))

	assert.Equal(t, 1, recorder.successes)
	assert.Zero(t, recorder.failures)
}

func TestPipeline_Markers(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		target  string
		wantSrc string
		wantDst string
	}{
		{
			name:    "mapped pair",
			body:    `{"code":200,"lang":"en-ja","text":"こんにちは"}`,
			target:  "ja",
			wantSrc: ":flag_gb:",
			wantDst: ":flag_jp:",
		},
		{
			name:    "unmapped code uses itself",
			body:    `{"code":200,"lang":"xx-es","text":"hola"}`,
			target:  "es",
			wantSrc: ":flag_xx:",
			wantDst: ":flag_es:",
		},
		{
			name:    "upper-case pair",
			body:    `{"code":200,"lang":"EN-UK","text":"привіт"}`,
			target:  "uk",
			wantSrc: ":flag_gb:",
			wantDst: ":flag_ua:",
		},
		{
			name:    "one-letter source",
			body:    `{"code":200,"lang":"e-es","text":"hola"}`,
			target:  "es",
			wantSrc: "es",
			wantDst: domain.MarkerUnavailable,
		},
		{
			name:    "three-letter codes",
			body:    `{"code":200,"lang":"eng-esp","text":"hola"}`,
			target:  "es",
			wantSrc: "es",
			wantDst: domain.MarkerUnavailable,
		},
		{
			name:    "lang is not a string",
			body:    `{"code":200,"lang":["en","es"],"text":"hola"}`,
			target:  "es",
			wantSrc: "es",
			wantDst: domain.MarkerUnavailable,
		},
		{
			name:    "lang missing",
			body:    `{"code":200,"text":"hola"}`,
			target:  "es",
			wantSrc: "es",
			wantDst: domain.MarkerUnavailable,
		},
		{
			name:    "code is not 200",
			body:    `{"code":201,"lang":"en-es","text":"hola"}`,
			target:  "es",
			wantSrc: "es",
			wantDst: domain.MarkerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{result: result(t, tt.body)}
			p := newTestPipeline(service, &fakeRecorder{}, PipelineOptions{})

			out := p.Translate(context.Background(), "C1", "to "+tt.target+" hello")

			require.True(t, out.Succeeded())
			assert.Equal(t, tt.wantSrc, out.Display.SrcMarker)
			assert.Equal(t, tt.wantDst, out.Display.DstMarker)
		})
	}
}

func TestPipeline_TextShapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{name: "string", body: `{"code":200,"lang":"en-es","text":"hola"}`, want: "hola", wantOK: true},
		{name: "list joined", body: `{"code":200,"lang":"en-es","text":["a","b"]}`, want: "a, b", wantOK: true},
		{name: "empty list", body: `{"code":200,"lang":"en-es","text":[]}`},
		{name: "empty string", body: `{"code":200,"lang":"en-es","text":""}`},
		{name: "number", body: `{"code":200,"lang":"en-es","text":42}`},
		{name: "null", body: `{"code":200,"lang":"en-es","text":null}`},
		{name: "missing", body: `{"code":401,"message":"API key is invalid"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{result: result(t, tt.body)}
			recorder := &fakeRecorder{}
			p := newTestPipeline(service, recorder, PipelineOptions{})

			out := p.Translate(context.Background(), "C1", "to es hello")

			if tt.wantOK {
				require.True(t, out.Succeeded())
				assert.Equal(t, tt.want, out.Display.TranslatedText)
				return
			}
			require.False(t, out.Succeeded())
			assert.Nil(t, out.Display)
			assert.Equal(t, "Translation failed", out.Rejection.ErrorMessage)
			assert.Equal(t, "es", out.Rejection.TargetLang)
			assert.Equal(t, "hello", out.Rejection.SourceText)
			assert.Same(t, service.result, out.Rejection.RawResult)
			assert.Equal(t, 1, recorder.failures)
		})
	}
}

func TestPipeline_InvalidInputSkipsService(t *testing.T) {
	tests := []struct {
		text     string
		wantLang string
		wantText string
	}{
		{text: "bot to"},
		{text: "to fr", wantLang: "fr"},
		{text: "to french hello", wantLang: "french", wantText: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			service := &fakeService{}
			p := newTestPipeline(service, &fakeRecorder{}, PipelineOptions{})

			out := p.Translate(context.Background(), "C9", tt.text)

			require.NotNil(t, out.Rejection)
			assert.Nil(t, out.Display)
			assert.Zero(t, service.calls)
			assert.Equal(t, "C9", out.Rejection.ChannelID)
			assert.Equal(t, "Invalid input", out.Rejection.ErrorMessage)
			assert.Equal(t, tt.wantLang, out.Rejection.TargetLang)
			assert.Equal(t, tt.wantText, out.Rejection.SourceText)
			assert.Nil(t, out.Rejection.RawResult)
		})
	}
}

func TestPipeline_ServiceFailures(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		service := &fakeService{err: errors.New("connection refused")}
		recorder := &fakeRecorder{}
		p := newTestPipeline(service, recorder, PipelineOptions{})

		out := p.Translate(context.Background(), "C1", "to es hello")

		require.NotNil(t, out.Rejection)
		assert.Equal(t, "Translation failed", out.Rejection.ErrorMessage)
		assert.Nil(t, out.Rejection.RawResult)
		assert.Equal(t, 1, recorder.failures)
	})

	t.Run("timeout", func(t *testing.T) {
		service := &fakeService{block: true}
		p := newTestPipeline(service, &fakeRecorder{}, PipelineOptions{Timeout: 20 * time.Millisecond})

		start := time.Now()
		out := p.Translate(context.Background(), "C1", "to es hello")

		require.NotNil(t, out.Rejection)
		assert.Equal(t, "Translation failed", out.Rejection.ErrorMessage)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("panic", func(t *testing.T) {
		service := &fakeService{panicky: true}
		p := newTestPipeline(service, &fakeRecorder{}, PipelineOptions{})

		out := p.Translate(context.Background(), "C1", "to es hello")

		require.NotNil(t, out.Rejection)
		assert.Nil(t, out.Display)
		assert.Equal(t, "Translation failed", out.Rejection.ErrorMessage)
		assert.Equal(t, "es", out.Rejection.TargetLang)
	})

	t.Run("nil result without error", func(t *testing.T) {
		p := newTestPipeline(&fakeService{}, &fakeRecorder{}, PipelineOptions{})

		out := p.Translate(context.Background(), "C1", "to es hello")

		require.NotNil(t, out.Rejection)
		assert.Equal(t, "Translation failed", out.Rejection.ErrorMessage)
	})
}

func TestPipeline_CustomOptions(t *testing.T) {
	service := &fakeService{result: result(t, `{"code":200,"lang":"en-ja","text":"やあ"}`)}
	p := newTestPipeline(service, &fakeRecorder{}, PipelineOptions{
		FlagFormat:   "[%s]",
		ReferenceURL: "https://example.test/tr",
	})

	out := p.Translate(context.Background(), "C1", "tr ja hi")

	require.True(t, out.Succeeded())
	assert.Equal(t, "[gb]", out.Display.SrcMarker)
	assert.Equal(t, "[jp]", out.Display.DstMarker)
	assert.Equal(t, "https://example.test/tr?lang=en-ja&text=hi", out.Display.ReferenceLink)
}

func TestNewPipeline_NilCollaborators(t *testing.T) {
	service := &fakeService{result: result(t, `{"code":200,"lang":"en-es","text":"hola"}`)}
	p := NewPipeline(service, fakeLookup{}, nil, nil, PipelineOptions{})
	p.logger.SetLevel(logrus.PanicLevel)

	out := p.Translate(context.Background(), "C1", "to es hello")
	assert.True(t, out.Succeeded())
}

func TestReferenceLink(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target string
		source string
		want   string
	}{
		{
			name:   "known source",
			text:   "hello",
			target: "fr",
			source: "en",
			want:   "https://translate.yandex.ru/?lang=en-fr&text=hello",
		},
		{
			name:   "English target guesses Spanish",
			text:   "hola",
			target: "en",
			want:   "https://translate.yandex.ru/?lang=es-en&text=hola",
		},
		{
			name:   "other target guesses English",
			text:   "good morning",
			target: "de",
			want:   "https://translate.yandex.ru/?lang=en-de&text=good+morning",
		},
		{
			name:   "text is escaped",
			text:   "a&b=c?",
			target: "es",
			want:   "https://translate.yandex.ru/?lang=en-es&text=a%26b%3Dc%3F",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReferenceLink(DefaultReferenceURL, tt.text, tt.target, tt.source))
		})
	}
}
