package entities

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"transbot/internal/domain"
)

var langPairPattern = regexp.MustCompile(`\A\w{2}-\w{2}\z`)

// TranslateRequest is a parsed translate command.
type TranslateRequest struct {
	TargetLang string
	SourceText string
}

// TranslationResult is the raw answer of the translation service.
// Lang and Text are kept as raw JSON: the service is not trusted to send
// them with the documented shape.
type TranslationResult struct {
	Code    int
	Lang    json.RawMessage
	Text    json.RawMessage
	Message string
}

type wireResult struct {
	Code    int             `json:"code"`
	Lang    json.RawMessage `json:"lang,omitempty"`
	Text    json.RawMessage `json:"text,omitempty"`
	Message string          `json:"message,omitempty"`
}

// UnmarshalJSON decodes field by field so that one malformed field does not
// discard the others. Only a body that is not a JSON object is an error.
func (r *TranslationResult) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("translation result: not a JSON object")
	}

	*r = TranslationResult{Lang: fields["lang"], Text: fields["text"]}
	if raw, ok := fields["code"]; ok {
		var code int
		if json.Unmarshal(raw, &code) == nil {
			r.Code = code
		}
	}
	if raw, ok := fields["message"]; ok {
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			r.Message = msg
		}
	}
	return nil
}

func (r TranslationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireResult(r))
}

// NormalizedText returns the translated text, joining a list of strings
// with ", ". ok is false when the text is absent, of another shape, or empty.
func (r *TranslationResult) NormalizedText() (text string, ok bool) {
	if r == nil || len(r.Text) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(r.Text, &s); err == nil {
		return s, s != ""
	}
	var parts []string
	if err := json.Unmarshal(r.Text, &parts); err == nil {
		joined := strings.Join(parts, ", ")
		return joined, joined != ""
	}
	return "", false
}

// LangPair returns the detected "src-dst" pair, lower-cased. It accepts only
// a string of exactly two word characters on each side of the hyphen.
func (r *TranslationResult) LangPair() (src, dst string, ok bool) {
	if r == nil || len(r.Lang) == 0 {
		return "", "", false
	}
	var pair string
	if err := json.Unmarshal(r.Lang, &pair); err != nil || !langPairPattern.MatchString(pair) {
		return "", "", false
	}
	src, dst, _ = strings.Cut(strings.ToLower(pair), "-")
	return src, dst, true
}

// Dump renders the result for diagnostics. A nil result renders as
// domain.NoResult.
func (r *TranslationResult) Dump() string {
	if r == nil {
		return domain.NoResult
	}
	b, err := json.Marshal(r)
	if err != nil {
		return domain.NoResult
	}
	return string(b)
}
