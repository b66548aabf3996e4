package entities

// DisplayPayload is what a successful translation renders.
type DisplayPayload struct {
	SrcMarker      string
	DstMarker      string
	OriginalText   string
	TranslatedText string
	ReferenceLink  string
}

// RejectionPayload describes a failed translate command. RawResult is nil
// when the failure happened before the service answered.
type RejectionPayload struct {
	ChannelID    string
	ErrorMessage string
	TargetLang   string
	SourceText   string
	RawResult    *TranslationResult
}

// TranslationOutcome holds exactly one of Display or Rejection.
type TranslationOutcome struct {
	Display   *DisplayPayload
	Rejection *RejectionPayload
}

func (o TranslationOutcome) Succeeded() bool {
	return o.Display != nil
}
