package domain

// Intent is the classified purpose of an incoming message.
type Intent string

const (
	IntentGreet          Intent = "greet"
	IntentMentionAck     Intent = "mention_ack"
	IntentHelp           Intent = "help"
	IntentTranslate      Intent = "translate"
	IntentUnknownCommand Intent = "unknown_command"
	IntentIgnore         Intent = "ignore"
)

// Marker used when no language pair was detected.
const MarkerUnavailable = "N/A"

// NoResult replaces the raw result dump when the failure happened before
// the translation service answered.
const NoResult = "no result"
