package entities

// IncomingMessage is one message event as seen by the dispatcher.
type IncomingMessage struct {
	ChannelID string
	UserID    string
	Text      string
	Direct    bool // direct-message channel (no guild)
}

// ChannelJoined is emitted when the bot lands in a new channel.
type ChannelJoined struct {
	ChannelID   string
	JoinerIsBot bool
}

// Card is a platform-neutral rich reply (attachment / embed).
type Card struct {
	Fallback  string
	Pretext   string
	Title     string
	TitleLink string
	Text      string
	Color     string // hex, "#A02020"
	ImageURL  string
}
