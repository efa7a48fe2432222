package speech

import "time"

// Default voice for TTS. Change this constant to switch the English voice.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AvaNeural"

// Per-language neural voices and their locales. Replies are spoken in the
// language they were written in, so each supported language needs a voice.
var languageVoices = map[string]string{
	"en": DefaultVoice,
	"fr": "fr-FR-DeniseNeural",
	"nl": "nl-NL-ColetteNeural",
	"ar": "ar-SA-ZariyahNeural",
}

var languageLocales = map[string]string{
	"en": "en-US",
	"fr": "fr-FR",
	"nl": "nl-NL",
	"ar": "ar-SA",
}

// VoiceFor returns the neural voice for a language code, falling back to
// the English default for unknown codes.
func VoiceFor(language string) string {
	if v, ok := languageVoices[language]; ok {
		return v
	}
	return DefaultVoice
}

// LocaleFor returns the BCP-47 locale for a language code.
func LocaleFor(language string) string {
	if l, ok := languageLocales[language]; ok {
		return l
	}
	return "en-US"
}

// Audio format returned by Azure and expected by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching the default format.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Env var names for Azure Speech credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// Priority levels for speech requests. Higher value = speaks first.
type Priority int

const (
	PriorityLow      Priority = iota // idle chatter, suggestions
	PriorityNormal                   // assistant replies
	PriorityHigh                     // notifications
	PriorityCritical                 // urgent alerts, errors
)

// SpeechRequest is a queued item waiting to be spoken.
type SpeechRequest struct {
	Text     string
	Language string
	Priority Priority
	QueuedAt time.Time
}
