package speech

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/khalilmezni/chefsense/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.LevelOff, nil)
}

func TestSpeakableText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Marinate the chicken overnight.",
			want: "Marinate the chicken overnight.",
		},
		{
			name: "link directive stripped",
			in:   "Try this: [RECIPE_LINK:butter-chicken:👉 View full recipe]",
			want: "Try this:",
		},
		{
			name: "card directive stripped",
			in:   "[RECIPE_CARD:pad-thai:Pad Thai:Thailand:Dinner:45 min]\nA classic.",
			want: "A classic.",
		},
		{
			name: "markdown headers and bold removed",
			in:   "### Nutrition breakdown:\n**520 kcal** per serving",
			want: "Nutrition breakdown: 520 kcal per serving",
		},
		{
			name: "bullets and emoji removed",
			in:   "• 🔥 Calories: 520\n• ⚠️ Contains: dairy",
			want: "Calories: 520 Contains: dairy",
		},
		{
			name: "everything stripped leaves empty",
			in:   "### \n[RECIPE_CARD:a:b:c:d:e]\n🎉",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpeakableText(tt.in); got != tt.want {
				t.Errorf("SpeakableText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGuidance(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no speech", ErrNoSpeech, LineNoSpeech()},
		{"mic unavailable", ErrMicUnavailable, LineNoMicrophone()},
		{"mic denied", ErrMicDenied, LineMicDenied()},
		{"network failure", &net.OpError{Op: "dial", Err: errors.New("refused")}, LineNetworkError()},
		{"busy", ErrCaptureBusy, LineVoiceBusy()},
		{"cancelled", context.Canceled, LineVoiceCancelled()},
		{"timed out", context.DeadlineExceeded, LineVoiceCancelled()},
		{"wrapped sentinel", errors.Join(errors.New("capture"), ErrNoSpeech), LineNoSpeech()},
		{"anything else", errors.New("boom"), LineVoiceError()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guidance(tt.err); got != tt.want {
				t.Errorf("Guidance(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestMicError(t *testing.T) {
	if got := micError(errors.New("device: permission denied")); !errors.Is(got, ErrMicDenied) {
		t.Errorf("micError(permission) = %v, want ErrMicDenied", got)
	}
	if got := micError(errors.New("no capture device")); !errors.Is(got, ErrMicUnavailable) {
		t.Errorf("micError(no device) = %v, want ErrMicUnavailable", got)
	}
}

func TestCleanTranscription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "show me chicken recipes", "show me chicken recipes"},
		{"whitespace and newlines", "  how do I\nmake pad thai  ", "how do I make pad thai"},
		{"blank audio marker", "[BLANK_AUDIO]", ""},
		{"junk around speech", "(typing) i have rice and eggs (sighing)", "i have rice and eggs"},
		{"environmental annotation", "(dog barking) what about calories", "what about calories"},
		{"hallucination discarded", "Thanks for watching!", ""},
		{"bare you discarded", "you", ""},
		{"timestamp prefix", "[00:00:00.000 --> 00:00:05.000] hello chef", "hello chef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTranscription(tt.in); got != tt.want {
				t.Errorf("cleanTranscription(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVoiceFor(t *testing.T) {
	tests := []struct {
		language string
		voice    string
		locale   string
	}{
		{"en", "en-US-AvaNeural", "en-US"},
		{"fr", "fr-FR-DeniseNeural", "fr-FR"},
		{"nl", "nl-NL-ColetteNeural", "nl-NL"},
		{"ar", "ar-SA-ZariyahNeural", "ar-SA"},
		{"", DefaultVoice, "en-US"},
		{"de", DefaultVoice, "en-US"},
	}

	for _, tt := range tests {
		if got := VoiceFor(tt.language); got != tt.voice {
			t.Errorf("VoiceFor(%q) = %q, want %q", tt.language, got, tt.voice)
		}
		if got := LocaleFor(tt.language); got != tt.locale {
			t.Errorf("LocaleFor(%q) = %q, want %q", tt.language, got, tt.locale)
		}
	}
}

func TestBuildSSML(t *testing.T) {
	got := buildSSML("Bonjour chef", "fr-FR", "fr-FR-DeniseNeural")
	for _, want := range []string{
		`xml:lang="fr-FR"`,
		`name="fr-FR-DeniseNeural"`,
		"Bonjour chef",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("buildSSML() missing %q:\n%s", want, got)
		}
	}
}

func TestCacheKeyVariesByLanguage(t *testing.T) {
	c := NewAudioCache(DefaultVoice, "", false, testLogger())
	en := c.hashKey("hello", "en")
	fr := c.hashKey("hello", "fr")
	if en == fr {
		t.Error("cache keys for different languages must differ")
	}
	if en != c.hashKey("hello", "") {
		t.Error("empty language should key as English")
	}
	if en == c.hashKey("bye", "en") {
		t.Error("cache keys for different texts must differ")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewAudioCache(DefaultVoice, "", false, testLogger())
	audio := []byte("RIFFfake")

	if _, ok := c.Get("hello", "en"); ok {
		t.Fatal("empty cache should miss")
	}
	c.Put("hello", "en", audio)
	got, ok := c.Get("hello", "en")
	if !ok || string(got) != string(audio) {
		t.Errorf("Get() after Put() = %q, %v", got, ok)
	}
	if _, ok := c.Get("hello", "fr"); ok {
		t.Error("same text in another language should miss")
	}
}
