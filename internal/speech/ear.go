package speech

import (
	"context"
	"errors"
	"net"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/khalilmezni/chefsense/internal/logger"
)

// Voice capture failure modes. Mapped to user-facing guidance via Guidance.
var (
	ErrNoSpeech       = errors.New("no speech detected")
	ErrMicUnavailable = errors.New("microphone unavailable")
	ErrMicDenied      = errors.New("microphone access denied")
	ErrCaptureBusy    = errors.New("voice capture already in progress")
)

// Guidance maps a voice capture error to the message shown (and spoken)
// to the user.
func Guidance(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, ErrNoSpeech):
		return LineNoSpeech()
	case errors.Is(err, ErrMicDenied):
		return LineMicDenied()
	case errors.Is(err, ErrMicUnavailable):
		return LineNoMicrophone()
	case errors.Is(err, ErrCaptureBusy):
		return LineVoiceBusy()
	case errors.As(err, &netErr):
		return LineNetworkError()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return LineVoiceCancelled()
	default:
		return LineVoiceError()
	}
}

// envAnnotation matches whisper environmental annotations like
// "(keyboard clicking)", "[laughter]", "(speaking French)", etc.
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z\s]*[\)\]]`)

// EarOption configures the Ear.
type EarOption func(*Ear)

// WithRecordDuration sets how long each push-to-talk capture lasts.
func WithRecordDuration(d time.Duration) EarOption {
	return func(e *Ear) { e.recordDuration = d }
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) EarOption {
	return func(e *Ear) { e.tempDir = dir }
}

// Ear provides push-to-talk speech-to-text input using a local Whisper
// model. Each Listen call records one fixed-length clip, transcribes it,
// and returns the cleaned text. The caller decides when to listen (e.g.
// a hotkey in the terminal UI); the microphone is never open otherwise.
type Ear struct {
	whisperBin string
	modelPath  string
	tempDir    string
	log        *logger.Logger
	mouth      *Mouth // optional — wait for it to finish before recording

	recordDuration time.Duration

	mu        sync.Mutex
	listening bool
}

// NewEar creates a push-to-talk voice input listener.
//
//   - whisperBin: path to the whisper-cli executable
//   - modelPath:  path to the GGML model file
//   - mouth:      optional Mouth — capture waits for it to go quiet so the
//     microphone doesn't pick up the assistant's own voice
func NewEar(whisperBin, modelPath string, mouth *Mouth, log *logger.Logger, opts ...EarOption) *Ear {
	e := &Ear{
		whisperBin:     whisperBin,
		modelPath:      modelPath,
		tempDir:        ".chefsense-stt",
		log:            log,
		mouth:          mouth,
		recordDuration: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}

	// Validate that the whisper binary is reachable.
	if _, err := exec.LookPath(e.whisperBin); err != nil {
		log.Error("ear: whisper binary %q not found in PATH: %v", e.whisperBin, err)
	}

	return e
}

// Listen records one clip and returns the transcribed text. Returns
// ErrCaptureBusy if a capture is already running, ErrNoSpeech if the
// clip contained nothing usable, and ErrMicUnavailable if the recorder
// could not start.
func (e *Ear) Listen(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.listening {
		e.mu.Unlock()
		return "", ErrCaptureBusy
	}
	e.listening = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.listening = false
		e.mu.Unlock()
	}()

	// Echo prevention: let the assistant finish talking first.
	e.waitForMouth(ctx)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.log.Info("ear: listening for %s", e.recordDuration)

	text, err := e.recordChunk(ctx, e.recordDuration)
	if err != nil {
		return "", err
	}

	text = cleanTranscription(text)
	if text == "" {
		e.log.Debug("ear: clip contained no usable speech")
		return "", ErrNoSpeech
	}

	e.log.Info("ear: heard %q", text)
	return text, nil
}

// micError distinguishes an OS permission refusal from a missing or
// broken recording device.
func micError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission") || strings.Contains(msg, "denied") {
		return ErrMicDenied
	}
	return ErrMicUnavailable
}

// waitForMouth blocks until the mouth finishes speaking so the
// microphone doesn't pick it up.
func (e *Ear) waitForMouth(ctx context.Context) {
	if e.mouth == nil {
		return
	}
	for e.mouth.IsSpeaking() || e.mouth.QueueLen() > 0 {
		select {
		case <-time.After(100 * time.Millisecond):
		case <-ctx.Done():
			return
		}
	}
}

// ── Recording ────────────────────────────────────────────────────

// recordChunk does one recording cycle with the given duration and
// returns the transcribed text.
func (e *Ear) recordChunk(ctx context.Context, duration time.Duration) (string, error) {
	var result string
	var wg sync.WaitGroup
	wg.Add(1)

	callback := func(text string) {
		result = text
		wg.Done()
	}

	verbose := e.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(
		e.whisperBin,
		e.modelPath,
		e.tempDir,
		"wav",
		callback,
		verbose,
	)
	if err != nil {
		e.log.Error("ear: transcriber init failed: %v", err)
		return "", micError(err)
	}

	if err := t.Start(); err != nil {
		e.log.Error("ear: recording start failed: %v", err)
		return "", micError(err)
	}

	select {
	case <-time.After(duration):
	case <-ctx.Done():
		t.Stop()
		wg.Wait()
		return "", ctx.Err()
	}

	t.Stop()
	wg.Wait()

	return result, nil
}

// ── Transcription cleanup ────────────────────────────────────────

// cleanTranscription strips whitespace, normalizes newlines, and
// removes common whisper artifacts like "[BLANK_AUDIO]", "(silence)",
// etc. Artifacts are stripped from anywhere in the text, not just as
// exact full-string matches.
func cleanTranscription(s string) string {
	// Normalize newlines and collapse whitespace.
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.TrimSpace(s)

	// Junk patterns to strip from anywhere in the text.
	junkPatterns := []string{
		"[BLANK_AUDIO]",
		"[BLANK AUDIO]",
		"(silence)",
		"[silence]",
		"(no speech)",
		"[no speech]",
		"[Music]",
		"(music)",
		"(keyboard clicking)",
		"(keyboard clacking)",
		"(typing)",
		"(clicking)",
		"(mouse clicking)",
		"(breathing)",
		"(sighing)",
		"(coughing)",
		"(laughing)",
		"(clapping)",
		"(footsteps)",
		"(door closing)",
		"(door opening)",
		"(knocking)",
		"(phone ringing)",
		"(birds chirping)",
		"(dog barking)",
		"(baby crying)",
		"(water running)",
		"(wind blowing)",
		"(rain)",
		"(thunder)",
		"(static)",
		"(background noise)",
		"(inaudible)",
		"(unintelligible)",
		"(applause)",
		"(cheering)",
		"(buzzing)",
		"(beeping)",
	}
	for _, j := range junkPatterns {
		s = strings.ReplaceAll(s, j, "")
		s = strings.ReplaceAll(s, strings.ToLower(j), "")
		s = strings.ReplaceAll(s, strings.ToUpper(j), "")
	}

	// Collapse any whitespace created by removals.
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)

	// Catch-all: strip any remaining (parenthesized) or [bracketed]
	// environmental annotations that whisper may produce, e.g.
	// "(dog barking)", "[laughter]", "(speaking French)", etc.
	s = envAnnotation.ReplaceAllString(s, "")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	s = strings.TrimSpace(s)

	// If what remains is just a known hallucination, discard entirely.
	hallucinations := []string{
		"...",
		"you",
		"Thank you.",
		"Thanks for watching!",
		"Thank you for watching.",
		"Bye.",
		"Bye!",
		"The end.",
		"Sous-titres réalisés para la communauté d'Amara.org",
	}
	lower := strings.ToLower(s)
	for _, h := range hallucinations {
		if strings.ToLower(h) == lower {
			return ""
		}
	}

	// Strip whisper timestamp prefixes like "[00:00:00.000 --> 00:00:05.000]"
	if strings.HasPrefix(s, "[") {
		if idx := strings.Index(s, "]"); idx != -1 && idx < 40 {
			rest := strings.TrimSpace(s[idx+1:])
			if rest != "" {
				return rest
			}
		}
	}

	return s
}
