package speech

import (
	"context"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// Compile-time interface check.
var _ domain.SpeechProvider = (*Voice)(nil)

// Voice combines a Mouth (TTS output) and an Ear (push-to-talk STT input)
// into a full speech provider. Both halves are optional: without an ear,
// Listen reports the microphone as unavailable; without a mouth, Speak is
// a silent no-op.
type Voice struct {
	mouth *Mouth
	ear   *Ear
	log   *logger.Logger
}

// NewVoice creates a speech provider from a mouth and an optional ear.
func NewVoice(mouth *Mouth, ear *Ear, log *logger.Logger) *Voice {
	return &Voice{mouth: mouth, ear: ear, log: log}
}

// Listen captures one spoken utterance and returns the transcription.
func (v *Voice) Listen(ctx context.Context) (string, error) {
	if v.ear == nil {
		return "", ErrMicUnavailable
	}
	return v.ear.Listen(ctx)
}

// Speak queues the text for spoken output in the given language.
// Non-blocking; playback order follows queue priority.
func (v *Voice) Speak(ctx context.Context, text, language string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.mouth == nil {
		return nil
	}
	v.mouth.Say(text, language, PriorityNormal)
	return nil
}
