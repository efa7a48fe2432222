// ChefSense — a conversational recipe assistant.
//
// Usage:
//
//	chefsense [-verbose] [-quiet]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/khalilmezni/chefsense/internal/assistant"
	"github.com/khalilmezni/chefsense/internal/conversation"
	"github.com/khalilmezni/chefsense/internal/display"
	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/favorites"
	"github.com/khalilmezni/chefsense/internal/logger"
	"github.com/khalilmezni/chefsense/internal/recipe"
	"github.com/khalilmezni/chefsense/internal/speech"
	"github.com/khalilmezni/chefsense/internal/storage"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".chefsense-logs/chefsense.log", "file to write logs to (use \"stderr\" to log to console)")
	recipesFile := flag.String("recipes", "", "path to a recipes JSON file (default: built-in catalogue)")
	favoritesFile := flag.String("favorites", ".chefsense-favorites.json", "path to the favorites JSON file")
	delayMs := flag.Int("delay", 450, "simulated thinking delay in milliseconds (0 to disable)")
	noSpeech := flag.Bool("no-speech", false, "disable text-to-speech even if Azure keys are set")
	diskCache := flag.Bool("disk-cache", true, "persist TTS audio cache to disk (reads from disk even when false)")
	cacheDir := flag.String("cache-dir", ".chefsense-cache", "directory for persistent TTS audio cache")
	voice := flag.Bool("voice", false, "enable push-to-talk voice input via local Whisper STT")
	whisperBin := flag.String("whisper-bin", "whisper-cli", "path to the whisper-cpp CLI binary")
	whisperModel := flag.String("whisper-model", "bin/ggml-small.bin", "path to the Whisper GGML model file")
	recordSecs := flag.Int("record-secs", 5, "seconds per voice recording")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs like
	// the whisper transcriber) to the same output so it doesn't spam
	// the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the recipe catalogue. An empty or unreadable catalogue is
	// fatal: the assistant refuses to start without data.
	var source domain.RecipeSource
	var err error
	if *recipesFile != "" {
		source, err = recipe.NewStoreFromFile(*recipesFile, log)
	} else {
		source, err = recipe.NewStore(log)
	}
	if err != nil {
		log.Error("loading recipes: %v", err)
		fmt.Fprintln(os.Stderr, "Unable to load recipes. Please refresh and try again.")
		os.Exit(1)
	}

	// Wire dependencies.
	favs := favorites.NewFileStore(*favoritesFile, log)
	classifier := conversation.NewRuleClassifier(log)
	store := storage.NewMemoryStore(log)
	ui := display.NewUI(store)
	textNotifier := conversation.NewCLINotifier(log, ui.Printf)

	chef, err := assistant.New(source, favs, classifier, store, log,
		assistant.WithDelay(time.Duration(*delayMs)*time.Millisecond),
	)
	if err != nil {
		log.Error("starting assistant: %v", err)
		if errors.Is(err, domain.ErrNoRecipes) {
			fmt.Fprintln(os.Stderr, "Unable to load recipes. Please refresh and try again.")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}

	// Build the active notifier. If TTS is available, wrap the text notifier
	// with a SpeakingNotifier that also speaks through the Mouth.
	var activeNotifier domain.Notifier = textNotifier
	var speakingNotifier *speech.SpeakingNotifier
	var mouth *speech.Mouth

	azureKey := os.Getenv(speech.EnvAzureSpeechKey)
	azureRegion := os.Getenv(speech.EnvAzureSpeechRegion)

	if azureKey != "" && azureRegion != "" && !*noSpeech {
		ttsClient := speech.NewAzureClient(azureKey, azureRegion, log)

		player, err := speech.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, speech disabled: %v", err)
		} else {
			mouth = speech.NewMouth(ttsClient, player, log,
				speech.WithCacheDir(*cacheDir),
				speech.WithDiskWrite(*diskCache),
			)
			mouth.Start(ctx)
			mouth.Prefetch(ctx, "en", speech.ListeningFillers()...)
			speakingNotifier = speech.NewSpeakingNotifier(textNotifier, mouth, log)
			activeNotifier = speakingNotifier
			log.Info("TTS enabled (voice=%s, region=%s)", speech.DefaultVoice, azureRegion)
		}
	} else if !*noSpeech {
		log.Info("TTS disabled: set %s and %s env vars to enable", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion)
	}

	// Build voice input (STT) if enabled.
	var ear *speech.Ear
	if *voice {
		if _, err := os.Stat(*whisperModel); err != nil {
			fmt.Fprintf(os.Stderr, "error: whisper model not found at %s\n", *whisperModel)
			os.Exit(1)
		}
		os.MkdirAll(".chefsense-stt", 0o755)
		ear = speech.NewEar(*whisperBin, *whisperModel, mouth, log,
			speech.WithRecordDuration(time.Duration(*recordSecs)*time.Second),
		)
		log.Info("voice input enabled (bin=%s, model=%s, clip=%ds)", *whisperBin, *whisperModel, *recordSecs)
	}

	// The assistant's speech surface: a real voice when TTS is up,
	// otherwise a no-op that keeps the wiring uniform.
	var provider domain.SpeechProvider = speech.NewNoOp(log)
	if mouth != nil || ear != nil {
		provider = speech.NewVoice(mouth, ear, log)
	}

	app := &cliApp{
		chef:     chef,
		notifier: activeNotifier,
		speaking: speakingNotifier,
		provider: provider,
		mouth:    mouth,
		ear:      ear,
		log:      log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())

	if ear != nil {
		fmt.Println(display.BannerStyle.Render("  Voice mode ON — type /voice to speak, or just type your question."))
		fmt.Println(display.BannerStyle.Render("  Type 'quit' to exit."))
	} else {
		fmt.Println(display.BannerStyle.Render("  Ask about any dish, or tell me what's in your fridge. Type 'quit' to exit."))
	}
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()

	if mouth != nil {
		hits, misses := mouth.Cache().Stats()
		log.Info("TTS cache: %d hits, %d misses", hits, misses)
	}
	log.Info("%s", speech.LineShutdown())
}

type cliApp struct {
	chef     *assistant.Assistant
	notifier domain.Notifier
	speaking *speech.SpeakingNotifier // nil when TTS is disabled
	provider domain.SpeechProvider
	mouth    *speech.Mouth // nil when TTS is disabled
	ear      *speech.Ear   // nil when voice input is disabled
	log      *logger.Logger
	ui       *display.UI
	lastLang string // language of the most recent reply, for repeats
}

func (a *cliApp) run(ctx context.Context) {
	welcome := fmt.Sprintf("👨‍🍳 Welcome to ChefSense! I know %d recipes from around the world.", a.chef.RecipeCount())
	if err := a.notifier.Notify(ctx, welcome); err != nil {
		a.log.Error("welcome: %v", err)
	}
	a.ui.PrintHint("Try: \"show me chicken recipes\", \"how do I make pad thai?\", or \"i have eggs, rice and onions\".")
	a.ui.Println("")

	// Voice results arrive on their own channel so a capture in flight
	// never blocks typed input.
	voiceCh := make(chan string, 1)

	uiCh := a.ui.InputChan()

	for {
		var input string
		var ok bool
		var spoken bool

		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		case input = <-voiceCh:
			spoken = true
			a.ui.PrintVoice(input)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// Fresh input trumps whatever is still being read aloud.
		if a.mouth != nil && (a.mouth.IsSpeaking() || a.mouth.QueueLen() > 0) {
			a.mouth.Interrupt()
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			a.quit(ctx)
			return
		case "/voice", "listen":
			a.startVoiceCapture(ctx, voiceCh)
			continue
		case "repeat", "say that again":
			a.repeatLast(ctx)
			continue
		case "/verbose":
			a.log.SetLevel(logger.LevelVerbose)
			a.ui.PrintHint("Verbose logging on.")
			continue
		}

		a.exchange(ctx, input, spoken)
	}
}

// exchange runs one message through the assistant and renders the reply.
func (a *cliApp) exchange(ctx context.Context, input string, spoken bool) {
	reply, err := a.chef.Handle(ctx, input)
	if err != nil {
		a.log.Error("handling %q: %v", input, err)
		a.ui.PrintUrgent("Something went wrong. Please try again.")
		return
	}

	a.ui.PrintReply(reply.Text, reply.RTL)
	a.ui.Println("")

	a.lastLang = string(reply.Language)
	if a.speaking != nil {
		a.speaking.SetLanguage(string(reply.Language))
	}
	// Speak full replies only for voice exchanges; typed exchanges get a
	// silent render so long answers don't drone on.
	if spoken {
		if err := a.provider.Speak(ctx, reply.Text, string(reply.Language)); err != nil {
			a.log.Debug("speaking reply: %v", err)
		}
	}
}

// repeatLast reads the previous reply out loud again.
func (a *cliApp) repeatLast(ctx context.Context) {
	if a.mouth == nil {
		a.ui.PrintHint("Speech is off, nothing to repeat out loud.")
		return
	}
	last := a.mouth.LastSpoken()
	if last == "" {
		line := speech.LineNothingToRepeat()
		a.ui.PrintChat(line)
		a.mouth.Say(line, "en", speech.PriorityHigh)
		return
	}
	lang := a.lastLang
	if lang == "" {
		lang = "en"
	}
	a.mouth.Say(last, lang, speech.PriorityHigh)
}

// startVoiceCapture kicks off one push-to-talk capture. The transcription
// lands on voiceCh; failures surface as guidance messages.
func (a *cliApp) startVoiceCapture(ctx context.Context, voiceCh chan<- string) {
	if a.ear == nil {
		a.ui.PrintHint("Voice input is off. Restart with -voice to enable it.")
		return
	}

	if a.mouth != nil {
		filler := speech.LineListening()
		a.ui.PrintHint(filler)
		a.mouth.Say(filler, "en", speech.PriorityCritical)
	} else {
		a.ui.PrintHint("Listening...")
	}

	go func() {
		text, err := a.provider.Listen(ctx)
		if err != nil {
			guidance := speech.Guidance(err)
			a.log.Debug("voice capture: %v", err)
			if nerr := a.notifier.NotifyUrgent(ctx, guidance); nerr != nil {
				a.log.Error("voice guidance: %v", nerr)
			}
			return
		}
		select {
		case voiceCh <- text:
		case <-ctx.Done():
		}
	}()
}

func (a *cliApp) quit(ctx context.Context) {
	bye := speech.LineBye()
	a.ui.PrintChat(bye)
	if a.mouth != nil {
		a.mouth.Say(bye, "en", speech.PriorityNormal)
		// Brief pause so TTS can start the goodbye line.
		time.Sleep(300 * time.Millisecond)
	}
	a.ui.Quit()
}
