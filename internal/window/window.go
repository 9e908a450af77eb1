package window

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/gopher-piano/internal/audio"
	"github.com/PixPMusic/gopher-piano/internal/config"
	"github.com/PixPMusic/gopher-piano/internal/keyboard"
	"github.com/PixPMusic/gopher-piano/internal/midi"
	"github.com/PixPMusic/gopher-piano/internal/note"
	"github.com/PixPMusic/gopher-piano/internal/recorder"
	"github.com/PixPMusic/gopher-piano/internal/scene"
	"github.com/PixPMusic/gopher-piano/internal/tween"
)

// MainWindow manages the main application window
type MainWindow struct {
	window      fyne.Window
	app         fyne.App
	cfg         *config.Config
	midiManager *midi.Manager
	onSave      func()

	sceneRoot *scene.Node
	tweens    *tween.Engine
	engine    audio.Engine
	rec       *recorder.Recorder
	kb        *keyboard.Manager
	view      *pianoView

	renderLoop *fyne.Animation
	midiStop   func()

	// Recordings tab state
	recList     *widget.List
	recordBtn   *widget.Button
	playBtn     *widget.Button
	selectedRec int
	playback    *recorder.Playback
}

// NewMainWindow creates the main application window and all the piano
// machinery behind it: scene graph, tween engine, audio backend, keyboard
// manager.
func NewMainWindow(app fyne.App, cfg *config.Config, midiManager *midi.Manager, onSave func()) *MainWindow {
	win := app.NewWindow("GopherPiano")

	mw := &MainWindow{
		window:      win,
		app:         app,
		cfg:         cfg,
		midiManager: midiManager,
		onSave:      onSave,
	}

	mw.sceneRoot = scene.BuildKeyboard()
	mw.tweens = tween.NewEngine()
	mw.engine = mw.buildEngine()
	mw.rec = recorder.New(mw.engine)
	mw.kb = keyboard.New(mw.tweens, mw.rec)
	mw.kb.Initialize(mw.sceneRoot)
	mw.view = newPianoView(mw.sceneRoot, mw.kb)

	mw.setupUI()

	win.Resize(fyne.NewSize(980, 460))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	mw.startRenderLoop()

	return mw
}

func (mw *MainWindow) setupUI() {
	pianoTab := container.NewTabItem("Piano", container.NewPadded(mw.view))
	recordingsTab := container.NewTabItem("Recordings", mw.createRecordingsTab())
	settingsTab := container.NewTabItem("Settings", mw.createSettingsTab())

	tabs := container.NewAppTabs(pianoTab, recordingsTab, settingsTab)
	tabs.SetTabLocation(container.TabLocationTop)

	mw.window.SetContent(tabs)
}

// startRenderLoop drives the tween engine once per frame. Animation
// completion callbacks (the power button's debounce clear among them) fire
// from inside Step, on the event loop.
func (mw *MainWindow) startRenderLoop() {
	mw.renderLoop = &fyne.Animation{
		Duration:    time.Hour,
		Curve:       fyne.AnimationLinear,
		RepeatCount: fyne.AnimationRepeatForever,
		Tick: func(float32) {
			if mw.tweens.Idle() {
				return
			}
			mw.tweens.Step(time.Now())
			mw.view.Refresh()
		},
	}
	mw.renderLoop.Start()
}

// buildEngine opens the configured audio backend, falling back to silence
// when it cannot be opened. The piano keeps animating either way.
func (mw *MainWindow) buildEngine() audio.Engine {
	switch mw.cfg.AudioBackend {
	case config.BackendMIDI:
		send, err := mw.midiManager.NewSender(mw.cfg.MIDIOutPort)
		if err != nil {
			log.Printf("Failed to open MIDI output: %v", err)
			return audio.Nop{}
		}
		return audio.NewMIDIOut(send, uint8(mw.cfg.MIDIOutChannel-1))
	default:
		synth, err := audio.NewSynth(mw.cfg.MasterVolume)
		if err != nil {
			log.Printf("Failed to open audio device: %v", err)
			return audio.Nop{}
		}
		return synth
	}
}

// rebuildAudio swaps the audio backend after a settings change.
func (mw *MainWindow) rebuildAudio() {
	if err := mw.engine.Close(); err != nil {
		log.Printf("Failed to close audio engine: %v", err)
	}
	mw.engine = mw.buildEngine()
	mw.rec.SetOutput(mw.engine)
}

// StartMIDIListener begins feeding notes from the configured MIDI input
// port into the keyboard. Incoming events are marshalled onto the event
// loop; note-offs release individual keys rather than the whole gesture.
func (mw *MainWindow) StartMIDIListener() {
	mw.StopMIDIListener()

	if mw.cfg.MIDIInPort == "" {
		return
	}

	stop, err := mw.midiManager.StartListening(mw.cfg.MIDIInPort, func(key uint8, isNoteOn bool) {
		fyne.Do(func() {
			n, ok := note.FromMIDI(key)
			if !ok {
				return
			}
			if isNoteOn {
				mw.kb.HandleIntersectedObject(mw.kb.KeyNode(n))
			} else {
				mw.kb.ReleaseKey(n)
			}
			mw.view.Refresh()
		})
	})

	if err != nil {
		log.Printf("Failed to start listener for %s: %v", mw.cfg.MIDIInPort, err)
		return
	}

	if stop != nil {
		mw.midiStop = stop
		log.Printf("Started listening on %s", mw.cfg.MIDIInPort)
	}
}

// StopMIDIListener stops the MIDI input listener
func (mw *MainWindow) StopMIDIListener() {
	if mw.midiStop != nil {
		mw.midiStop()
		mw.midiStop = nil
	}
}

// Close stops background work and releases the audio backend.
func (mw *MainWindow) Close() {
	if mw.renderLoop != nil {
		mw.renderLoop.Stop()
	}
	mw.StopMIDIListener()
	mw.stopPlayback()
	if err := mw.engine.Close(); err != nil {
		log.Printf("Failed to close audio engine: %v", err)
	}
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}

func (mw *MainWindow) Hide() {
	mw.window.Hide()
}

func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}
