package window

import (
	"fmt"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/gopher-piano/internal/audio"
	"github.com/PixPMusic/gopher-piano/internal/config"
	"github.com/PixPMusic/gopher-piano/internal/startup"
)

const noPortLabel = "(none)"

// ============ SETTINGS TAB ============

func (mw *MainWindow) createSettingsTab() fyne.CanvasObject {
	header := widget.NewLabel("Settings")
	header.TextStyle = fyne.TextStyle{Bold: true}

	// Audio backend
	backendSelect := widget.NewSelect([]string{"Internal synth", "MIDI output"}, nil)
	if mw.cfg.AudioBackend == config.BackendMIDI {
		backendSelect.SetSelected("MIDI output")
	} else {
		backendSelect.SetSelected("Internal synth")
	}

	outPorts := append([]string{noPortLabel}, mw.midiManager.ListOutPorts()...)
	outPortSelect := widget.NewSelect(outPorts, nil)
	if mw.cfg.MIDIOutPort != "" {
		outPortSelect.SetSelected(mw.cfg.MIDIOutPort)
	} else {
		outPortSelect.SetSelected(noPortLabel)
	}

	channels := make([]string, 16)
	for i := range channels {
		channels[i] = strconv.Itoa(i + 1)
	}
	channelSelect := widget.NewSelect(channels, nil)
	channelSelect.SetSelected(strconv.Itoa(mw.cfg.MIDIOutChannel))

	// MIDI input (play the piano from a hardware keyboard)
	inPorts := append([]string{noPortLabel}, mw.midiManager.ListInPorts()...)
	inPortSelect := widget.NewSelect(inPorts, nil)
	if mw.cfg.MIDIInPort != "" {
		inPortSelect.SetSelected(mw.cfg.MIDIInPort)
	} else {
		inPortSelect.SetSelected(noPortLabel)
	}

	// Master volume, applied live when the synth backend is active
	volumeSlider := widget.NewSlider(0, 100)
	volumeSlider.Step = 1
	volumeSlider.Value = mw.cfg.MasterVolume * 100
	volumeLabel := widget.NewLabel(fmt.Sprintf("%d%%", int(volumeSlider.Value)))
	volumeSlider.OnChanged = func(v float64) {
		volumeLabel.SetText(fmt.Sprintf("%d%%", int(v)))
		mw.cfg.MasterVolume = v / 100
		if synth, ok := mw.engine.(*audio.Synth); ok {
			synth.SetVolume(mw.cfg.MasterVolume)
		}
	}

	startupCheck := widget.NewCheck("Open at startup", func(checked bool) {
		mw.cfg.OpenAtStartup = checked
		if checked {
			if err := startup.Enable(); err != nil {
				log.Printf("Failed to enable startup: %v", err)
			}
		} else {
			if err := startup.Disable(); err != nil {
				log.Printf("Failed to disable startup: %v", err)
			}
		}
	})
	startupCheck.Checked = mw.cfg.OpenAtStartup

	applyBtn := widget.NewButton("Save & Apply", func() {
		if backendSelect.Selected == "MIDI output" {
			mw.cfg.AudioBackend = config.BackendMIDI
		} else {
			mw.cfg.AudioBackend = config.BackendSynth
		}
		mw.cfg.MIDIOutPort = selectedPort(outPortSelect)
		mw.cfg.MIDIInPort = selectedPort(inPortSelect)
		if ch, err := strconv.Atoi(channelSelect.Selected); err == nil {
			mw.cfg.MIDIOutChannel = ch
		}

		if err := mw.cfg.Save(); err != nil {
			log.Printf("Failed to save config: %v", err)
			dialog.ShowError(err, mw.window)
			return
		}

		mw.rebuildAudio()
		mw.StartMIDIListener()
		if mw.onSave != nil {
			mw.onSave()
		}
		dialog.ShowInformation("Saved", "Settings saved and applied.", mw.window)
	})
	applyBtn.Importance = widget.HighImportance

	form := container.NewGridWithColumns(2,
		widget.NewLabel("Audio backend:"), backendSelect,
		widget.NewLabel("MIDI output port:"), outPortSelect,
		widget.NewLabel("MIDI channel:"), channelSelect,
		widget.NewLabel("MIDI input port:"), inPortSelect,
		widget.NewLabel("Master volume:"), container.NewBorder(nil, nil, nil, volumeLabel, volumeSlider),
	)

	return container.NewVBox(
		header,
		form,
		startupCheck,
		widget.NewSeparator(),
		applyBtn,
	)
}

func selectedPort(sel *widget.Select) string {
	if sel.Selected == noPortLabel {
		return ""
	}
	return sel.Selected
}
