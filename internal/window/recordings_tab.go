package window

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/PixPMusic/gopher-piano/internal/recorder"
)

// ============ RECORDINGS TAB ============

func (mw *MainWindow) createRecordingsTab() fyne.CanvasObject {
	header := widget.NewLabel("Recordings")
	header.TextStyle = fyne.TextStyle{Bold: true}

	mw.selectedRec = -1

	mw.recList = widget.NewList(
		func() int {
			return len(mw.cfg.Recordings)
		},
		func() fyne.CanvasObject {
			name := widget.NewLabel("Name")
			info := widget.NewLabel("info")
			return container.NewBorder(nil, nil, name, info)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(mw.cfg.Recordings) {
				return
			}
			rec := mw.cfg.Recordings[id]
			row := obj.(*fyne.Container)
			name := row.Objects[0].(*widget.Label)
			info := row.Objects[1].(*widget.Label)
			name.SetText(rec.Name)
			info.SetText(fmt.Sprintf("%d notes · %s", len(rec.Events), rec.CreatedAt.Format("Jan 2 15:04")))
		},
	)
	mw.recList.OnSelected = func(id widget.ListItemID) {
		mw.selectedRec = id
	}
	mw.recList.OnUnselected = func(widget.ListItemID) {
		mw.selectedRec = -1
	}

	mw.recordBtn = widget.NewButton("Record", mw.toggleRecording)
	mw.playBtn = widget.NewButton("Play", mw.playSelected)
	stopBtn := widget.NewButton("Stop", func() {
		mw.stopPlayback()
	})
	deleteBtn := widget.NewButton("Delete", mw.deleteSelected)

	toolbar := container.NewHBox(mw.recordBtn, mw.playBtn, stopBtn, deleteBtn)

	return container.NewBorder(
		container.NewVBox(header, toolbar),
		nil, nil, nil,
		mw.recList,
	)
}

// toggleRecording arms the recorder, or disarms it and prompts for a
// name. Only notes that actually sounded are captured, so recording with
// the power off produces an empty take.
func (mw *MainWindow) toggleRecording() {
	if !mw.rec.Recording() {
		mw.rec.Start()
		mw.recordBtn.SetText("Stop Recording")
		mw.recordBtn.Importance = widget.DangerImportance
		mw.recordBtn.Refresh()
		return
	}

	rec := mw.rec.Stop(fmt.Sprintf("Take %d", len(mw.cfg.Recordings)+1))
	mw.recordBtn.SetText("Record")
	mw.recordBtn.Importance = widget.MediumImportance
	mw.recordBtn.Refresh()

	if len(rec.Events) == 0 {
		dialog.ShowInformation("Nothing Recorded", "No notes sounded while recording. Is the power on?", mw.window)
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("Recording Name")
	entry.SetText(rec.Name)

	dialog.ShowCustomConfirm("Save Recording", "Save", "Discard",
		container.NewVBox(widget.NewLabel("Enter a name for the recording:"), entry),
		func(confirm bool) {
			if !confirm {
				return
			}
			if entry.Text != "" {
				rec.Name = entry.Text
			}
			mw.cfg.AddRecording(rec)
			if err := mw.cfg.Save(); err != nil {
				log.Printf("Failed to save config: %v", err)
				dialog.ShowError(err, mw.window)
			}
			mw.recList.Refresh()
			if mw.onSave != nil {
				mw.onSave()
			}
		}, mw.window)
}

func (mw *MainWindow) playSelected() {
	if mw.selectedRec < 0 || mw.selectedRec >= len(mw.cfg.Recordings) {
		return
	}
	mw.stopPlayback()

	rec := mw.cfg.Recordings[mw.selectedRec]
	mw.playBtn.Disable()
	mw.playback = recorder.Play(rec, mw.engine, func() {
		fyne.Do(func() {
			mw.playback = nil
			mw.playBtn.Enable()
		})
	})
}

func (mw *MainWindow) stopPlayback() {
	if mw.playback != nil {
		mw.playback.Stop()
		mw.playback = nil
	}
}

func (mw *MainWindow) deleteSelected() {
	if mw.selectedRec < 0 || mw.selectedRec >= len(mw.cfg.Recordings) {
		return
	}
	rec := mw.cfg.Recordings[mw.selectedRec]

	dialog.ShowConfirm("Delete Recording", "Are you sure you want to delete '"+rec.Name+"'?",
		func(confirm bool) {
			if !confirm {
				return
			}
			mw.cfg.RemoveRecording(rec.ID)
			if err := mw.cfg.Save(); err != nil {
				log.Printf("Failed to save config: %v", err)
			}
			mw.selectedRec = -1
			mw.recList.UnselectAll()
			mw.recList.Refresh()
		}, mw.window)
}
