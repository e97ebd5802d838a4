package main

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"

	"audibleseries/internal/workflow"
)

const progressUpdateFrequency = 100 * time.Millisecond

// lookupProgress draws a single tracker while catalog lookups run.
type lookupProgress struct {
	writer  progress.Writer
	tracker *progress.Tracker
}

func startLookupProgress(w io.Writer, total int) *lookupProgress {
	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(progressUpdateFrequency)
	pw.SetStyle(progress.StyleDefault)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Time = false

	tracker := &progress.Tracker{Message: "Checking series", Total: int64(total), Units: progress.UnitsDefault}
	pw.AppendTracker(tracker)
	go pw.Render()

	return &lookupProgress{writer: pw, tracker: tracker}
}

func (p *lookupProgress) callback() workflow.Progress {
	return func(done, total int, seriesTitle string) {
		p.tracker.SetValue(int64(done))
		p.tracker.UpdateMessage(seriesTitle)
	}
}

func (p *lookupProgress) stop() {
	p.tracker.MarkAsDone()
	p.writer.Stop()
	for p.writer.IsRenderInProgress() {
		time.Sleep(10 * time.Millisecond)
	}
}
