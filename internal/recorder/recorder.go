package recorder

import "github.com/neodize/rsi-grid-alert-bot/internal/model"

// ScanSnapshot summarizes one full pass over the instrument universe.
type ScanSnapshot struct {
	Scanned int
	Signals int
	Alerts  int
}

// Recorder persists scan history for later analysis.
type Recorder interface {
	RecordScan(snap *ScanSnapshot) error
	RecordSignal(sig *model.Signal) error
	RecordAlert(a *model.Alert) error
	Close() error
}
