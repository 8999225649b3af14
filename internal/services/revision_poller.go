package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RevisionSource reads the repository's revision marker
type RevisionSource interface {
	GetRevisionMarker() (int64, error)
}

// RevisionPoller keeps concurrent editors consistent without a push
// channel on the store: every tick it reads the revision marker and, when
// the marker moved, broadcasts a refresh signal through the SSE hub. Poll
// errors are swallowed and retried on the next tick; the poller never
// blocks or fails a mutation.
type RevisionPoller struct {
	source   RevisionSource
	hub      *SSEHub
	interval time.Duration
	stopChan chan bool

	lastSeen int64
	primed   bool
}

func NewRevisionPoller(source RevisionSource, hub *SSEHub) *RevisionPoller {
	return &RevisionPoller{
		source:   source,
		hub:      hub,
		interval: 5 * time.Second,
		stopChan: make(chan bool),
	}
}

// Start starts the revision poller
func (p *RevisionPoller) Start() {
	go p.run()
	logrus.Info("Revision poller started")
}

// Stop stops the revision poller and releases its timer
func (p *RevisionPoller) Stop() {
	p.stopChan <- true
	logrus.Info("Revision poller stopped")
}

// SetInterval sets the poll interval
func (p *RevisionPoller) SetInterval(interval time.Duration) {
	p.interval = interval
}

func (p *RevisionPoller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Prime the marker immediately so the first interval already detects change
	p.tick()

	for {
		select {
		case <-ticker.C:
			p.tick()
		case <-p.stopChan:
			return
		}
	}
}

// tick compares the server marker against the last-seen one. The first
// successful read only records the marker; later reads broadcast when the
// marker is strictly greater.
func (p *RevisionPoller) tick() {
	version, err := p.source.GetRevisionMarker()
	if err != nil {
		logrus.Warnf("Revision poll failed, retrying next tick: %v", err)
		return
	}

	if !p.primed {
		p.lastSeen = version
		p.primed = true
		return
	}

	if version > p.lastSeen {
		logrus.Debugf("Revision moved %d -> %d, broadcasting refresh", p.lastSeen, version)
		p.lastSeen = version
		p.hub.BroadcastRefresh(version)
	}
}
