// Package notifier sends desktop notifications about watched maze runs
package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/mazesearch/mazesearch/pkg/interfaces"
	"github.com/mazesearch/mazesearch/pkg/logger"
)

// SendFunc delivers one notification. beeep.Notify is the default.
type SendFunc func(title, message, icon string) error

// MazeNotifier reports watched runs through desktop notifications
type MazeNotifier struct {
	enabled bool
	sound   bool
	send    SendFunc
	logger  logger.Logger
}

var _ interfaces.Notifier = (*MazeNotifier)(nil)

// Config represents notification configuration
type Config struct {
	Enabled bool
	// Sound beeps on failures in addition to the notification
	Sound bool
}

// New creates a notifier backed by beeep
func New(config Config, log logger.Logger) *MazeNotifier {
	return NewWithSender(config, log, beeep.Notify)
}

// NewWithSender creates a notifier with a custom delivery function
func NewWithSender(config Config, log logger.Logger, send SendFunc) *MazeNotifier {
	return &MazeNotifier{
		enabled: config.Enabled,
		sound:   config.Sound,
		send:    send,
		logger:  log,
	}
}

// NotifySolved notifies that every algorithm found a path
func (n *MazeNotifier) NotifySolved(maze string, algorithms int, elapsed time.Duration) {
	if !n.enabled {
		return
	}
	n.sendNotification("✅ Maze Solved",
		fmt.Sprintf("%s: %d algorithms found a path in %s", maze, algorithms, formatDuration(elapsed)),
		false)
}

// NotifyUnreachable notifies that the goal cannot be reached
func (n *MazeNotifier) NotifyUnreachable(maze string, visited int) {
	if !n.enabled {
		return
	}
	n.sendNotification("🚧 Goal Unreachable",
		fmt.Sprintf("%s: no path after exploring %d cells", maze, visited),
		true)
}

// NotifyError notifies that the maze could not be searched
func (n *MazeNotifier) NotifyError(maze string, err error) {
	if !n.enabled {
		return
	}
	n.sendNotification("❌ Maze Error", fmt.Sprintf("%s: %v", maze, err), true)
}

func (n *MazeNotifier) sendNotification(title, message string, failure bool) {
	if err := n.send(title, message, ""); err != nil {
		// headless machines have no notification daemon; fall back to the log
		n.logger.Debug("Failed to send notification", logger.WithField("error", err))
		n.logger.Info(fmt.Sprintf("%s: %s", title, message))
	}

	if failure && n.sound {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			n.logger.Debug("Failed to play sound", logger.WithField("error", err))
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
