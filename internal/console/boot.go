package console

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"arcos/internal/vga"
)

// DefaultWelcome is the banner shown at boot.
const DefaultWelcome = "Welcome to ArcOS :-)"

// Session identifies one boot of the console in the logs.
type Session struct {
	ID      string
	Started time.Time
	Width   int
	Height  int
}

// Boot runs the entry sequence once: blank the display and stamp the welcome
// banner. After it returns the driver is ready for further writes.
func Boot(drv *vga.Driver, welcome string) (*Session, error) {
	drv.Initialize()
	if err := drv.ShowBanner(welcome); err != nil {
		return nil, fmt.Errorf("failed to show banner: %w", err)
	}

	s := &Session{
		ID:      uuid.New().String(),
		Started: time.Now(),
		Width:   drv.Width(),
		Height:  drv.Height(),
	}
	log.Printf("Console %s booted on %dx%d surface", s.ID, s.Width, s.Height)
	return s, nil
}
