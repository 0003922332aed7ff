package dispatch

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

// Dispatcher delivers a console command to the running game server.
type Dispatcher interface {
	Send(ctx context.Context, command string) error
}

const sendTimeout = 5 * time.Second

// ScreenDispatcher injects commands into the game server's console via
// a detached GNU screen session, the same way an operator would type
// them.
type ScreenDispatcher struct {
	// SessionName is the screen session the game server runs in.
	SessionName string
}

func NewScreenDispatcher(sessionName string) *ScreenDispatcher {
	return &ScreenDispatcher{SessionName: sessionName}
}

// Send stuffs the command plus a carriage return into window 0 of the
// screen session. The carriage return is what makes the console
// execute the line.
func (d *ScreenDispatcher) Send(ctx context.Context, command string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "screen",
		"-S", d.SessionName,
		"-p", "0",
		"-X", "stuff", command+"\r",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("screen stuff to session %q: %w (output: %s)", d.SessionName, err, out)
	}
	log.Debug().
		Str("session", d.SessionName).
		Str("command", command).
		Msg("command dispatched")
	return nil
}
