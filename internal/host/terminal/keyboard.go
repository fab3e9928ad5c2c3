// Package terminal is a minimal host for the capture pipeline: it turns raw
// terminal keystrokes into keyboard input events, one drainable queue per
// tick. It exists so recordings can be made without a windowing system.
package terminal

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/penwyp/go-input-replay/internal/core/event"
)

// Window is the window identifier attached to every event this host emits.
const Window event.WindowID = "terminal"

// KeyboardReader reads keyboard input in raw mode and queues it for the tick
// loop. A terminal reports key presses only, so each keystroke is queued as
// a press/release pair.
type KeyboardReader struct {
	oldState *unix.Termios
	input    chan event.KeyboardInput
	quit     chan struct{}
	stop     chan struct{}
}

// NewKeyboardReader puts the terminal into raw mode and starts reading.
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		input: make(chan event.KeyboardInput, 64),
		quit:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
	}

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()

	return kr, nil
}

// Drain empties the pending-keystroke queue, returning the tick's keyboard
// events in arrival order. quit reports whether ESC or Ctrl+C was seen.
func (kr *KeyboardReader) Drain() (events []event.KeyboardInput, quit bool) {
	for {
		select {
		case e := <-kr.input:
			events = append(events, e)
		case <-kr.quit:
			quit = true
		default:
			return events, quit
		}
	}
}

// Close stops the reader and restores the terminal. The read goroutine is
// unblocked through a read deadline; on a stdin that does not support
// deadlines it exits on the next keystroke instead.
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	os.Stdin.SetReadDeadline(time.Now())
	err := kr.disableRawMode()
	os.Stdin.SetReadDeadline(time.Time{})
	return err
}

func (kr *KeyboardReader) enableRawMode() error {
	fd := int(os.Stdin.Fd())

	oldState, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	kr.oldState = oldState

	newState := *oldState
	newState.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	newState.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	newState.Cflag |= unix.CS8
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlWriteTermios, &newState)
}

func (kr *KeyboardReader) disableRawMode() error {
	if kr.oldState == nil {
		return nil
	}
	fd := int(os.Stdin.Fd())
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, kr.oldState)
}

func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 8)

	for {
		select {
		case <-kr.stop:
			return
		default:
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				continue
			}
			kr.handleInput(buf[:n])
		}
	}
}

func (kr *KeyboardReader) handleInput(buf []byte) {
	// ESC and Ctrl+C end the session rather than being recorded.
	if buf[0] == 27 && len(buf) == 1 || buf[0] == 3 {
		select {
		case kr.quit <- struct{}{}:
		default:
		}
		return
	}

	key := keyName(buf)
	if key == "" {
		return
	}

	for _, state := range []event.ButtonState{event.Pressed, event.Released} {
		e := event.KeyboardInput{
			Key:    key,
			Code:   key,
			State:  state,
			Window: Window,
		}
		select {
		case kr.input <- e:
		case <-kr.stop:
			return
		}
	}
}

func keyName(buf []byte) string {
	switch buf[0] {
	case '\r', '\n':
		return "Enter"
	case '\t':
		return "Tab"
	case 127, 8:
		return "Backspace"
	case ' ':
		return "Space"
	}
	if buf[0] == 27 && len(buf) >= 3 && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return "ArrowUp"
		case 'B':
			return "ArrowDown"
		case 'C':
			return "ArrowRight"
		case 'D':
			return "ArrowLeft"
		}
		return ""
	}
	if buf[0] < 32 {
		return ""
	}
	return string(buf)
}
