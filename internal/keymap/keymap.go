// Package keymap maps single key presses to stopwatch actions.
package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a user command bound to a key.
type Action int

const (
	Toggle Action = iota + 1
	Reset
	Lap
	Quit
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidKey    = errors.New("invalid key")
)

const ctrlC = 0x03

var actionNames = map[Action]string{
	Toggle: "toggle",
	Reset:  "reset",
	Lap:    "lap",
	Quit:   "quit",
}

// namedKeys are the spellings accepted in addition to single characters.
var namedKeys = map[string]byte{
	"space":  ' ',
	"enter":  '\r',
	"ctrl-c": ctrlC,
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction resolves an action name such as "lap".
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, n := range actionNames {
		if n == name {
			return action, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// ParseKey resolves a key spelling: a single ASCII character or one of
// the names "space", "enter" and "ctrl-c".
func ParseKey(s string) (byte, error) {
	if b, ok := namedKeys[strings.ToLower(s)]; ok {
		return b, nil
	}
	if len(s) != 1 || s[0] < 0x20 || s[0] > 0x7e {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return s[0], nil
}

// Keymap is a lookup table from key byte to action.
type Keymap struct {
	bindings map[byte]Action
}

// Default binds space to toggle, r to reset, l to lap and q or Ctrl-C to
// quit. Letters are bound in both cases.
func Default() *Keymap {
	return &Keymap{bindings: map[byte]Action{
		' ':   Toggle,
		'r':   Reset,
		'R':   Reset,
		'l':   Lap,
		'L':   Lap,
		'q':   Quit,
		'Q':   Quit,
		ctrlC: Quit,
	}}
}

// FromConfig builds a keymap from action name -> key spellings. Actions
// not present keep their default keys, and their keys cannot be taken by
// another action. Ctrl-C always quits.
func FromConfig(keys map[string][]string) (*Keymap, error) {
	km := Default()
	if len(keys) == 0 {
		return km, nil
	}

	var errs []error
	overrides := make(map[byte]Action)
	replaced := make(map[Action]bool)
	for name, spellings := range keys {
		action, err := ParseAction(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		replaced[action] = true
		for _, s := range spellings {
			key, err := ParseKey(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", action, err))
				continue
			}
			if prev, ok := overrides[key]; ok && prev != action {
				errs = append(errs, fmt.Errorf("%w: %q bound to both %s and %s", ErrInvalidKey, s, prev, action))
				continue
			}
			overrides[key] = action
		}
	}
	for key, action := range overrides {
		prev, ok := km.bindings[key]
		if !ok || prev == action {
			continue
		}
		// A default binding is only free once its action is rebound, and
		// Ctrl-C never is.
		if !replaced[prev] || key == ctrlC {
			errs = append(errs, fmt.Errorf("%w: %q already bound to %s, cannot bind to %s", ErrInvalidKey, key, prev, action))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	for key, action := range km.bindings {
		if replaced[action] && key != ctrlC {
			delete(km.bindings, key)
		}
	}
	for key, action := range overrides {
		km.bindings[key] = action
	}
	km.bindings[ctrlC] = Quit
	return km, nil
}

// Lookup returns the action bound to key.
func (k *Keymap) Lookup(key byte) (Action, bool) {
	action, ok := k.bindings[key]
	return action, ok
}

// Dispatcher calls the handler registered for each action.
type Dispatcher struct {
	keys     *Keymap
	handlers map[Action]func()
}

func NewDispatcher(keys *Keymap, handlers map[Action]func()) *Dispatcher {
	return &Dispatcher{keys: keys, handlers: handlers}
}

// Dispatch runs the handler for key's action and returns that action.
// Unbound keys and actions without a handler report false.
func (d *Dispatcher) Dispatch(key byte) (Action, bool) {
	action, ok := d.keys.Lookup(key)
	if !ok {
		return 0, false
	}
	handler, ok := d.handlers[action]
	if !ok {
		return action, false
	}
	handler()
	return action, true
}
