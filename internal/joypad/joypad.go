// Package joypad implements the Game Boy's button matrix: eight buttons
// multiplexed onto four readable bits through two selectable columns.
package joypad

// JOYPAD_ADDR is the memory-mapped joypad register (P1).
const JOYPAD_ADDR = 0xFF00

// Register bit layout. The low nibble is active-low and means two
// different things depending on which column is selected; the two select
// bits are themselves active-low (0 = that column is being read).
const (
	bitRightOrA    = 0x01
	bitLeftOrB     = 0x02
	bitUpOrSelect  = 0x04
	bitDownOrStart = 0x08
	bitSelectDir   = 0x10 // P14
	bitSelectAct   = 0x20 // P15
	unusedBits     = 0xC0 // bits 7-6 always read 1
)

// column names one of the two 4-button groups sharing the low nibble.
type column struct {
	selected *bool              // P14 or P15, false = this column is driving the nibble
	buttons  [4]*bool           // Right/Left/Up/Down or A/B/Select/Start, bit 0..3
}

// Joypad models the 2x4 button matrix behind the P1 register. Button state
// is exposed as plain fields rather than a bitmask because the driver
// contract (§6) reports edges per named button, not per register bit.
type Joypad struct {
	Up, Down, Left, Right bool
	A, B, Select, Start   bool

	P14 bool // direction column select line (false = selected)
	P15 bool // action column select line (false = selected)

	joypadInterrupt bool
}

// NewJoypad returns a joypad in its power-on state: every button released,
// both select lines idle high.
func NewJoypad() *Joypad {
	return &Joypad{P14: true, P15: true}
}

// Reset restores power-on state.
func (j *Joypad) Reset() {
	*j = Joypad{P14: true, P15: true}
}

func (j *Joypad) HasJoypadInterrupt() bool { return j.joypadInterrupt }
func (j *Joypad) ClearJoypadInterrupt()    { j.joypadInterrupt = false }

// SetButtonState records an edge on a named button (see GetButtonState for
// the valid names) and raises the joypad interrupt on any release-to-press
// transition, regardless of which column is currently selected — real
// hardware wires the interrupt off the raw button matrix, not the mux
// output.
func (j *Joypad) SetButtonState(button string, pressed bool) {
	slot := j.slotFor(button)
	if slot == nil {
		return
	}
	if pressed && !*slot {
		j.joypadInterrupt = true
	}
	*slot = pressed
}

// GetButtonState reports whether the named button is currently held.
// Recognized names: up, down, left, right, a, b, select, start.
func (j *Joypad) GetButtonState(button string) bool {
	if slot := j.slotFor(button); slot != nil {
		return *slot
	}
	return false
}

func (j *Joypad) slotFor(button string) *bool {
	switch button {
	case "up":
		return &j.Up
	case "down":
		return &j.Down
	case "left":
		return &j.Left
	case "right":
		return &j.Right
	case "a":
		return &j.A
	case "b":
		return &j.B
	case "select":
		return &j.Select
	case "start":
		return &j.Start
	default:
		return nil
	}
}

func (j *Joypad) directionColumn() column {
	return column{&j.P14, [4]*bool{&j.Right, &j.Left, &j.Up, &j.Down}}
}

func (j *Joypad) actionColumn() column {
	return column{&j.P15, [4]*bool{&j.A, &j.B, &j.Select, &j.Start}}
}

// ReadJoypad produces the value a CPU read of 0xFF00 observes: the two
// select bits as last written, and the low nibble pulled low for every
// pressed button on whichever column(s) are currently selected (both, if
// both P14 and P15 are driven low — the nibble becomes the OR of both
// columns' presses, matching the open-drain wiring on real hardware).
func (j *Joypad) ReadJoypad() uint8 {
	result := uint8(0xFF)
	for _, col := range [...]column{j.directionColumn(), j.actionColumn()} {
		if *col.selected {
			continue
		}
		for bit, pressed := range col.buttons {
			if *pressed {
				result &^= uint8(1) << uint(bit)
			}
		}
	}
	if !j.P14 {
		result &^= bitSelectDir
	}
	if !j.P15 {
		result &^= bitSelectAct
	}
	return result | unusedBits
}

// WriteJoypad updates the two select lines. The low nibble is read-only
// hardware state driven by button presses, not register writes, so bits
// 3-0 (and the always-1 bits 7-6) are ignored here.
func (j *Joypad) WriteJoypad(value uint8) {
	j.P14 = value&bitSelectDir != 0
	j.P15 = value&bitSelectAct != 0
}

// ReadRegister and WriteRegister satisfy the bus's memory-mapped I/O
// interface for the single joypad register.
func (j *Joypad) ReadRegister(address uint16) uint8 {
	if address == JOYPAD_ADDR {
		return j.ReadJoypad()
	}
	return 0xFF
}

func (j *Joypad) WriteRegister(address uint16, value uint8) {
	if address == JOYPAD_ADDR {
		j.WriteJoypad(value)
	}
}

// IsJoypadRegister reports whether address is the joypad register.
func IsJoypadRegister(address uint16) bool {
	return address == JOYPAD_ADDR
}

// GetDirectionButtonsByte packs Right/Left/Up/Down into bits 0-3, 1=pressed.
// This is plain logic-level packing for callers (debug views, save-state
// dumps) that want a compact snapshot — it is not the register encoding.
func (j *Joypad) GetDirectionButtonsByte() uint8 {
	return packColumn(j.directionColumn())
}

// GetActionButtonsByte packs A/B/Select/Start into bits 0-3, 1=pressed.
func (j *Joypad) GetActionButtonsByte() uint8 {
	return packColumn(j.actionColumn())
}

func packColumn(col column) uint8 {
	var b uint8
	for bit, pressed := range col.buttons {
		if *pressed {
			b |= uint8(1) << uint(bit)
		}
	}
	return b
}

// SetDirectionButtons applies a packed Right/Left/Up/Down byte (see
// GetDirectionButtonsByte) through the normal edge-triggering path, so
// interrupts fire exactly as they would from four individual presses.
func (j *Joypad) SetDirectionButtons(buttons uint8) {
	applyColumn(j, buttons, "right", "left", "up", "down")
}

// SetActionButtons applies a packed A/B/Select/Start byte.
func (j *Joypad) SetActionButtons(buttons uint8) {
	applyColumn(j, buttons, "a", "b", "select", "start")
}

func applyColumn(j *Joypad, buttons uint8, names ...string) {
	for bit, name := range names {
		j.SetButtonState(name, buttons&(uint8(1)<<uint(bit)) != 0)
	}
}
