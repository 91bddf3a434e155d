package vm

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// noKey marks that no key press has been latched.
const noKey = -1

// keypad tracks the pressed state of the 16 keys and latches the first
// released-to-pressed transition while an instruction waits for input.
type keypad struct {
	pressed [KeyCount]bool
	waiting bool
	latched int
}

func newKeypad() keypad {
	return keypad{latched: noKey}
}

func (k *keypad) set(key uint8, pressed bool) {
	if pressed && !k.pressed[key] && k.waiting && k.latched == noKey {
		k.latched = int(key)
	}
	k.pressed[key] = pressed
}

// beginWait starts waiting for a key press. Keys that are already held do
// not satisfy the wait.
func (k *keypad) beginWait() {
	k.waiting = true
	k.latched = noKey
}

// takeLatched returns the latched key and ends the wait.
func (k *keypad) takeLatched() (uint8, bool) {
	if k.latched == noKey {
		return 0, false
	}
	key := uint8(k.latched)
	k.waiting = false
	k.latched = noKey
	return key, true
}
