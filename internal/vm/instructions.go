package vm

// skip moves the program counter past the next instruction. The fetch has
// already advanced it past the current one.
func (v *VM) skip() {
	v.pc += 2
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// setWithFlag stores an ALU result in Vx and the flag in VF. The flag is
// written last so it wins when x is VF.
func (v *VM) setWithFlag(x, result uint8, flag bool) {
	v.v[x] = result
	v.v[flagRegister] = boolToFlag(flag)
}

// 00E0 - CLS
func (v *VM) clearScreen(Operands) error {
	v.display.clear()
	return nil
}

// 00EE - RET
func (v *VM) returnFromSubroutine(Operands) error {
	address, err := v.stack.pop()
	if err != nil {
		return err
	}
	v.pc = address
	return nil
}

// 1nnn - JP addr
func (v *VM) jump(op Operands) error {
	v.pc = op.NNN
	return nil
}

// 2nnn - CALL addr
func (v *VM) call(op Operands) error {
	if err := v.stack.push(v.pc); err != nil {
		return err
	}
	v.pc = op.NNN
	return nil
}

// 3xkk - SE Vx, byte
func (v *VM) skipIfEqualByte(op Operands) error {
	if v.v[op.X] == op.KK {
		v.skip()
	}
	return nil
}

// 4xkk - SNE Vx, byte
func (v *VM) skipIfNotEqualByte(op Operands) error {
	if v.v[op.X] != op.KK {
		v.skip()
	}
	return nil
}

// 5xy0 - SE Vx, Vy
func (v *VM) skipIfEqual(op Operands) error {
	if v.v[op.X] == v.v[op.Y] {
		v.skip()
	}
	return nil
}

// 6xkk - LD Vx, byte
func (v *VM) loadByte(op Operands) error {
	v.v[op.X] = op.KK
	return nil
}

// 7xkk - ADD Vx, byte
func (v *VM) addByte(op Operands) error {
	v.v[op.X] += op.KK
	return nil
}

// 8xy0 - LD Vx, Vy
func (v *VM) loadRegister(op Operands) error {
	v.v[op.X] = v.v[op.Y]
	return nil
}

// 8xy1 - OR Vx, Vy
func (v *VM) or(op Operands) error {
	v.v[op.X] |= v.v[op.Y]
	return nil
}

// 8xy2 - AND Vx, Vy
func (v *VM) and(op Operands) error {
	v.v[op.X] &= v.v[op.Y]
	return nil
}

// 8xy3 - XOR Vx, Vy
func (v *VM) xor(op Operands) error {
	v.v[op.X] ^= v.v[op.Y]
	return nil
}

// 8xy4 - ADD Vx, Vy
func (v *VM) add(op Operands) error {
	sum := uint16(v.v[op.X]) + uint16(v.v[op.Y])
	v.setWithFlag(op.X, uint8(sum), sum > 0xFF)
	return nil
}

// 8xy5 - SUB Vx, Vy
func (v *VM) sub(op Operands) error {
	vx, vy := v.v[op.X], v.v[op.Y]
	v.setWithFlag(op.X, vx-vy, vx >= vy)
	return nil
}

// 8xy6 - SHR Vx
func (v *VM) shiftRight(op Operands) error {
	vx := v.v[op.X]
	v.setWithFlag(op.X, vx>>1, vx&0x01 != 0)
	return nil
}

// 8xy7 - SUBN Vx, Vy
func (v *VM) subn(op Operands) error {
	vx, vy := v.v[op.X], v.v[op.Y]
	v.setWithFlag(op.X, vy-vx, vy >= vx)
	return nil
}

// 8xyE - SHL Vx
func (v *VM) shiftLeft(op Operands) error {
	vx := v.v[op.X]
	v.setWithFlag(op.X, vx<<1, vx&0x80 != 0)
	return nil
}

// 9xy0 - SNE Vx, Vy
func (v *VM) skipIfNotEqual(op Operands) error {
	if v.v[op.X] != v.v[op.Y] {
		v.skip()
	}
	return nil
}

// Annn - LD I, addr
func (v *VM) loadIndex(op Operands) error {
	v.i = op.NNN
	return nil
}

// Bnnn - JP V0, addr
func (v *VM) jumpIndexed(op Operands) error {
	v.pc = op.NNN + uint16(v.v[0])
	return nil
}

// Cxkk - RND Vx, byte
func (v *VM) randomByte(op Operands) error {
	v.v[op.X] = uint8(v.random.Intn(256)) & op.KK
	return nil
}

// Dxyn - DRW Vx, Vy, nibble
func (v *VM) draw(op Operands) error {
	sprite, ok := v.mem.span(v.i, int(op.N))
	if !ok {
		return ErrMemoryBounds
	}
	collision := v.display.draw(v.v[op.X], v.v[op.Y], sprite)
	v.v[flagRegister] = boolToFlag(collision)
	return nil
}

// Ex9E - SKP Vx
func (v *VM) skipIfPressed(op Operands) error {
	if v.Key(v.v[op.X]) {
		v.skip()
	}
	return nil
}

// ExA1 - SKNP Vx
func (v *VM) skipIfNotPressed(op Operands) error {
	if !v.Key(v.v[op.X]) {
		v.skip()
	}
	return nil
}

// Fx07 - LD Vx, DT
func (v *VM) loadDelayTimer(op Operands) error {
	v.v[op.X] = v.delayTimer
	return nil
}

// Fx0A - LD Vx, K
//
// The instruction is re-executed until a key goes from released to pressed
// after the wait began.
func (v *VM) waitForKey(op Operands) error {
	if !v.keys.waiting {
		v.keys.beginWait()
		v.pc -= 2
		return nil
	}

	key, ok := v.keys.takeLatched()
	if !ok {
		v.pc -= 2
		return nil
	}
	v.v[op.X] = key
	return nil
}

// Fx15 - LD DT, Vx
func (v *VM) setDelayTimer(op Operands) error {
	v.delayTimer = v.v[op.X]
	return nil
}

// Fx18 - LD ST, Vx
func (v *VM) setSoundTimer(op Operands) error {
	v.soundTimer = v.v[op.X]
	return nil
}

// Fx1E - ADD I, Vx
func (v *VM) addIndex(op Operands) error {
	v.i += uint16(v.v[op.X])
	return nil
}

// Fx29 - LD F, Vx
func (v *VM) loadGlyph(op Operands) error {
	v.i = glyphAddress(v.v[op.X])
	return nil
}

// Fx33 - LD B, Vx
func (v *VM) storeBCD(op Operands) error {
	digits, ok := v.mem.span(v.i, 3)
	if !ok {
		return ErrMemoryBounds
	}
	vx := v.v[op.X]
	digits[0] = vx / 100
	digits[1] = vx / 10 % 10
	digits[2] = vx % 10
	return nil
}

// Fx55 - LD [I], Vx
func (v *VM) storeRegisters(op Operands) error {
	dst, ok := v.mem.span(v.i, int(op.X)+1)
	if !ok {
		return ErrMemoryBounds
	}
	copy(dst, v.v[:op.X+1])
	return nil
}

// Fx65 - LD Vx, [I]
func (v *VM) loadRegisters(op Operands) error {
	src, ok := v.mem.span(v.i, int(op.X)+1)
	if !ok {
		return ErrMemoryBounds
	}
	copy(v.v[:op.X+1], src)
	return nil
}
