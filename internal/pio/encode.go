package pio

// 16-bit instruction words: the opcode lives in the top three bits, a
// shared delay/side-set field in bits 12:8, and operands below.

// Opcode groups (instr >> OpcodeShift).
const (
	OpJmp      = 0
	OpWait     = 1
	OpIn       = 2
	OpOut      = 3
	OpPushPull = 4
	OpMov      = 5
	OpIrq      = 6
	OpSet      = 7

	OpcodeShift = 13
)

// Register/pin selectors shared by mov, set, in and out operands.
const (
	DestPins = 0
	DestX    = 1
	DestY    = 2
	DestISR  = 6
	DestOSR  = 7
)

// Opcode returns the instruction's opcode group.
func Opcode(instr uint16) int {
	return int(instr >> OpcodeShift)
}

// IsJmp reports whether the instruction is a jump. Jump targets are
// absolute instruction-memory addresses, so relocating a program means
// adding the load offset to every jump's target field.
func IsJmp(instr uint16) bool {
	return Opcode(instr) == OpJmp
}

// EncodeSet builds "set <dest>, <value>". The value occupies the 5-bit
// immediate field.
func EncodeSet(dest, value int) uint16 {
	return uint16(OpSet<<OpcodeShift | (dest&0x7)<<5 | value&0x1f)
}

// EncodeMov builds "mov <dest>, <src>" (no operation applied).
func EncodeMov(dest, src int) uint16 {
	return uint16(OpMov<<OpcodeShift | (dest&0x7)<<5 | src&0x7)
}

// EncodePull builds "pull" with the given if-empty and block flags.
func EncodePull(ifEmpty, block bool) uint16 {
	instr := uint16(OpPushPull<<OpcodeShift | 1<<7)
	if ifEmpty {
		instr |= 1 << 6
	}
	if block {
		instr |= 1 << 5
	}
	return instr
}

// EncodePush builds "push" with the given if-full and block flags.
func EncodePush(ifFull, block bool) uint16 {
	instr := uint16(OpPushPull << OpcodeShift)
	if ifFull {
		instr |= 1 << 6
	}
	if block {
		instr |= 1 << 5
	}
	return instr
}
