// Package css implements the three core subsystems of the cascade engine:
// the bytecode codec (this file and opcode.go/units.go/color.go), the
// property-value parsers (properties*.go), and stylesheet assembly
// (sheet.go, selector.go). Selector matching and cascade execution live in
// the sibling style package, which is the only consumer of the bytecode
// this package produces.
package css

import (
	"encoding/binary"
	"fmt"

	"github.com/lukehoban/browser/fixed"
	"github.com/lukehoban/browser/intern"
)

// Flags are the two bits carried alongside every OPV.
type Flags uint8

const (
	FlagInherit   Flags = 1 << 0
	FlagImportant Flags = 1 << 1
)

// IsInherit reports whether the inherit flag is set.
func (f Flags) IsInherit() bool { return f&FlagInherit != 0 }

// IsImportant reports whether the important flag is set.
func (f Flags) IsImportant() bool { return f&FlagImportant != 0 }

// ValueSet is the designated sentinel stored in an OPV's value field
// whenever typed operands follow inline. Every property parser that
// emits operands writes this constant; plain
// keyword values use their own small enum starting at 1 (0 is reserved as
// "unset/initial" so a zeroed OPV never aliases a real keyword).
const ValueSet uint16 = 0xffff

// OPV is the packed 32-bit declaration header: 14 bits opcode, 2 bits
// flags, 16 bits value.
type OPV uint32

// BuildOPV packs the three OPV fields into one word.
func BuildOPV(opcode Opcode, flags Flags, value uint16) OPV {
	return OPV(uint32(opcode)&0x3fff | uint32(flags&0x3)<<14 | uint32(value)<<16)
}

// Opcode extracts the property opcode from an OPV.
func (o OPV) Opcode() Opcode { return Opcode(uint32(o) & 0x3fff) }

// Flags extracts the inherit/important flags from an OPV.
func (o OPV) Flags() Flags { return Flags(uint32(o) >> 14 & 0x3) }

// Value extracts the value field from an OPV.
func (o OPV) Value() uint16 { return uint16(uint32(o) >> 16) }

// IsInherit reports whether the inherit flag is set.
func (o OPV) IsInherit() bool { return o.Flags()&FlagInherit != 0 }

// IsImportant reports whether the important flag is set.
func (o OPV) IsImportant() bool { return o.Flags()&FlagImportant != 0 }

// OperandKind is one entry in a property's operand schema.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandFixedUnit
	OperandFixed
	OperandColour
	OperandStringRef
)

// operandSize returns the encoded byte width of one operand of kind k.
func operandSize(k OperandKind) int {
	switch k {
	case OperandFixedUnit:
		return 8 // fixed (4) + unit (4)
	case OperandFixed, OperandColour, OperandStringRef:
		return 4
	default:
		return 0
	}
}

// Buffer is a growable bytecode buffer: the representation of a rule's
// style block or of one Declaration. It owns
// reference counts on every interned string written into it, and must be
// released with Release to drop them again — this is what keeps the
// "ref count never goes negative" invariant checkable at sheet destroy.
type Buffer struct {
	bytes   []byte
	dict    *intern.Dict
	strRefs []*intern.Name
}

// NewBuffer creates an empty bytecode buffer backed by dict for any
// string-ref operands it is asked to write.
func NewBuffer(dict *intern.Dict) *Buffer {
	return &Buffer{dict: dict}
}

// Len returns the buffer's current length in bytes.
func (b *Buffer) Len() int { return len(b.bytes) }

// Bytes returns the raw encoded buffer. The slice aliases the buffer's
// backing array and must not be mutated by the caller.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Release unrefs every interned string this buffer holds. Called when the
// owning rule or declaration is destroyed.
func (b *Buffer) Release() {
	for _, n := range b.strRefs {
		b.dict.Unref(n)
	}
	b.strRefs = nil
}

// WriteOPV appends a bare OPV with no operands (keyword-only or inherit
// declarations).
func (b *Buffer) WriteOPV(opcode Opcode, flags Flags, value uint16) {
	b.appendOPV(BuildOPV(opcode, flags, value))
}

// WriteFixedUnit appends an OPV followed by one fixed+unit operand pair.
func (b *Buffer) WriteFixedUnit(opcode Opcode, flags Flags, v fixed.Value, u Unit) {
	b.appendOPV(BuildOPV(opcode, flags, ValueSet))
	b.appendFixed(v)
	b.appendUint32(uint32(u))
}

// WriteFixed appends an OPV followed by one bare fixed-point operand
// (used by unitless numeric properties: z-index, speech-rate, orphans/widows
// and the 0-100 speech scalars pitch-range, richness and stress).
func (b *Buffer) WriteFixed(opcode Opcode, flags Flags, v fixed.Value) {
	b.appendOPV(BuildOPV(opcode, flags, ValueSet))
	b.appendFixed(v)
}

// WriteFixedValue appends an OPV with an explicit value discriminant
// (rather than the generic ValueSet) followed by one bare fixed operand.
// Used by properties whose value enum distinguishes several numeric
// sub-kinds (e.g. length vs percentage callers that already resolved the
// unit into the value field itself, such as border-width keywords mixed
// with explicit lengths).
func (b *Buffer) WriteFixedValue(opcode Opcode, flags Flags, value uint16, v fixed.Value) {
	b.appendOPV(BuildOPV(opcode, flags, value))
	b.appendFixed(v)
}

// WriteColour appends an OPV followed by one ARGB colour operand.
func (b *Buffer) WriteColour(opcode Opcode, flags Flags, c Color) {
	b.appendOPV(BuildOPV(opcode, flags, ValueSet))
	b.appendUint32(uint32(c))
}

// WriteStringRef appends an OPV followed by one interned-string operand,
// taking a reference on name for the lifetime of this buffer.
func (b *Buffer) WriteStringRef(opcode Opcode, flags Flags, value uint16, name *intern.Name) {
	b.appendOPV(BuildOPV(opcode, flags, value))
	b.appendStringRef(name)
}

// WriteClip appends clip's packed representation: a 4-bit auto-mask in
// the value field followed by fixed+unit pairs for every position that
// isn't auto, in document order (top, right, bottom, left).
func (b *Buffer) WriteClip(flags Flags, autoMask uint16, positions []struct {
	V fixed.Value
	U Unit
}) {
	// The low 4 bits of the value field carry the auto-mask; bit 4 marks
	// "this is a rect(), not the auto keyword". Ordinary clip keyword
	// values (just "auto") never set bit 4, so the two never collide.
	v := uint16(0x10) | (autoMask & 0xf)
	b.appendOPV(BuildOPV(OpClip, flags, v))
	for _, p := range positions {
		b.appendFixed(p.V)
		b.appendUint32(uint32(p.U))
	}
}

// ClipAutoMaskBit is the bit that, when set in a clip OPV's value field,
// indicates the declaration is rect(...) rather than the bare auto
// keyword; the low 4 bits are then the per-position auto mask.
const ClipAutoMaskBit = 0x10

// WriteSentinel appends a plain keyword OPV used to terminate a
// list-valued declaration (counter-increment/reset's NONE, quotes'
// QUOTES_NONE, content's CONTENT_NORMAL). It carries no operands.
func (b *Buffer) WriteSentinel(opcode Opcode, flags Flags, value uint16) {
	b.appendOPV(BuildOPV(opcode, flags, value))
}

// PatchFlags ORs extra flag bits into the buffer's first OPV word. Used
// when a trailing "!important" is only discovered after the declaration's
// value (and its OPV) has already been written, so the flag can't be
// known at WriteOPV time.
func (b *Buffer) PatchFlags(flags Flags) {
	if len(b.bytes) < 4 {
		return
	}
	opv := OPV(binary.LittleEndian.Uint32(b.bytes[:4]))
	opv |= OPV(uint32(flags&0x3) << 14)
	binary.LittleEndian.PutUint32(b.bytes[:4], uint32(opv))
}

func (b *Buffer) appendOPV(opv OPV) {
	b.appendUint32(uint32(opv))
}

func (b *Buffer) appendUint32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.bytes = append(b.bytes, tmp[:]...)
}

func (b *Buffer) appendFixed(v fixed.Value) {
	b.appendUint32(uint32(int32(v)))
}

func (b *Buffer) appendStringRef(n *intern.Name) {
	b.dict.Ref(n)
	b.strRefs = append(b.strRefs, n)
	// Encode as a 32-bit handle: the index into strRefs plus one, so 0
	// never denotes a valid reference. This handle is only ever valid
	// within the process and Buffer that produced it — bytecode here is
	// an in-memory format, not a portable wire format.
	b.appendUint32(uint32(len(b.strRefs)))
}

// Decoded is one fully-read declaration: its OPV plus whatever operands
// its schema dictated.
type Decoded struct {
	Opcode   Opcode
	Flags    Flags
	Value    uint16
	FixedOps []fixed.Value
	Units    []Unit
	Colour   Color
	HasColor bool
	StrRef   *intern.Name
	HasStr   bool
}

// Reader reads declarations back out of a Buffer's byte stream. It is the
// read side of the OPV + operand contract; unknown opcodes are treated as
// bytecode corruption and panic, since this is a format the engine itself
// produced — a valid Buffer never contains one.
type Reader struct {
	buf  []byte
	pos  int
	dict *intern.Dict
	strs []*intern.Name
}

// NewReader creates a Reader over a fully-written Buffer.
func NewReader(b *Buffer) *Reader {
	return &Reader{buf: b.bytes, dict: b.dict, strs: b.strRefs}
}

// Len reports the total number of bytes in the stream.
func (r *Reader) Len() int { return len(r.buf) }

// Pos reports the reader's current byte offset.
func (r *Reader) Pos() int { return r.pos }

// Done reports whether the reader has consumed the whole stream.
func (r *Reader) Done() bool { return r.pos >= len(r.buf) }

func (r *Reader) readUint32() uint32 {
	if r.pos+4 > len(r.buf) {
		panic(fmt.Sprintf("css: bytecode truncated at offset %d", r.pos))
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

// ReadOPV reads the next bare OPV word without interpreting operands.
// Callers that already know the operand shape (e.g. cascade apply
// functions, which are keyed by opcode) use this then call the matching
// ReadFixedUnit/ReadColour/etc helper.
func (r *Reader) ReadOPV() OPV {
	return OPV(r.readUint32())
}

// ReadFixed reads one bare fixed-point operand.
func (r *Reader) ReadFixed() fixed.Value {
	return fixed.Value(int32(r.readUint32()))
}

// ReadUnit reads one unit operand.
func (r *Reader) ReadUnit() Unit {
	return Unit(r.readUint32())
}

// ReadColour reads one ARGB colour operand.
func (r *Reader) ReadColour() Color {
	return Color(r.readUint32())
}

// ReadStringRef reads one interned-string handle and resolves it against
// the buffer's own string table.
func (r *Reader) ReadStringRef() *intern.Name {
	handle := r.readUint32()
	if handle == 0 || int(handle) > len(r.strs) {
		panic("css: bytecode corruption: invalid string handle")
	}
	return r.strs[handle-1]
}
