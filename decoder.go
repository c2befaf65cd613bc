package termconsole

import (
	"io"
	"strconv"
	"strings"
)

// maxSequenceLen bounds how many runes of an escape sequence are read, so a
// garbled stream can never stall the decoder inside one sequence.
const maxSequenceLen = 16

// KeyDecoder turns the raw runes of a terminal in raw mode into Keys.
//
// It understands control characters, CSI sequences (ESC [ ...) with xterm
// modifier parameters, SS3 sequences (ESC O ...) and ESC-prefixed Meta chords.
// Reads block: a lone Escape is only reported once the next rune arrives.
type KeyDecoder struct {
	rd io.RuneReader
}

// NewKeyDecoder creates a decoder reading from rd.
func NewKeyDecoder(rd io.RuneReader) *KeyDecoder {
	return &KeyDecoder{rd: rd}
}

// ReadKey reads and decodes the next key. It returns the reader's error,
// such as io.EOF, when no more input is available.
func (d *KeyDecoder) ReadKey() (Key, error) {
	r, err := d.readRune()
	if err != nil {
		return Key{}, err
	}
	if r != '\x1b' {
		return controlKey(r), nil
	}

	r2, err := d.readRune()
	if err != nil {
		// Input ended right after ESC: report the Escape key itself.
		return Key{Sequence: "\x1b", Name: KeyEscape}, nil
	}
	switch r2 {
	case '[':
		return d.readCSI()
	case 'O':
		return d.readSS3()
	case '\x1b':
		return Key{Sequence: "\x1b\x1b", Name: KeyEscape, Meta: true}, nil
	default:
		k := controlKey(r2)
		k.Sequence = "\x1b" + k.Sequence
		k.Meta = true
		return k, nil
	}
}

func (d *KeyDecoder) readRune() (rune, error) {
	r, _, err := d.rd.ReadRune()
	return r, err
}

// controlKey decodes a single rune outside an escape sequence.
func controlKey(r rune) Key {
	seq := string(r)
	switch {
	case r == '\r':
		return Key{Sequence: seq, Name: KeyReturn}
	case r == '\n':
		return Key{Sequence: seq, Name: KeyEnter}
	case r == '\t':
		return Key{Sequence: seq, Name: KeyTab}
	case r == '\b' || r == '\x7f':
		return Key{Sequence: seq, Name: KeyBackspace}
	case r == 0:
		return Key{Sequence: seq, Name: KeySpace, Ctrl: true}
	case r >= 0x01 && r <= 0x1a:
		return Key{Sequence: seq, Name: string(r - 1 + 'a'), Ctrl: true}
	case r >= 0x1c && r <= 0x1f:
		return Key{Sequence: seq, Name: string(r + 0x40), Ctrl: true}
	default:
		return RuneKey(r)
	}
}

// csiTilde maps the numeric parameter of "ESC [ n ~" sequences.
var csiTilde = map[int]string{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown, 7: KeyHome, 8: KeyEnd,
	11: "f1", 12: "f2", 13: "f3", 14: "f4", 15: "f5",
	17: "f6", 18: "f7", 19: "f8", 20: "f9", 21: "f10",
	23: "f11", 24: "f12",
}

// csiFinal maps the final rune of CSI and SS3 sequences without a tilde.
var csiFinal = map[rune]string{
	'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
	'H': KeyHome, 'F': KeyEnd,
	'P': "f1", 'Q': "f2", 'R': "f3", 'S': "f4",
}

func (d *KeyDecoder) readCSI() (Key, error) {
	var params strings.Builder
	for range maxSequenceLen {
		r, err := d.readRune()
		if err != nil {
			return unknownKey("\x1b[" + params.String()), nil
		}
		if (r >= '0' && r <= '9') || r == ';' {
			params.WriteRune(r)
			continue
		}

		seq := "\x1b[" + params.String() + string(r)
		nums := parseParams(params.String())
		var name string
		if r == '~' {
			if len(nums) > 0 {
				name = csiTilde[nums[0]]
			}
		} else {
			name = csiFinal[r]
		}
		if name == "" {
			return unknownKey(seq), nil
		}

		k := Key{Sequence: seq, Name: name}
		if len(nums) > 1 {
			applyModifier(&k, nums[1])
		}
		return k, nil
	}
	return unknownKey("\x1b[" + params.String()), nil
}

func (d *KeyDecoder) readSS3() (Key, error) {
	r, err := d.readRune()
	if err != nil {
		// ESC O with nothing after it is Meta+O.
		return Key{Sequence: "\x1bO", Name: "o", Meta: true, Shift: true}, nil
	}
	seq := "\x1bO" + string(r)
	if name, ok := csiFinal[r]; ok {
		return Key{Sequence: seq, Name: name}, nil
	}
	return unknownKey(seq), nil
}

func parseParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	nums := make([]int, len(parts))
	for i, p := range parts {
		nums[i], _ = strconv.Atoi(p)
	}
	return nums
}

// applyModifier decodes an xterm modifier parameter (1 + bitmask of
// Shift=1, Alt=2, Ctrl=4, Meta=8).
func applyModifier(k *Key, param int) {
	mask := param - 1
	if mask <= 0 {
		return
	}
	k.Shift = mask&1 != 0
	k.Meta = mask&2 != 0 || mask&8 != 0
	k.Ctrl = mask&4 != 0
}

func unknownKey(seq string) Key {
	return Key{Sequence: seq, Name: "unknown"}
}
