package image

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Format is a program image file format.
type Format int

const (
	FORMAT_AUTO = Format(0) // auto
	FORMAT_HEX  = Format(1) // hex
	FORMAT_BIN  = Format(2) // bin
	FORMAT_CBOR = Format(3) // cbor
)

var formatName = map[Format]string{
	FORMAT_AUTO: "auto",
	FORMAT_HEX:  "hex",
	FORMAT_BIN:  "bin",
	FORMAT_CBOR: "cbor",
}

func (format Format) String() string {
	name, ok := formatName[format]
	if !ok {
		return "Format(" + strconv.Itoa(int(format)) + ")"
	}
	return name
}

// ParseFormat returns the format for a name. The empty name is FORMAT_AUTO.
func ParseFormat(name string) (format Format, err error) {
	if len(name) == 0 {
		return
	}
	for format, known := range formatName {
		if known == name {
			return format, nil
		}
	}
	err = fmt.Errorf("%w: %q", ErrFormatUnknown, name)
	return
}

// CBOR_MAGIC identifies a CBOR image container.
const CBOR_MAGIC = "riscy-image/1"

// container is the CBOR image layout.
type container struct {
	Format string   `cbor:"format"`
	Words  []uint16 `cbor:"words"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Write writes an image in the requested format. FORMAT_AUTO writes hex.
func Write(w io.Writer, img *Image, format Format) (err error) {
	switch format {
	case FORMAT_AUTO, FORMAT_HEX:
		err = writeText(w, img, "0x%04x\n")
	case FORMAT_BIN:
		err = writeText(w, img, "%016b\n")
	case FORMAT_CBOR:
		var data []byte
		data, err = cborEncMode.Marshal(&container{Format: CBOR_MAGIC, Words: img.Slice()})
		if err != nil {
			return
		}
		_, err = w.Write(data)
	default:
		err = fmt.Errorf("%w: %v", ErrFormatUnknown, format)
	}

	return
}

func writeText(w io.Writer, img *Image, layout string) (err error) {
	bw := bufio.NewWriter(w)
	for word := range img.Words() {
		_, err = fmt.Fprintf(bw, layout, word)
		if err != nil {
			return
		}
	}
	err = bw.Flush()
	return
}

// Read reads an image in the requested format. FORMAT_AUTO determines the
// format from the first bytes of the input.
func Read(r io.Reader, format Format) (img *Image, err error) {
	br := bufio.NewReader(r)

	if format == FORMAT_AUTO {
		format, err = sniff(br)
		if err != nil {
			return
		}
	}

	var words []uint16
	switch format {
	case FORMAT_HEX:
		words, err = readText(br, parseHex)
	case FORMAT_BIN:
		words, err = readText(br, parseBin)
	case FORMAT_CBOR:
		words, err = readCbor(br)
	default:
		err = fmt.Errorf("%w: %v", ErrFormatUnknown, format)
	}
	if err != nil {
		return
	}

	img, err = FromWords(words)
	return
}

// sniff guesses the format of a buffered image.
func sniff(br *bufio.Reader) (format Format, err error) {
	head, _ := br.Peek(2)
	switch {
	case len(head) == 0:
		err = ErrImageEmpty
	case len(head) == 2 && head[0] == '0' && head[1] == 'x':
		format = FORMAT_HEX
	case head[0] == '0' || head[0] == '1':
		format = FORMAT_BIN
	case head[0]&0xe0 == 0xa0:
		// CBOR major type 5, a map.
		format = FORMAT_CBOR
	default:
		err = ErrFormatUnknown
	}
	return
}

func parseHex(text string) (word uint16, ok bool) {
	digits, found := strings.CutPrefix(text, "0x")
	if !found || len(digits) == 0 || len(digits) > 4 {
		return
	}
	value, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return
	}
	return uint16(value), true
}

func parseBin(text string) (word uint16, ok bool) {
	if len(text) == 0 || len(text) > 16 {
		return
	}
	value, err := strconv.ParseUint(text, 2, 16)
	if err != nil {
		return
	}
	return uint16(value), true
}

func readText(r io.Reader, parse func(string) (uint16, bool)) (words []uint16, err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}
		word, ok := parse(line)
		if !ok {
			err = &ErrWord{LineNo: lineno, Line: line}
			return
		}
		words = append(words, word)
	}

	err = scanner.Err()
	return
}

func readCbor(r io.Reader) (words []uint16, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	var c container
	err = cbor.Unmarshal(data, &c)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFormatMagic, err)
		return
	}
	if c.Format != CBOR_MAGIC {
		err = fmt.Errorf("%w: %q", ErrFormatMagic, c.Format)
		return
	}

	words = c.Words
	return
}
