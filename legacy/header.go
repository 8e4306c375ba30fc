package legacy

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ikey4u/wikit/codec"
	"github.com/ikey4u/wikit/endian"
	"github.com/ikey4u/wikit/errs"
)

var le = endian.GetLittleEndianEngine()

// Header holds the legacy file's prologue attributes plus the fields derived from them that
// drive the rest of parsing.
type Header struct {
	// Attrs is the raw attribute map parsed from the XML-like prologue (e.g. "Title",
	// "Description", "StyleSheet").
	Attrs map[string]string

	// Version is the engine version scaled by 10 (e.g. 20 for "2.0", 12 for "1.2"), matching
	// the legacy reference implementation's version comparison convention.
	Version int

	// IntegerWidth is 4 for Version<20, else 8.
	IntegerWidth int

	// Encoding is the declared text encoding, with GBK/GB2312 normalized to GB18030.
	Encoding codec.Encoding

	// Enc is the declared encryption kind: 0 none, 1 key-block encrypted (unsupported), 2
	// block-info encrypted.
	Enc int
}

var attrPattern = regexp.MustCompile(`\s(\w+)="(.*?)"`)

// parseHeader reads the 4-byte big-endian size prefix, the UTF-16LE attribute text, and its
// trailing little-endian Adler-32, then derives Header's computed fields.
func parseHeader(c *cursor) (Header, error) {
	sizeBuf, err := c.take(4)
	if err != nil {
		return Header{}, fmt.Errorf("legacy header size: %w", err)
	}
	size := binary.BigEndian.Uint32(sizeBuf)

	body, err := c.take(int(size) + 4)
	if err != nil {
		return Header{}, fmt.Errorf("legacy header body: %w", err)
	}
	metaBytes, adlerBytes := body[:size], body[size:]

	want := codec.Adler32(metaBytes)
	got := le.Uint32(adlerBytes)
	if want != got {
		return Header{}, fmt.Errorf("%w: header adler32 want=%#x got=%#x", errs.ErrSourceChecksum, want, got)
	}

	metaStr, err := codec.DecodeText(codec.EncodingUTF16LE, metaBytes)
	if err != nil {
		return Header{}, fmt.Errorf("%w: header text decode: %v", errs.ErrDecodeError, err)
	}

	attrs := make(map[string]string)
	for _, m := range attrPattern.FindAllStringSubmatch(metaStr, -1) {
		attrs[m[1]] = m[2]
	}

	return deriveHeader(attrs)
}

func deriveHeader(attrs map[string]string) (Header, error) {
	h := Header{Attrs: attrs}

	versionStr, ok := attrs["GeneratedByEngineVersion"]
	if !ok {
		return Header{}, fmt.Errorf("%w: missing GeneratedByEngineVersion attribute", errs.ErrSourceFormat)
	}
	versionFloat, err := strconv.ParseFloat(versionStr, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: parse GeneratedByEngineVersion %q: %v", errs.ErrSourceFormat, versionStr, err)
	}
	h.Version = int(versionFloat*10 + 0.5)

	if h.Version < 20 {
		h.IntegerWidth = 4
	} else {
		h.IntegerWidth = 8
	}

	if enc, ok := attrs["Encoding"]; ok && enc != "" {
		upper := strings.ToUpper(enc)
		if strings.Contains(upper, "GBK") || strings.Contains(upper, "GB2312") {
			h.Encoding = codec.EncodingGB18030
		} else {
			h.Encoding = codec.NormalizeEncodingName(enc)
		}
	} else {
		h.Encoding = codec.EncodingUTF8
	}

	if encryptedStr, ok := attrs["Encrypted"]; ok {
		switch encryptedStr {
		case "Yes", "yes":
			h.Enc = 1
		case "No", "no":
			h.Enc = 0
		default:
			if v, err := strconv.ParseUint(encryptedStr, 10, 32); err == nil {
				h.Enc = int(v)
			}
		}
	}

	return h, nil
}
