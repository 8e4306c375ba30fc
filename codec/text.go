package codec

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Encoding identifies a legacy text encoding declared in a dictionary's header.
type Encoding string

const (
	EncodingUTF8    Encoding = "UTF-8"
	EncodingUTF16LE Encoding = "UTF-16"
	EncodingGB18030 Encoding = "GB18030"
)

// NormalizeEncodingName maps the aliases seen in legacy headers (GBK, GB2312, and bare "UTF-16")
// onto the three encodings this package decodes.
func NormalizeEncodingName(name string) Encoding {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GBK", "GB2312", "GB18030":
		return EncodingGB18030
	case "UTF-16", "UTF16", "UTF-16LE":
		return EncodingUTF16LE
	case "", "UTF-8", "UTF8":
		return EncodingUTF8
	default:
		return EncodingUTF8
	}
}

// DecodeText decodes raw bytes under enc and drops every embedded NUL character from the
// result. NUL bytes terminate key strings and pad meaning boundaries in the legacy format; since
// a decoded slice may carry one mid-string (not only trailing, e.g. a meaning slice spanning an
// entry's terminator), every occurrence is dropped rather than only a trailing one.
func DecodeText(enc Encoding, raw []byte) (string, error) {
	var (
		s   string
		err error
	)

	switch enc {
	case EncodingUTF16LE:
		s, err = decodeUTF16LE(raw)
	case EncodingGB18030:
		s, err = decodeGB18030(raw)
	default:
		s, err = string(raw), nil
	}
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(s, "\x00", ""), nil
}

func decodeUTF16LE(raw []byte) (string, error) {
	if len(raw)%2 != 0 {
		return "", fmt.Errorf("utf-16le: odd byte length %d", len(raw))
	}

	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[i*2]) | uint16(raw[i*2+1])<<8
	}

	return string(utf16.Decode(units)), nil
}

func decodeGB18030(raw []byte) (string, error) {
	decoder := simplifiedchinese.GB18030.NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("gb18030 decode: %w", err)
	}
	return string(out), nil
}
