package compiler

// Magic is the fixed 8-byte prefix of every compiled dictionary file.
const Magic = "WIKIT516"

// FormatVersion is the current compiled-file format version.
const FormatVersion uint32 = 1

// IndexFormat identifies the index region's encoding. 1 is the only defined value: the ordered
// fixed-size-entry table implemented by package index.
const IndexFormat uint8 = 1

// DataEntryType identifies a DataEntry's payload kind.
type DataEntryType uint8

const (
	DataEntryText DataEntryType = 1
	DataEntrySVG  DataEntryType = 2
	DataEntryPNG  DataEntryType = 3
	DataEntryJPG  DataEntryType = 4
	DataEntryMP3  DataEntryType = 5
	DataEntryWAV  DataEntryType = 6
	DataEntryMP4  DataEntryType = 7
)

// MaxShortFieldSize bounds name/desc fields, each framed with a 2-byte length.
const MaxShortFieldSize = 64 * 1024

// MaxLongFieldSize bounds script/style fields, each framed with a 4-byte length.
const MaxLongFieldSize = 4 * 1024 * 1024 * 1024
