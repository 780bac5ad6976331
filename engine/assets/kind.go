package assets

import "strings"

// Kind selects the fetch adapter used for a descriptor.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindJSON:
		return "json"
	default:
		return "unsupported"
	}
}

// Classify inspects the text after the last '.' of src (the whole string when
// there is none). The match is exact and case-sensitive.
func Classify(src string) Kind {
	ext := src
	if i := strings.LastIndex(src, "."); i >= 0 {
		ext = src[i+1:]
	}
	switch ext {
	case "svg", "png", "jpg", "jpeg":
		return KindImage
	case "json":
		return KindJSON
	default:
		return KindUnsupported
	}
}
