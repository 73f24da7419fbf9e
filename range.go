package weft

import (
	"strconv"
	"strings"
)

// InterpretFirstRange parses an HTTP Range header against a resource of the
// given size and returns the first continuous byte range it describes.
//
// Comma-separated specs are merged left to right: while the next spec begins
// at or before the end of the merged run, the run is extended to that spec's
// end; the first gap stops the merge. Only a single contiguous interval is
// ever produced, even when the client asked for disjoint ranges.
//
// ok is false when the header is not a valid bytes range, in which case the
// caller must treat the request as a full, non-partial request. Ranges are
// not checked against size here beyond resolving suffix and open-ended
// forms; the 416 bounds check belongs to the caller.
func InterpretFirstRange(header string, size int64) (r ByteRange, ok bool) {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return ByteRange{}, false
	}
	specs := strings.Split(header[len(prefix):], ",")

	merged := ByteRange{}
	for i, spec := range specs {
		next, ok := interpretRangeSpec(strings.TrimSpace(spec), size)
		if !ok {
			return ByteRange{}, false
		}
		if i == 0 {
			merged = next
			continue
		}
		if next.Begin > merged.End {
			break
		}
		merged.End = next.End
	}
	return merged, true
}

// interpretRangeSpec resolves a single start-end, start-, or -suffix spec
// into a concrete interval. HTTP ranges are inclusive on both ends; the
// result is half-open.
func interpretRangeSpec(spec string, size int64) (ByteRange, bool) {
	start, end, found := strings.Cut(spec, "-")
	if !found {
		return ByteRange{}, false
	}
	switch {
	case start == "" && end == "":
		return ByteRange{}, false
	case start == "":
		// -N: the final N bytes.
		n, err := strconv.ParseInt(end, 10, 64)
		if err != nil {
			return ByteRange{}, false
		}
		begin := size - n
		if begin < 0 {
			begin = 0
		}
		return ByteRange{Begin: begin, End: size}, true
	case end == "":
		// N-: from N to the end.
		begin, err := strconv.ParseInt(start, 10, 64)
		if err != nil {
			return ByteRange{}, false
		}
		return ByteRange{Begin: begin, End: size}, true
	default:
		begin, err := strconv.ParseInt(start, 10, 64)
		if err != nil {
			return ByteRange{}, false
		}
		last, err := strconv.ParseInt(end, 10, 64)
		if err != nil || last < begin {
			return ByteRange{}, false
		}
		return ByteRange{Begin: begin, End: last + 1}, true
	}
}
