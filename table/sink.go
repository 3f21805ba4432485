package table

import (
	"sort"
)

// MarkerSet is an in-memory Sink: tag-indexed clearing, span-ordered listing.
// It backs the reference host and the driver tests. The zero value is ready
// for use.
type MarkerSet struct {
	markers []Marker
}

// ClearMarkers drops every marker bearing tag. Foreign tags survive.
func (s *MarkerSet) ClearMarkers(tag string) {
	kept := s.markers[:0]
	for _, m := range s.markers {
		if m.Tag != tag {
			kept = append(kept, m)
		}
	}
	s.markers = kept
}

// PublishMarker stores m.
func (s *MarkerSet) PublishMarker(m Marker) {
	s.markers = append(s.markers, m)
}

// Markers returns a copy of the markers bearing tag, ordered by span.
func (s *MarkerSet) Markers(tag string) []Marker {
	var out []Marker
	for _, m := range s.markers {
		if m.Tag == tag {
			out = append(out, m)
		}
	}
	sortMarkers(out)
	return out
}

// All returns a copy of every marker regardless of tag, ordered by span.
func (s *MarkerSet) All() []Marker {
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	sortMarkers(out)
	return out
}

// Len returns the total number of stored markers.
func (s *MarkerSet) Len() int {
	return len(s.markers)
}

// Adjust translates stored spans across a text edit at offset at: delta > 0
// inserts that many bytes, delta < 0 removes them. Spans past the edit move,
// spans covering an insertion grow, and markers whose covered text is removed
// entirely are dropped. Hosts call this when they mutate the underlying
// document so markers keep pointing at the text they were published for.
func (s *MarkerSet) Adjust(at, delta int) {
	if delta == 0 {
		return
	}
	if delta > 0 {
		for i := range s.markers {
			sp := &s.markers[i].Span
			switch {
			case sp.Start >= at:
				sp.Start += delta
				sp.End += delta
			case sp.End > at:
				sp.End += delta
			}
		}
		return
	}
	removed := -delta
	kept := s.markers[:0]
	for _, m := range s.markers {
		if m.Span.Start >= at && m.Span.End <= at+removed && m.Span.Len() > 0 {
			continue
		}
		m.Span.Start = collapse(m.Span.Start, at, removed)
		m.Span.End = collapse(m.Span.End, at, removed)
		kept = append(kept, m)
	}
	s.markers = kept
}

func collapse(x, at, removed int) int {
	switch {
	case x <= at:
		return x
	case x >= at+removed:
		return x - removed
	default:
		return at
	}
}

// Scoped returns a Sink view confined to span: clearing through the view
// drops only markers lying entirely within it. Hosts hand one view per table
// to the driver so restyling one table leaves sibling tables alone.
func (s *MarkerSet) Scoped(span Span) Sink {
	return &scopedSink{set: s, span: span}
}

type scopedSink struct {
	set  *MarkerSet
	span Span
}

func (v *scopedSink) ClearMarkers(tag string) {
	kept := v.set.markers[:0]
	for _, m := range v.set.markers {
		if m.Tag == tag && v.span.Contains(m.Span) {
			continue
		}
		kept = append(kept, m)
	}
	v.set.markers = kept
}

func (v *scopedSink) PublishMarker(m Marker) {
	v.set.PublishMarker(m)
}

func sortMarkers(ms []Marker) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Span.Start != ms[j].Span.Start {
			return ms[i].Span.Start < ms[j].Span.Start
		}
		return ms[i].Span.End < ms[j].Span.End
	})
}
