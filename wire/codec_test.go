package wire

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTagRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		tags []*Tag
	}{
		{
			name: "service name",
			tags: []*Tag{{Type: TagTypeServiceName, Data: []byte("myMagicService")}},
		},
		{
			name: "host uniq",
			tags: []*Tag{{Type: TagTypeHostUniq, Data: []byte{0x42, 0x81, 0xba, 0x3b, 0xc6, 0x1e, 0x94, 0xb1}}},
		},
		{
			name: "ac cookie",
			tags: []*Tag{{Type: TagTypeACCookie, Data: []byte{0x37, 0xd0, 0xba, 0x3b, 0x94, 0x82, 0xc6, 0x1e}}},
		},
		{
			name: "service name error, empty value",
			tags: []*Tag{{Type: TagTypeServiceNameError, Data: []byte{}}},
		},
		{
			name: "multiple tags preserve order",
			tags: []*Tag{
				{Type: TagTypeHostUniq, Data: []byte{0x01, 0x02}},
				{Type: TagTypeACCookie, Data: []byte{0x03, 0x04, 0x05}},
				{Type: TagTypeServiceName, Data: []byte("svc")},
				{Type: TagTypeACName, Data: []byte("ac")},
			},
		},
		{
			name: "PPP-Max-Payload",
			tags: []*Tag{{Type: TagTypePPPMaxPayload, Data: []byte{0x05, 0xdc}}},
		},
	}

	srcHWAddr := [6]byte{0x12, 0x42, 0xae, 0x10, 0xf9, 0x48}
	dstHWAddr := [6]byte{0x22, 0xa2, 0xa4, 0x19, 0xfb, 0xc8}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pkt := NewPADT(srcHWAddr, dstHWAddr, SessionID(15241))
			pkt.Tags = append(pkt.Tags, c.tags...)

			b, err := pkt.ToBytes()
			if err != nil {
				t.Fatalf("ToBytes: %v", err)
			}
			got, err := ParseFrame(b)
			if err != nil {
				t.Fatalf("ParseFrame: %v", err)
			}
			if diff := cmp.Diff(c.tags, got.Tags); diff != "" {
				t.Errorf("tag round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPacketRoundTrip(t *testing.T) {
	srcHWAddr := [6]byte{0xF1, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6}
	dstHWAddr := [6]byte{0x81, 0x82, 0x83, 0x84, 0x85, 0x86}

	cases := []struct {
		name string
		pkt  *Packet
	}{
		{name: "PADI", pkt: func() *Packet {
			p := NewPADI(srcHWAddr, "X", true)
			p.AddTag(TagTypeHostUniq, []byte("Y"))
			return p
		}()},
		{name: "PADI sentinel omits service name", pkt: NewPADI(srcHWAddr, "NO-SERVICE-NAME-NON-RFC-COMPLIANT", false)},
		{name: "PADO", pkt: NewPADO(srcHWAddr, dstHWAddr, "", "isp1")},
		{name: "PADR with echoed cookie", pkt: func() *Packet {
			p := NewPADR(dstHWAddr, srcHWAddr, "isp1")
			p.AddTag(TagTypeACCookie, []byte{0x01, 0x02, 0x03, 0x04})
			p.AddTag(TagTypeRelaySessionID, []byte{0xaa, 0xbb})
			return p
		}()},
		{name: "PADS", pkt: NewPADS(srcHWAddr, dstHWAddr, "isp1", SessionID(0x1234))},
		{name: "PADT", pkt: NewPADT(srcHWAddr, dstHWAddr, SessionID(0x1234))},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := c.pkt.ToBytes()
			if err != nil {
				t.Fatalf("ToBytes: %v", err)
			}
			got, err := ParseFrame(b)
			if err != nil {
				t.Fatalf("ParseFrame: %v", err)
			}
			if diff := cmp.Diff(c.pkt, got); diff != "" {
				t.Errorf("packet round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFrameBogusLength(t *testing.T) {
	srcHWAddr := [6]byte{0xF1, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6}
	dstHWAddr := [6]byte{0x81, 0x82, 0x83, 0x84, 0x85, 0x86}
	pkt := NewPADO(srcHWAddr, dstHWAddr, "", "isp1")
	b, err := pkt.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	// Truncate the frame so its declared length field no longer matches
	// the bytes actually available.
	truncated := b[:len(b)-4]
	if _, err := ParseFrame(truncated); err == nil {
		t.Fatalf("expected ParseFrame to reject a truncated frame")
	}
}

func TestWalkTagsRunawayTagTruncatesSilently(t *testing.T) {
	// A single tag header claiming a length far beyond the payload window.
	payload := []byte{0x01, 0x01, 0xff, 0xff, 'x'}
	tags := walkTags(payload, len(payload))
	if len(tags) != 0 {
		t.Fatalf("expected the runaway tag to be dropped, got %v", tags)
	}
}

func TestWalkTagsStopsAtDeclaredLength(t *testing.T) {
	// Two valid tags, but length only covers the first.
	first := &Tag{Type: TagTypeServiceName, Data: []byte("a")}
	b := encodeTagForTest(first)
	b = append(b, encodeTagForTest(&Tag{Type: TagTypeACName, Data: []byte("b")})...)

	tags := walkTags(b, len(encodeTagForTest(first)))
	if len(tags) != 1 || tags[0].Type != TagTypeServiceName {
		t.Fatalf("expected only the first tag to be decoded, got %v", tags)
	}
}

func encodeTagForTest(tag *Tag) []byte {
	out := make([]byte, 4+len(tag.Data))
	out[0] = byte(tag.Type >> 8)
	out[1] = byte(tag.Type)
	out[2] = byte(len(tag.Data) >> 8)
	out[3] = byte(len(tag.Data))
	copy(out[4:], tag.Data)
	return out
}

func TestTagEqual(t *testing.T) {
	a := &Tag{Type: TagTypeACCookie, Data: []byte{1, 2, 3}}
	b := &Tag{Type: TagTypeACCookie, Data: []byte{1, 2, 3}}
	c := &Tag{Type: TagTypeACCookie, Data: []byte{1, 2, 4}}
	if !a.Equal(b) {
		t.Errorf("expected equal tags to compare equal")
	}
	if a.Equal(c) {
		t.Errorf("expected differing tags to compare unequal")
	}
}
