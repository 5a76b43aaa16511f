package wire

import "fmt"

// Tag is a single TLV from a discovery packet's payload.
type Tag struct {
	Type TagType
	Data []byte
}

// String renders a tag for diagnostic logging. String-valued tags are
// rendered as quoted text; everything else is rendered as a hex dump,
// matching the tag types RFC2516 actually specifies as text.
func (tag *Tag) String() string {
	switch tag.Type {
	case TagTypeServiceName, TagTypeACName,
		TagTypeServiceNameError, TagTypeACSystemError, TagTypeGenericError:
		return fmt.Sprintf("%v: %q", tag.Type, string(tag.Data))
	}
	return fmt.Sprintf("%v: %#v", tag.Type, tag.Data)
}

// Equal reports whether two tags carry the same type, length and value,
// the sense in which an AC-Cookie or Relay-Session-Id echoed into a PADR
// is verbatim. The driver itself copies those tags without calling Equal.
func (tag *Tag) Equal(other *Tag) bool {
	if tag == nil || other == nil {
		return tag == other
	}
	if tag.Type != other.Type || len(tag.Data) != len(other.Data) {
		return false
	}
	for i := range tag.Data {
		if tag.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// Packet represents a PPPoE discovery packet: the Ethernet addresses, the
// PPPoE header fields, and the decoded tag list.
type Packet struct {
	SrcHWAddr [6]byte
	DstHWAddr [6]byte
	Code      Code
	SessionID SessionID
	Tags      []*Tag
}

// GetTag returns the first tag of the given type, or nil if none is
// present.
func (pkt *Packet) GetTag(typ TagType) *Tag {
	for _, tag := range pkt.Tags {
		if tag.Type == typ {
			return tag
		}
	}
	return nil
}

// GetTags returns every tag of the given type, in the order they appeared
// on the wire. Used by the discovery packet filter to check every
// Host-Uniq tag, since a defensive caller shouldn't assume a peer sends
// at most one.
func (pkt *Packet) GetTags(typ TagType) (tags []*Tag) {
	for _, tag := range pkt.Tags {
		if tag.Type == typ {
			tags = append(tags, tag)
		}
	}
	return
}

// AddTag appends a tag to the packet's payload. The caller is responsible
// for ensuring the data matches the tag's expected format.
func (pkt *Packet) AddTag(typ TagType, data []byte) {
	pkt.Tags = append(pkt.Tags, &Tag{Type: typ, Data: data})
}

var broadcastHWAddr = [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// NewPADI builds a PADI packet. Clients wishing to accept any service
// should pass an empty serviceName; passing addServiceNameTag false omits
// the tag entirely, which some non-compliant access concentrators expect.
func NewPADI(srcHWAddr [6]byte, serviceName string, addServiceNameTag bool) *Packet {
	pkt := &Packet{
		SrcHWAddr: srcHWAddr,
		DstHWAddr: broadcastHWAddr,
		Code:      CodePADI,
	}
	if addServiceNameTag {
		pkt.AddTag(TagTypeServiceName, []byte(serviceName))
	}
	return pkt
}

// NewPADR builds a PADR packet addressed to the access concentrator that
// sent the accepted PADO.
func NewPADR(srcHWAddr, dstHWAddr [6]byte, serviceName string) *Packet {
	pkt := &Packet{
		SrcHWAddr: srcHWAddr,
		DstHWAddr: dstHWAddr,
		Code:      CodePADR,
	}
	pkt.AddTag(TagTypeServiceName, []byte(serviceName))
	return pkt
}

// NewPADT builds a PADT packet terminating the given session.
func NewPADT(srcHWAddr, dstHWAddr [6]byte, sid SessionID) *Packet {
	return &Packet{
		SrcHWAddr: srcHWAddr,
		DstHWAddr: dstHWAddr,
		Code:      CodePADT,
		SessionID: sid,
	}
}

// NewPADO builds a PADO packet. Only used by tests standing in for a fake
// access concentrator; a real client never sends one.
func NewPADO(srcHWAddr, dstHWAddr [6]byte, serviceName, acName string) *Packet {
	pkt := &Packet{
		SrcHWAddr: srcHWAddr,
		DstHWAddr: dstHWAddr,
		Code:      CodePADO,
	}
	pkt.AddTag(TagTypeServiceName, []byte(serviceName))
	pkt.AddTag(TagTypeACName, []byte(acName))
	return pkt
}

// NewPADS builds a PADS packet. Only used by tests standing in for a fake
// access concentrator.
func NewPADS(srcHWAddr, dstHWAddr [6]byte, serviceName string, sid SessionID) *Packet {
	pkt := &Packet{
		SrcHWAddr: srcHWAddr,
		DstHWAddr: dstHWAddr,
		Code:      CodePADS,
		SessionID: sid,
	}
	pkt.AddTag(TagTypeServiceName, []byte(serviceName))
	return pkt
}
