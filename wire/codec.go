package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// header mirrors the on-the-wire Ethernet + PPPoE header layout used when
// parsing a raw received frame.
type header struct {
	DstHWAddr [6]byte
	SrcHWAddr [6]byte
	EtherType uint16
	VerType   uint8
	Code      uint8
	SessionID uint16
	Length    uint16
}

const verType = 0x11 // version 1, type 1: the only values RFC2516 permits

// maxPayloadLength is the largest payload ToBytes can represent: the PPPoE
// header's length field is 16 bits wide. Exceeding it while building a packet is a
// programming error, not a recoverable condition -- the caller mis-sized
// its tag values long before reaching the wire.
const maxPayloadLength = 0xffff

// walkTags decodes the TLV stream in payload[:length]. A tag whose declared
// length would run past the payload window truncates the walk: the tags
// decoded so far are returned with no error, since a malformed tag should
// end parsing silently rather than fail the whole frame.
func walkTags(payload []byte, length int) (tags []*Tag) {
	if length > len(payload) {
		length = len(payload)
	}
	buf := payload[:length]
	offset := 0
	for offset+tagMinLength <= len(buf) {
		typ := TagType(binary.BigEndian.Uint16(buf[offset : offset+2]))
		tagLen := int(binary.BigEndian.Uint16(buf[offset+2 : offset+4]))
		offset += tagMinLength
		if offset+tagLen > len(buf) {
			// runaway tag: stop cleanly, keep what we already decoded
			return tags
		}
		tags = append(tags, &Tag{Type: typ, Data: buf[offset : offset+tagLen]})
		offset += tagLen
		if typ == TagTypeEOL {
			break
		}
	}
	return tags
}

// ParseFrame decodes a single raw Ethernet frame into a discovery packet.
// If the declared PPPoE payload length plus the fixed header size exceeds
// the number of bytes actually received, ParseFrame returns ErrBogusLength
// and the caller should drop the frame (logging a warning) without
// mutating any state.
//
// Frames carrying an EtherType other than EtherTypeDiscovery are rejected
// with ErrNotDiscovery so callers sharing one raw socket across purposes
// can filter cheaply.
func ParseFrame(buf []byte) (*Packet, error) {
	if len(buf) < packetMinLength {
		return nil, fmt.Errorf("%w: frame too short (%d bytes)", ErrBogusLength, len(buf))
	}

	var hdr header
	r := bytes.NewReader(buf)
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}

	if hdr.EtherType != EtherTypeDiscovery {
		return nil, ErrNotDiscovery
	}

	if int(hdr.Length)+packetMinLength > len(buf) {
		return nil, fmt.Errorf("%w: length %d exceeds %d received bytes",
			ErrBogusLength, hdr.Length, len(buf)-packetMinLength)
	}

	payload := buf[packetMinLength : packetMinLength+int(hdr.Length)]

	return &Packet{
		SrcHWAddr: hdr.SrcHWAddr,
		DstHWAddr: hdr.DstHWAddr,
		Code:      Code(hdr.Code),
		SessionID: SessionID(hdr.SessionID),
		Tags:      walkTags(payload, len(payload)),
	}, nil
}

func (tag *Tag) toBytes(buf *bytes.Buffer) error {
	if err := binary.Write(buf, binary.BigEndian, tag.Type); err != nil {
		return fmt.Errorf("failed to write tag type: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(len(tag.Data))); err != nil {
		return fmt.Errorf("failed to write tag length: %w", err)
	}
	buf.Write(tag.Data)
	return nil
}

// ToBytes renders the packet to a byte slice ready for transmission,
// including the Ethernet header and the fixed PPPoE header whose Length
// field is computed last, as the sum of the encoded tag bytes.
func (pkt *Packet) ToBytes() ([]byte, error) {
	tagBuf := new(bytes.Buffer)
	for _, tag := range pkt.Tags {
		if err := tag.toBytes(tagBuf); err != nil {
			return nil, fmt.Errorf("failed to encode %v tag: %w", tag.Type, err)
		}
	}
	if tagBuf.Len() > maxPayloadLength {
		panic(fmt.Sprintf("wire: payload of %d bytes exceeds maximum PPPoE payload length", tagBuf.Len()))
	}

	buf := new(bytes.Buffer)
	buf.Write(pkt.DstHWAddr[:])
	buf.Write(pkt.SrcHWAddr[:])
	if err := binary.Write(buf, binary.BigEndian, uint16(EtherTypeDiscovery)); err != nil {
		return nil, fmt.Errorf("failed to write ethertype: %w", err)
	}
	buf.WriteByte(verType)
	buf.WriteByte(byte(pkt.Code))
	if err := binary.Write(buf, binary.BigEndian, uint16(pkt.SessionID)); err != nil {
		return nil, fmt.Errorf("failed to write session id: %w", err)
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(tagBuf.Len())); err != nil {
		return nil, fmt.Errorf("failed to write length: %w", err)
	}
	buf.Write(tagBuf.Bytes())

	return buf.Bytes(), nil
}
