package wire

// Code identifies a PPPoE discovery packet.
type Code uint8

// SessionID uniquely identifies a PPPoE session on a given segment, in
// combination with the peer Ethernet addresses, once discovery has
// completed.
type SessionID uint16

// TagType identifies the tags carried in a discovery packet's payload.
type TagType uint16

// PPPoE discovery packet codes, per RFC2516 section 4.
const (
	CodePADI Code = 0x09
	CodePADO Code = 0x07
	CodePADR Code = 0x19
	CodePADS Code = 0x65
	CodePADT Code = 0xa7
)

// PPPoE tag types, per RFC2516 section 5 and RFC4638.
const (
	TagTypeEOL              TagType = 0x0000
	TagTypeServiceName      TagType = 0x0101
	TagTypeACName           TagType = 0x0102
	TagTypeHostUniq         TagType = 0x0103
	TagTypeACCookie         TagType = 0x0104
	TagTypeVendorSpecific   TagType = 0x0105
	TagTypeRelaySessionID   TagType = 0x0110
	TagTypePPPMaxPayload    TagType = 0x0120
	TagTypeServiceNameError TagType = 0x0201
	TagTypeACSystemError    TagType = 0x0202
	TagTypeGenericError     TagType = 0x0203
)

// EtherTypeDiscovery is the Ethernet type used for PPPoE Discovery frames.
const EtherTypeDiscovery = 0x8863

// EtherTypeSession is the Ethernet type used for PPPoE session data frames.
// It is not otherwise used by this package: session-phase framing is the
// responsibility of the PPP session collaborator, out of scope here.
const EtherTypeSession = 0x8864

// StandardMTU is the PPPoE MTU assumed when the peer does not negotiate
// PPP-Max-Payload (RFC4638).
const StandardMTU = 1492

const (
	packetMinLength = 20 // 14 byte Ethernet header + 6 byte PPPoE header
	tagMinLength    = 4  // 2 bytes type + 2 bytes length
)

// String renders a human-readable packet code, matching the names used in
// RFC2516 and in diagnostic log output.
func (code Code) String() string {
	switch code {
	case CodePADI:
		return "PADI"
	case CodePADO:
		return "PADO"
	case CodePADR:
		return "PADR"
	case CodePADS:
		return "PADS"
	case CodePADT:
		return "PADT"
	}
	return "???"
}

// String renders a human-readable tag type name.
func (typ TagType) String() string {
	switch typ {
	case TagTypeEOL:
		return "End-Of-List"
	case TagTypeServiceName:
		return "Service-Name"
	case TagTypeACName:
		return "AC-Name"
	case TagTypeHostUniq:
		return "Host-Uniq"
	case TagTypeACCookie:
		return "AC-Cookie"
	case TagTypeVendorSpecific:
		return "Vendor-Specific"
	case TagTypeRelaySessionID:
		return "Relay-Session-Id"
	case TagTypePPPMaxPayload:
		return "PPP-Max-Payload"
	case TagTypeServiceNameError:
		return "Service-Name-Error"
	case TagTypeACSystemError:
		return "AC-System-Error"
	case TagTypeGenericError:
		return "Generic-Error"
	}
	return "Unknown"
}

// IsError reports whether typ is one of the three AC-reported error tags.
func (typ TagType) IsError() bool {
	switch typ {
	case TagTypeServiceNameError, TagTypeACSystemError, TagTypeGenericError:
		return true
	}
	return false
}
