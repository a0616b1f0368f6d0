package schema

// AttributeUsage defines how an attribute is used in the directory.
type AttributeUsage int

const (
	// UserApplications indicates a user attribute that applications can
	// read and write. This is the default usage.
	UserApplications AttributeUsage = iota

	// DirectoryOperation indicates an operational attribute used by the
	// directory for its own purposes.
	DirectoryOperation

	// DistributedOperation indicates an operational attribute shared
	// across directory servers.
	DistributedOperation

	// DSAOperation indicates an operational attribute local to a single
	// Directory System Agent.
	DSAOperation
)

// String returns the string representation of the AttributeUsage.
func (u AttributeUsage) String() string {
	switch u {
	case UserApplications:
		return "userApplications"
	case DirectoryOperation:
		return "directoryOperation"
	case DistributedOperation:
		return "distributedOperation"
	case DSAOperation:
		return "dSAOperation"
	default:
		return "unknown"
	}
}

// IsOperational returns true if this usage indicates an operational attribute.
func (u AttributeUsage) IsOperational() bool {
	return u != UserApplications
}

// AttributeType represents an LDAP attribute type definition.
// The name model binds AVAs to attribute types to obtain the canonical
// OID form of the type and the matching rules governing value
// normalization and comparison.
type AttributeType struct {
	OID         string         // Object Identifier (e.g., "2.5.4.3")
	Name        string         // Primary name (e.g., "cn")
	Names       []string       // All names including aliases (e.g., ["cn", "commonName"])
	Desc        string         // Human-readable description
	Obsolete    bool           // Whether this attribute type is obsolete
	Superior    string         // Parent attribute type name or OID
	Equality    string         // Matching rule OID/name for equality matching
	Ordering    string         // Matching rule OID/name for ordering matching
	Substring   string         // Matching rule OID/name for substring matching
	Syntax      string         // Syntax OID (e.g., "1.3.6.1.4.1.1466.115.121.1.15")
	SingleValue bool           // If true, attribute can have only one value
	NoUserMod   bool           // If true, attribute cannot be modified by users
	Usage       AttributeUsage // How the attribute is used
}

// NewAttributeType creates a new AttributeType with the given OID and name.
// The default usage is UserApplications.
func NewAttributeType(oid, name string) *AttributeType {
	return &AttributeType{
		OID:   oid,
		Name:  name,
		Names: []string{name},
		Usage: UserApplications,
	}
}

// HasEqualityMatching returns true if this attribute type declares an
// equality matching rule, either directly or through its superior chain
// once resolved by a Manager.
func (at *AttributeType) HasEqualityMatching() bool {
	return at.Equality != ""
}

// HasOrderingMatching returns true if this attribute type declares an
// ordering matching rule.
func (at *AttributeType) HasOrderingMatching() bool {
	return at.Ordering != ""
}

// IsHumanReadable reports whether values of this attribute type are
// textual. Binary syntaxes (octet string, certificate, JPEG) are the
// exception; everything else in the core schema is string-valued.
func (at *AttributeType) IsHumanReadable() bool {
	switch at.Syntax {
	case SyntaxOctetString, SyntaxCertificate, SyntaxJPEG:
		return false
	}
	return true
}

// AddName adds an alias name to this attribute type.
func (at *AttributeType) AddName(name string) {
	for _, n := range at.Names {
		if n == name {
			return
		}
	}
	at.Names = append(at.Names, name)
}
