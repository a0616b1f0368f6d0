package dn

import (
	"encoding/binary"
	"fmt"

	"github.com/KilimcininKorOglu/ldapdn/schema"
)

// The binary layout is a compact, hand-rolled format for storage and
// caching layers, not a general object serialization:
//
//	Ava: presence flag + length-prefixed upName blob,
//	     presence flag + length-prefixed upType blob,
//	     length-prefixed normType blob,
//	     human-readable flag,
//	     length-prefixed value blob (user-provided bytes),
//	     4-byte cached hash
//	Rdn: 4-byte Ava count,
//	     length-prefixed upName blob,
//	     the Avas in canonical ascending order,
//	     4-byte cached hash
//
// All integers are big-endian. Serializing an incomplete instance is a
// precondition error; nothing partial is ever written.

// Encoder accumulates the binary form of Avas and Rdns.
type Encoder struct {
	buf []byte
}

// NewEncoder creates an Encoder with a small initial capacity.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 128)}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of encoded data.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset clears the encoder buffer for reuse.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

func (e *Encoder) writeByte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *Encoder) writeUint32(v uint32) {
	e.buf = binary.BigEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) writeBlob(b []byte) {
	e.writeUint32(uint32(len(b)))
	e.buf = append(e.buf, b...)
}

// Decoder reads the binary form produced by an Encoder.
type Decoder struct {
	data   []byte
	offset int
}

// NewDecoder creates a Decoder over the given data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Offset returns the current read position in the data.
func (d *Decoder) Offset() int {
	return d.offset
}

// Remaining returns the number of bytes left to read.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.offset
}

func (d *Decoder) readByte() (byte, error) {
	if d.Remaining() < 1 {
		return 0, d.truncated("cannot read flag byte")
	}
	b := d.data[d.offset]
	d.offset++
	return b, nil
}

func (d *Decoder) readUint32() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, d.truncated("cannot read length")
	}
	v := binary.BigEndian.Uint32(d.data[d.offset:])
	d.offset += 4
	return v, nil
}

func (d *Decoder) readBlob() ([]byte, error) {
	n, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	if uint32(d.Remaining()) < n {
		return nil, d.truncated("blob length exceeds remaining data")
	}
	out := make([]byte, n)
	copy(out, d.data[d.offset:d.offset+int(n)])
	d.offset += int(n)
	return out, nil
}

func (d *Decoder) truncated(message string) error {
	return fmt.Errorf("%w: at offset %d: %s", ErrTruncated, d.offset, message)
}

// checkSerializable verifies the serialization preconditions of an Ava.
func (a *Ava) checkSerializable() error {
	if a.upName == "" {
		return fmt.Errorf("%w: empty upName", ErrIncomplete)
	}
	if a.upType == "" {
		return fmt.Errorf("%w: empty upType", ErrIncomplete)
	}
	if a.normType == "" {
		return fmt.Errorf("%w: empty normType", ErrIncomplete)
	}
	if a.value == nil {
		return fmt.Errorf("%w: no value", ErrIncomplete)
	}
	return nil
}

// Serialize writes the binary form of the Ava to the encoder.
func (a *Ava) Serialize(e *Encoder) error {
	if err := a.checkSerializable(); err != nil {
		return err
	}

	e.writeByte(1)
	e.writeBlob([]byte(a.upName))
	e.writeByte(1)
	e.writeBlob([]byte(a.upType))
	e.writeBlob([]byte(a.normType))
	if a.value.hr {
		e.writeByte(1)
	} else {
		e.writeByte(0)
	}
	e.writeBlob(a.value.up)
	e.writeUint32(a.Hash())
	return nil
}

// MarshalBinary returns the binary form of the Ava.
func (a *Ava) MarshalBinary() ([]byte, error) {
	e := NewEncoder()
	if err := a.Serialize(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DeserializeAva reads one Ava from the decoder. With a non-nil
// Manager the attribute type binding is reconstructed by resolving the
// user-provided type, falling back to the normalized type; in strict
// mode a failed resolution is an error.
func DeserializeAva(d *Decoder, sm *schema.Manager) (*Ava, error) {
	a := &Ava{}

	present, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if present != 0 {
		blob, err := d.readBlob()
		if err != nil {
			return nil, err
		}
		a.upName = string(blob)
	}

	present, err = d.readByte()
	if err != nil {
		return nil, err
	}
	if present != 0 {
		blob, err := d.readBlob()
		if err != nil {
			return nil, err
		}
		a.upType = string(blob)
	}

	normType, err := d.readBlob()
	if err != nil {
		return nil, err
	}
	a.normType = string(normType)

	hrFlag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	raw, err := d.readBlob()
	if err != nil {
		return nil, err
	}
	if hrFlag != 0 {
		a.value = NewStringValue(string(raw))
	} else {
		a.value = NewBinaryValue(raw)
	}

	if _, err := d.readUint32(); err != nil {
		return nil, err
	}

	if sm != nil {
		if err := a.rebind(sm); err != nil {
			return nil, err
		}
	}

	a.h.Store(a.computeHash())
	return a, nil
}

// rebind resolves the schema binding of a freshly deserialized Ava.
func (a *Ava) rebind(sm *schema.Manager) error {
	at, err := sm.AttributeType(a.upType)
	if err != nil {
		at, err = sm.AttributeType(a.normType)
	}
	if err != nil {
		if sm.IsRelaxed() {
			a.sm = sm
			return nil
		}
		return &SchemaError{Type: a.upType, Err: err}
	}

	value, err := NewSchemaValue(sm, at, a.value.up)
	if err != nil {
		return err
	}
	a.normType = at.OID
	a.value = value
	a.attributeType = at
	a.sm = sm
	return nil
}

// UnmarshalAva decodes one Ava from its binary form.
func UnmarshalAva(data []byte, sm *schema.Manager) (*Ava, error) {
	return DeserializeAva(NewDecoder(data), sm)
}

// Serialize writes the binary form of the Rdn to the encoder.
func (r *Rdn) Serialize(e *Encoder) error {
	if r.nbAvas == 0 {
		return fmt.Errorf("%w: empty RDN", ErrIncomplete)
	}
	if r.upName == "" {
		return fmt.Errorf("%w: empty upName", ErrIncomplete)
	}
	avas := r.Avas()
	for _, a := range avas {
		if err := a.checkSerializable(); err != nil {
			return err
		}
	}

	e.writeUint32(uint32(r.nbAvas))
	e.writeBlob([]byte(r.upName))
	for _, a := range avas {
		if err := a.Serialize(e); err != nil {
			return err
		}
	}
	e.writeUint32(r.Hash())
	return nil
}

// MarshalBinary returns the binary form of the Rdn.
func (r *Rdn) MarshalBinary() ([]byte, error) {
	e := NewEncoder()
	if err := r.Serialize(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// DeserializeRdn reads one Rdn from the decoder, rebuilding the
// per-type buckets for multi-valued RDNs and re-resolving attribute
// type bindings against the supplied Manager.
func DeserializeRdn(d *Decoder, sm *schema.Manager) (*Rdn, error) {
	count, err := d.readUint32()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: zero Ava count", ErrInvalidRdn)
	}

	upName, err := d.readBlob()
	if err != nil {
		return nil, err
	}

	r := &Rdn{sm: sm}
	for i := uint32(0); i < count; i++ {
		a, err := DeserializeAva(d, sm)
		if err != nil {
			return nil, err
		}
		r.addAva(a)
	}

	if _, err := d.readUint32(); err != nil {
		return nil, err
	}

	r.setUpName(string(upName))
	r.finalize()
	return r, nil
}

// UnmarshalRdn decodes one Rdn from its binary form.
func UnmarshalRdn(data []byte, sm *schema.Manager) (*Rdn, error) {
	return DeserializeRdn(NewDecoder(data), sm)
}
