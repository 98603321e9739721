// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockelements

import (
	"encoding/binary"

	"github.com/sambarnes/factom-core/primitives"
)

// AdminMessage is the closed set of records an admin-block body may carry.
// Every concrete variant below implements it.
type AdminMessage interface {
	AdminID() byte
	Marshal() []byte
}

// Admin-id tags, one per AdminMessage variant.
const (
	AdminIDMinuteNumber                       = 0x00
	AdminIDDirectoryBlockSignature             = 0x01
	AdminIDMatryoshkaHashReveal                = 0x02
	AdminIDMatryoshkaHashAddOrReplace          = 0x03
	AdminIDServerCountIncrease                 = 0x04
	AdminIDAddFederatedServer                  = 0x05
	AdminIDAddAuditServer                      = 0x06
	AdminIDRemoveFederatedServer               = 0x07
	AdminIDAddFederatedServerSigningKey        = 0x08
	AdminIDAddFederatedServerBitcoinAnchorKey  = 0x09
	AdminIDServerFaultHandoff                  = 0x0A
	AdminIDCoinbaseDescriptor                  = 0x0B
	AdminIDCoinbaseDescriptorCancel            = 0x0C
	AdminIDAddAuthorityFactoidAddress          = 0x0D
	AdminIDAddAuthorityEfficiency              = 0x0E

	maxKnownAdminID = AdminIDAddAuthorityEfficiency
)

// MinuteNumber is a deprecated (M2) minute marker; kept for passive decode
// of historical blocks.
type MinuteNumber struct{ Minute uint8 }

func (m *MinuteNumber) AdminID() byte { return AdminIDMinuteNumber }
func (m *MinuteNumber) Marshal() []byte { return []byte{m.Minute} }

func unmarshalMinuteNumber(raw []byte) (*MinuteNumber, error) {
	if len(raw) != 1 {
		return nil, newDecodeError("MinuteNumber", ErrShortInput, "must be exactly 1 byte")
	}
	if raw[0] < 1 || raw[0] > 10 {
		return nil, newDecodeError("MinuteNumber", ErrFieldOutOfRange, "minute must be in 1..10")
	}
	return &MinuteNumber{Minute: raw[0]}, nil
}

// DirectoryBlockSignature is a federated server's signature of the
// preceding directory block's header.
type DirectoryBlockSignature struct {
	ChainID   primitives.Hash
	Signature primitives.FullSignature
}

func (m *DirectoryBlockSignature) AdminID() byte { return AdminIDDirectoryBlockSignature }
func (m *DirectoryBlockSignature) Marshal() []byte {
	buf := make([]byte, 0, 32+96)
	buf = append(buf, m.ChainID[:]...)
	buf = append(buf, m.Signature.Marshal()...)
	return buf
}

func unmarshalDirectoryBlockSignature(raw []byte) (*DirectoryBlockSignature, error) {
	if len(raw) != 128 {
		return nil, newDecodeError("DirectoryBlockSignature", ErrShortInput, "must be exactly 128 bytes")
	}
	var m DirectoryBlockSignature
	copy(m.ChainID[:], raw[:32])
	sig, err := primitives.UnmarshalFullSignature(raw[32:])
	if err != nil {
		return nil, err
	}
	m.Signature = sig
	return &m, nil
}

// MatryoshkaHashReveal announces the latest M-hash reveal used to rank
// server priority in subsequent blocks.
type MatryoshkaHashReveal struct {
	ChainID primitives.Hash
	Reveal  primitives.Hash
}

func (m *MatryoshkaHashReveal) AdminID() byte { return AdminIDMatryoshkaHashReveal }
func (m *MatryoshkaHashReveal) Marshal() []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, m.ChainID[:]...)
	buf = append(buf, m.Reveal[:]...)
	return buf
}

func unmarshalMatryoshkaHashReveal(raw []byte) (*MatryoshkaHashReveal, error) {
	if len(raw) != 64 {
		return nil, newDecodeError("MatryoshkaHashReveal", ErrShortInput, "must be exactly 64 bytes")
	}
	var m MatryoshkaHashReveal
	copy(m.ChainID[:], raw[:32])
	copy(m.Reveal[:], raw[32:])
	return &m, nil
}

// MatryoshkaHashAddOrReplace sets (or replaces) an identity's current
// M-hash, replicated from that identity's chain.
type MatryoshkaHashAddOrReplace struct {
	ChainID primitives.Hash
	NewHash primitives.Hash
}

func (m *MatryoshkaHashAddOrReplace) AdminID() byte { return AdminIDMatryoshkaHashAddOrReplace }
func (m *MatryoshkaHashAddOrReplace) Marshal() []byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, m.ChainID[:]...)
	buf = append(buf, m.NewHash[:]...)
	return buf
}

func unmarshalMatryoshkaHashAddOrReplace(raw []byte) (*MatryoshkaHashAddOrReplace, error) {
	if len(raw) != 64 {
		return nil, newDecodeError("MatryoshkaHashAddOrReplace", ErrShortInput, "must be exactly 64 bytes")
	}
	var m MatryoshkaHashAddOrReplace
	copy(m.ChainID[:], raw[:32])
	copy(m.NewHash[:], raw[32:])
	return &m, nil
}

// ServerCountIncrease increases the target server count by Value.
type ServerCountIncrease struct{ Value uint8 }

func (m *ServerCountIncrease) AdminID() byte { return AdminIDServerCountIncrease }
func (m *ServerCountIncrease) Marshal() []byte { return []byte{m.Value} }

func unmarshalServerCountIncrease(raw []byte) (*ServerCountIncrease, error) {
	if len(raw) != 1 {
		return nil, newDecodeError("ServerCountIncrease", ErrShortInput, "must be exactly 1 byte")
	}
	return &ServerCountIncrease{Value: raw[0]}, nil
}

// identityActivation is the shared (chain-id, activation-height) shape of
// AddFederatedServer, AddAuditServer, and RemoveFederatedServer.
type identityActivation struct {
	ChainID          primitives.Hash
	ActivationHeight uint32
}

func marshalIdentityActivation(a identityActivation) []byte {
	buf := make([]byte, 0, 36)
	buf = append(buf, a.ChainID[:]...)
	var h [4]byte
	binary.BigEndian.PutUint32(h[:], a.ActivationHeight)
	return append(buf, h[:]...)
}

func unmarshalIdentityActivation(element string, raw []byte) (identityActivation, error) {
	var a identityActivation
	if len(raw) != 36 {
		return a, newDecodeError(element, ErrShortInput, "must be exactly 36 bytes")
	}
	copy(a.ChainID[:], raw[:32])
	a.ActivationHeight = binary.BigEndian.Uint32(raw[32:])
	return a, nil
}

// AddFederatedServer adds an identity to the federated server pool,
// effective at ActivationHeight.
type AddFederatedServer struct{ identityActivation }

func (m *AddFederatedServer) AdminID() byte   { return AdminIDAddFederatedServer }
func (m *AddFederatedServer) Marshal() []byte { return marshalIdentityActivation(m.identityActivation) }

func unmarshalAddFederatedServer(raw []byte) (*AddFederatedServer, error) {
	a, err := unmarshalIdentityActivation("AddFederatedServer", raw)
	if err != nil {
		return nil, err
	}
	return &AddFederatedServer{a}, nil
}

// AddAuditServer adds an identity to the audit server pool, effective at
// ActivationHeight.
type AddAuditServer struct{ identityActivation }

func (m *AddAuditServer) AdminID() byte   { return AdminIDAddAuditServer }
func (m *AddAuditServer) Marshal() []byte { return marshalIdentityActivation(m.identityActivation) }

func unmarshalAddAuditServer(raw []byte) (*AddAuditServer, error) {
	a, err := unmarshalIdentityActivation("AddAuditServer", raw)
	if err != nil {
		return nil, err
	}
	return &AddAuditServer{a}, nil
}

// RemoveFederatedServer removes an identity (federated or audit) and its
// associated public keys, effective at ActivationHeight.
type RemoveFederatedServer struct{ identityActivation }

func (m *RemoveFederatedServer) AdminID() byte { return AdminIDRemoveFederatedServer }
func (m *RemoveFederatedServer) Marshal() []byte {
	return marshalIdentityActivation(m.identityActivation)
}

func unmarshalRemoveFederatedServer(raw []byte) (*RemoveFederatedServer, error) {
	a, err := unmarshalIdentityActivation("RemoveFederatedServer", raw)
	if err != nil {
		return nil, err
	}
	return &RemoveFederatedServer{a}, nil
}

// AddFederatedServerSigningKey adds (or replaces, for the given priority)
// an Ed25519 public key on an identity.
type AddFederatedServerSigningKey struct {
	ChainID          primitives.Hash
	Priority         uint8
	NewPublicKey     [32]byte
	ActivationHeight uint32
}

func (m *AddFederatedServerSigningKey) AdminID() byte { return AdminIDAddFederatedServerSigningKey }
func (m *AddFederatedServerSigningKey) Marshal() []byte {
	buf := make([]byte, 0, 69)
	buf = append(buf, m.ChainID[:]...)
	buf = append(buf, m.Priority)
	buf = append(buf, m.NewPublicKey[:]...)
	var h [4]byte
	binary.BigEndian.PutUint32(h[:], m.ActivationHeight)
	return append(buf, h[:]...)
}

func unmarshalAddFederatedServerSigningKey(raw []byte) (*AddFederatedServerSigningKey, error) {
	if len(raw) != 69 {
		return nil, newDecodeError("AddFederatedServerSigningKey", ErrShortInput, "must be exactly 69 bytes")
	}
	var m AddFederatedServerSigningKey
	copy(m.ChainID[:], raw[:32])
	m.Priority = raw[32]
	copy(m.NewPublicKey[:], raw[33:65])
	m.ActivationHeight = binary.BigEndian.Uint32(raw[65:69])
	return &m, nil
}

// AddFederatedServerBitcoinAnchorKey adds (or replaces, for the given
// priority) a Bitcoin public-key-hash anchor key.
type AddFederatedServerBitcoinAnchorKey struct {
	ChainID       primitives.Hash
	Priority      uint8
	HashType      uint8
	PublicKeyHash [20]byte
}

func (m *AddFederatedServerBitcoinAnchorKey) AdminID() byte {
	return AdminIDAddFederatedServerBitcoinAnchorKey
}
func (m *AddFederatedServerBitcoinAnchorKey) Marshal() []byte {
	buf := make([]byte, 0, 54)
	buf = append(buf, m.ChainID[:]...)
	buf = append(buf, m.Priority, m.HashType)
	return append(buf, m.PublicKeyHash[:]...)
}

func unmarshalAddFederatedServerBitcoinAnchorKey(raw []byte) (*AddFederatedServerBitcoinAnchorKey, error) {
	if len(raw) != 54 {
		return nil, newDecodeError("AddFederatedServerBitcoinAnchorKey", ErrShortInput, "must be exactly 54 bytes")
	}
	if raw[33] != 0 && raw[33] != 1 {
		return nil, newDecodeError("AddFederatedServerBitcoinAnchorKey", ErrFieldOutOfRange, "hash_type must be 0 (p2pkh) or 1 (p2sh)")
	}
	var m AddFederatedServerBitcoinAnchorKey
	copy(m.ChainID[:], raw[:32])
	m.Priority = raw[32]
	m.HashType = raw[33]
	copy(m.PublicKeyHash[:], raw[34:54])
	return &m, nil
}

// ServerFaultHandoff is a rollup of server-fault messages that authorize a
// federated/audit server swap. It carries no on-chain payload.
type ServerFaultHandoff struct{}

func (m *ServerFaultHandoff) AdminID() byte   { return AdminIDServerFaultHandoff }
func (m *ServerFaultHandoff) Marshal() []byte { return nil }

// coinbaseOutput is a (value, address) pair inside a CoinbaseDescriptor.
type coinbaseOutput struct {
	Value      uint64
	FCTAddress [32]byte
}

// CoinbaseDescriptor specifies the output addresses and amounts used to
// deterministically generate a coinbase transaction 1000 blocks later. At
// most one exists per admin block, included every 25th height.
type CoinbaseDescriptor struct {
	Outputs []coinbaseOutput
}

func (m *CoinbaseDescriptor) AdminID() byte { return AdminIDCoinbaseDescriptor }
func (m *CoinbaseDescriptor) Marshal() []byte {
	body := make([]byte, 0, len(m.Outputs)*34)
	for _, o := range m.Outputs {
		body = append(body, primitives.EncodeVarint(o.Value)...)
		body = append(body, o.FCTAddress[:]...)
	}
	buf := primitives.EncodeVarint(uint64(len(body)))
	return append(buf, body...)
}

func unmarshalCoinbaseDescriptor(raw []byte) (*CoinbaseDescriptor, []byte, error) {
	size, data, err := primitives.DecodeVarint(raw)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(data)) < size {
		return nil, nil, newDecodeError("CoinbaseDescriptor", ErrShortInput, "body truncated")
	}
	body, rest := data[:size], data[size:]

	var m CoinbaseDescriptor
	for len(body) > 0 {
		value, next, err := primitives.DecodeVarint(body)
		if err != nil {
			return nil, nil, err
		}
		if len(next) < 32 {
			return nil, nil, newDecodeError("CoinbaseDescriptor", ErrShortInput, "truncated fct_address")
		}
		var addr [32]byte
		copy(addr[:], next[:32])
		m.Outputs = append(m.Outputs, coinbaseOutput{Value: value, FCTAddress: addr})
		body = next[32:]
	}
	return &m, rest, nil
}

// CoinbaseDescriptorCancel cancels a specific output index in an earlier
// CoinbaseDescriptor before its coinbase transaction is generated.
type CoinbaseDescriptorCancel struct {
	DescriptorHeight uint64
	DescriptorIndex  uint64
}

func (m *CoinbaseDescriptorCancel) AdminID() byte { return AdminIDCoinbaseDescriptorCancel }
func (m *CoinbaseDescriptorCancel) Marshal() []byte {
	body := append(primitives.EncodeVarint(m.DescriptorHeight), primitives.EncodeVarint(m.DescriptorIndex)...)
	buf := primitives.EncodeVarint(uint64(len(body)))
	return append(buf, body...)
}

func unmarshalCoinbaseDescriptorCancel(raw []byte) (*CoinbaseDescriptorCancel, []byte, error) {
	size, data, err := primitives.DecodeVarint(raw)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(data)) < size {
		return nil, nil, newDecodeError("CoinbaseDescriptorCancel", ErrShortInput, "body truncated")
	}
	body, rest := data[:size], data[size:]

	height, body, err := primitives.DecodeVarint(body)
	if err != nil {
		return nil, nil, err
	}
	index, body, err := primitives.DecodeVarint(body)
	if err != nil {
		return nil, nil, err
	}
	if len(body) != 0 {
		return nil, nil, newDecodeError("CoinbaseDescriptorCancel", ErrTrailingBytes, "")
	}
	return &CoinbaseDescriptorCancel{DescriptorHeight: height, DescriptorIndex: index}, rest, nil
}

// AddAuthorityFactoidAddress sets the Factoid address (RCD hash) an
// identity's coinbase outputs should target, replacing any prior value.
type AddAuthorityFactoidAddress struct {
	ChainID    primitives.Hash
	FCTAddress primitives.Hash
}

func (m *AddAuthorityFactoidAddress) AdminID() byte { return AdminIDAddAuthorityFactoidAddress }
func (m *AddAuthorityFactoidAddress) Marshal() []byte {
	body := append(append([]byte{}, m.ChainID[:]...), m.FCTAddress[:]...)
	buf := primitives.EncodeVarint(uint64(len(body)))
	return append(buf, body...)
}

func unmarshalAddAuthorityFactoidAddress(raw []byte) (*AddAuthorityFactoidAddress, []byte, error) {
	size, data, err := primitives.DecodeVarint(raw)
	if err != nil {
		return nil, nil, err
	}
	if size != 64 {
		return nil, nil, newDecodeError("AddAuthorityFactoidAddress", ErrFieldOutOfRange, "length prefix must be 64")
	}
	if uint64(len(data)) < size {
		return nil, nil, newDecodeError("AddAuthorityFactoidAddress", ErrShortInput, "body truncated")
	}
	body, rest := data[:size], data[size:]

	var m AddAuthorityFactoidAddress
	copy(m.ChainID[:], body[:32])
	copy(m.FCTAddress[:], body[32:64])
	return &m, rest, nil
}

// AddAuthorityEfficiency sets what percentage (in basis points, 0..10000)
// of an identity's Factoid rewards are yielded to the grant pool.
//
// The source this was ported from reads this field as 4 bytes instead of
// 2, and in some revisions dispatches it straight into
// AddAuthorityFactoidAddress's decoder; both are corrected here — the
// field is 2 bytes big-endian and decodes with its own function.
type AddAuthorityEfficiency struct {
	ChainID              primitives.Hash
	EfficiencyBasisPoints uint16
}

func (m *AddAuthorityEfficiency) AdminID() byte { return AdminIDAddAuthorityEfficiency }
func (m *AddAuthorityEfficiency) Marshal() []byte {
	body := make([]byte, 0, 34)
	body = append(body, m.ChainID[:]...)
	var e [2]byte
	binary.BigEndian.PutUint16(e[:], m.EfficiencyBasisPoints)
	body = append(body, e[:]...)
	buf := primitives.EncodeVarint(uint64(len(body)))
	return append(buf, body...)
}

func unmarshalAddAuthorityEfficiency(raw []byte) (*AddAuthorityEfficiency, []byte, error) {
	size, data, err := primitives.DecodeVarint(raw)
	if err != nil {
		return nil, nil, err
	}
	if size != 34 {
		return nil, nil, newDecodeError("AddAuthorityEfficiency", ErrFieldOutOfRange, "length prefix must be 34")
	}
	if uint64(len(data)) < size {
		return nil, nil, newDecodeError("AddAuthorityEfficiency", ErrShortInput, "body truncated")
	}
	body, rest := data[:size], data[size:]

	efficiency := binary.BigEndian.Uint16(body[32:34])
	if efficiency > 10000 {
		return nil, nil, newDecodeError("AddAuthorityEfficiency", ErrFieldOutOfRange, "efficiency must be in 0..10000")
	}
	var m AddAuthorityEfficiency
	copy(m.ChainID[:], body[:32])
	m.EfficiencyBasisPoints = efficiency
	return &m, rest, nil
}

// OpaqueAdminMessage preserves the raw admin-id byte of a message this
// decoder does not recognize, so message count and body size stay
// self-consistent around it. Every admin-id in 0x00..0x0E is modeled by a
// concrete variant above, so this is only ever produced as a defensive
// fallback, never expected in practice.
type OpaqueAdminMessage struct{ ID byte }

func (m *OpaqueAdminMessage) AdminID() byte   { return m.ID }
func (m *OpaqueAdminMessage) Marshal() []byte { return nil }

// UnmarshalAdminMessages decodes exactly count admin messages from the
// front of raw and returns the unconsumed remainder. Admin-id bytes
// greater than 0x0E are a hard decode error; 0x00..0x0E always resolve to
// one of the concrete variants above.
func UnmarshalAdminMessages(raw []byte, count uint32) ([]AdminMessage, []byte, error) {
	data := raw
	messages := make([]AdminMessage, 0, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < 1 {
			return nil, nil, newDecodeError("AdminBlockBody", ErrShortInput, "missing admin-id byte")
		}
		adminID := data[0]
		data = data[1:]

		var msg AdminMessage
		var err error
		var fixed []byte
		switch adminID {
		case AdminIDMinuteNumber:
			if fixed, data, err = take(data, 1); err == nil {
				msg, err = unmarshalMinuteNumber(fixed)
			}
		case AdminIDDirectoryBlockSignature:
			if fixed, data, err = take(data, 128); err == nil {
				msg, err = unmarshalDirectoryBlockSignature(fixed)
			}
		case AdminIDMatryoshkaHashReveal:
			if fixed, data, err = take(data, 64); err == nil {
				msg, err = unmarshalMatryoshkaHashReveal(fixed)
			}
		case AdminIDMatryoshkaHashAddOrReplace:
			if fixed, data, err = take(data, 64); err == nil {
				msg, err = unmarshalMatryoshkaHashAddOrReplace(fixed)
			}
		case AdminIDServerCountIncrease:
			if fixed, data, err = take(data, 1); err == nil {
				msg, err = unmarshalServerCountIncrease(fixed)
			}
		case AdminIDAddFederatedServer:
			if fixed, data, err = take(data, 36); err == nil {
				msg, err = unmarshalAddFederatedServer(fixed)
			}
		case AdminIDAddAuditServer:
			if fixed, data, err = take(data, 36); err == nil {
				msg, err = unmarshalAddAuditServer(fixed)
			}
		case AdminIDRemoveFederatedServer:
			if fixed, data, err = take(data, 36); err == nil {
				msg, err = unmarshalRemoveFederatedServer(fixed)
			}
		case AdminIDAddFederatedServerSigningKey:
			if fixed, data, err = take(data, 69); err == nil {
				msg, err = unmarshalAddFederatedServerSigningKey(fixed)
			}
		case AdminIDAddFederatedServerBitcoinAnchorKey:
			if fixed, data, err = take(data, 54); err == nil {
				msg, err = unmarshalAddFederatedServerBitcoinAnchorKey(fixed)
			}
		case AdminIDServerFaultHandoff:
			msg = &ServerFaultHandoff{}
		case AdminIDCoinbaseDescriptor:
			var m *CoinbaseDescriptor
			m, data, err = unmarshalCoinbaseDescriptor(data)
			msg = m
		case AdminIDCoinbaseDescriptorCancel:
			var m *CoinbaseDescriptorCancel
			m, data, err = unmarshalCoinbaseDescriptorCancel(data)
			msg = m
		case AdminIDAddAuthorityFactoidAddress:
			var m *AddAuthorityFactoidAddress
			m, data, err = unmarshalAddAuthorityFactoidAddress(data)
			msg = m
		case AdminIDAddAuthorityEfficiency:
			var m *AddAuthorityEfficiency
			m, data, err = unmarshalAddAuthorityEfficiency(data)
			msg = m
		default:
			if adminID > maxKnownAdminID {
				return nil, nil, newDecodeError("AdminBlockBody", ErrBadTag, "admin-id greater than 0x0E")
			}
			msg = &OpaqueAdminMessage{ID: adminID}
		}
		if err != nil {
			return nil, nil, err
		}
		messages = append(messages, msg)
	}
	return messages, data, nil
}

// take splits off the first n bytes of data, failing if data is shorter.
func take(data []byte, n int) ([]byte, []byte, error) {
	if len(data) < n {
		return nil, nil, newDecodeError("AdminBlockBody", ErrShortInput, "message data truncated")
	}
	return data[:n], data[n:], nil
}
