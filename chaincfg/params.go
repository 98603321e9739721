// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"crypto/sha256"
	"encoding/binary"
)

// Net identifies which of the recognized networks a set of Params
// describes.
type Net uint8

// The networks supported out of the box. LocalNet covers every
// custom/private network, distinguished from one another only by Name
// and the NetworkID it hashes to.
const (
	MainNet Net = iota
	TestNet
	LocalNet
)

func (n Net) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	case LocalNet:
		return "localnet"
	default:
		return "unknown"
	}
}

// mainNetNetworkID and testNetNetworkID are the 4-byte tags carried in
// every directory block header's NetworkID field on their respective
// networks. feedbeef is the long-standing mainnet constant; testnet's is
// chosen distinct from it and from the zero value ConstructHeader would
// otherwise leave an unconfigured Params at.
const (
	mainNetNetworkID = 0xfeedbeef
	testNetNetworkID = 0xfeedcafe
)

// Params groups the network-identifying parameters a Blockchain is
// instantiated with.
type Params struct {
	Net       Net
	Name      string
	NetworkID uint32
}

// MainNetParams returns the parameters for the production network.
func MainNetParams() *Params {
	return &Params{Net: MainNet, Name: "mainnet", NetworkID: mainNetNetworkID}
}

// TestNetParams returns the parameters for the public test network.
func TestNetParams() *Params {
	return &Params{Net: TestNet, Name: "testnet", NetworkID: testNetNetworkID}
}

// NewLocalParams returns the parameters for a local/custom network named
// name. NetworkID is derived as the first 4 bytes of SHA256(name), so
// distinct names can never collide by accident the way two manually
// chosen constants could.
func NewLocalParams(name string) *Params {
	sum := sha256.Sum256([]byte(name))
	return &Params{
		Net:       LocalNet,
		Name:      name,
		NetworkID: binary.BigEndian.Uint32(sum[:4]),
	}
}
