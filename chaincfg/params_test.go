// Copyright (c) 2024 The factom-core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import "testing"

func TestMainNetParams(t *testing.T) {
	p := MainNetParams()
	if p.Net != MainNet {
		t.Errorf("Net = %v, want MainNet", p.Net)
	}
	if p.NetworkID != mainNetNetworkID {
		t.Errorf("NetworkID = %#x, want %#x", p.NetworkID, mainNetNetworkID)
	}
}

func TestTestNetParams(t *testing.T) {
	p := TestNetParams()
	if p.Net != TestNet {
		t.Errorf("Net = %v, want TestNet", p.Net)
	}
	if p.NetworkID == MainNetParams().NetworkID {
		t.Error("TestNetParams.NetworkID collides with MainNetParams.NetworkID")
	}
}

func TestNewLocalParamsDeterministicAndDistinct(t *testing.T) {
	a := NewLocalParams("alice")
	b := NewLocalParams("alice")
	if a.NetworkID != b.NetworkID {
		t.Error("NewLocalParams not deterministic for the same name")
	}

	c := NewLocalParams("bob")
	if a.NetworkID == c.NetworkID {
		t.Error("NewLocalParams produced the same NetworkID for different names")
	}
	if a.Net != LocalNet {
		t.Errorf("Net = %v, want LocalNet", a.Net)
	}
}
