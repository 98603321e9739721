// Package chaincfg defines chain configuration parameters.
//
// Three networks are recognized: mainnet, testnet, and an arbitrary
// number of local/custom networks distinguished only by name. Unlike a
// proof-of-work chain, networks here are not incompatible in any
// consensus-rule sense — the network id is purely a wire-level tag
// directory block headers carry so that blocks from one network are
// rejected outright by a node running another.
//
//	package main
//
//	var testnet = flag.Bool("testnet", false, "operate on the test network")
//
//	// By default (without -testnet), use mainnet.
//	var chainParams = chaincfg.MainNetParams()
//
//	func main() {
//	        flag.Parse()
//	        if *testnet {
//	                chainParams = chaincfg.TestNetParams()
//	        }
//	        // later...
//	}
//
// A node operator standing up a private network picks a name and calls
// NewLocalParams(name); the resulting NetworkID is derived from the name
// so two operators who pick different names can never collide by accident.
package chaincfg
