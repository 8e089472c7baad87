// Package scenario defines the YAML scenario format for krakenprobe.
//
// A scenario names one API check: the request to issue against the
// exchange and the response shape the answer must have.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: public_ticker
//	description: "Ticker endpoint returns a well-formed ticker payload"
//	request:
//	  method: GET
//	  path: /0/public/Ticker
//	  params:
//	    pair: xbtusd
//	  auth: false
//	expect:
//	  status: 200
//	  shape: ticker
//
// # Shapes
//
// The expect.shape tag selects one of the closed set of response
// validators registered in the shape package:
//
//   - time: server time payload (unixtime + rfc1123)
//   - ticker: per-pair ticker payload (ask/bid/last and friends)
//   - orders: open-orders payload (order-id to order-record mapping)
//
// A tag outside this set is a configuration error and is rejected when
// the scenario file is loaded, before any request is sent.
//
// # Usage
//
// Load a single scenario:
//
//	sc, err := scenario.Load("scenarios/public_time.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or discover and load a directory:
//
//	scs, failures, err := scenario.LoadDir("scenarios", "public_*")
package scenario
