// Package wlc provides a Go client for querying operational state from
// Cisco IOS-XE wireless LAN controllers (e.g. the Catalyst 9800 series)
// over their RESTCONF management API.
//
// # API Access
//
// RESTCONF must be enabled on the controller:
//
//	conf t
//	 restconf
//	 ip http secure-server
//
// The client issues HTTPS GET requests with basic authentication against the
// Cisco-IOS-XE-wireless-client-oper YANG model and normalizes the responses
// into lists of records.
//
// # Operations
//
//   - Test: connectivity and credential probe against the RESTCONF root
//   - ListClients: connected wireless clients, optionally filtered by MAC,
//     enriched with each client's IP address bindings
//   - ListAddressBindings: the SISF database mapping client MACs to IPs
//
// # Error Model
//
// Invalid input (a malformed MAC filter) fails immediately with
// ErrInvalidMAC and never reaches the network. Connectivity problems are
// retried up to the configured attempt count and then reported as
// ErrRetriesExhausted; per-attempt details go to the configured logger.
//
// # Basic Usage
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    wlc "github.com/lexfrei/go-iosxe-wlc"
//	)
//
//	func main() {
//	    client, err := wlc.New("wlc1.example.net", "admin", os.Getenv("WLC_PASSWORD"))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clients, err := client.ListClients(context.Background(), nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for _, c := range clients {
//	        mac, _ := c.MAC()
//	        fmt.Printf("client %s: %v\n", mac, c[wlc.IPAddrField])
//	    }
//	}
//
// Observability hooks (structured logging, metrics) are pluggable through
// the observability package; see examples/observability.
package wlc
