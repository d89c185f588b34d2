// Package restconf holds the RESTCONF resource paths and response envelope
// handling for the Cisco-IOS-XE-wireless-client-oper YANG model.
package restconf

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

const (
	// RootPath is the RESTCONF service root, used as a connectivity probe.
	RootPath = "/restconf/"

	// CommonOperDataPath is the operational data resource for wireless clients.
	CommonOperDataPath = "/restconf/data/Cisco-IOS-XE-wireless-client-oper:client-oper-data/common-oper-data"

	// SisfDBMACPath is the SISF database resource mapping client MACs to IP addresses.
	SisfDBMACPath = "/restconf/data/Cisco-IOS-XE-wireless-client-oper:client-oper-data/sisf-db-mac"

	// CommonOperDataKey is the envelope key wrapping the client list in responses.
	CommonOperDataKey = "Cisco-IOS-XE-wireless-client-oper:common-oper-data"

	// SisfDBMACKey is the envelope key wrapping the address binding list in responses.
	SisfDBMACKey = "Cisco-IOS-XE-wireless-client-oper:sisf-db-mac"
)

// Keyed appends a list key to a resource path, selecting a single entry.
// RESTCONF encodes list keys as "resource=key".
func Keyed(path, key string) string {
	return path + "=" + key
}

// ExtractList decodes a yang-data+json response body and returns the list of
// entries under the given envelope key.
//
// The device wraps every list in a single top-level key named after the YANG
// module. A body missing that key (a device with zero matching entries omits
// it entirely) yields an empty list, not an error. A body that is not valid
// JSON, or whose envelope value is not a list of objects, is an error.
//
// A single keyed entry is returned by the device as a one-element list under
// the same envelope key, so callers never need to special-case it.
func ExtractList(body []byte, key string) ([]map[string]any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode response envelope")
	}

	raw, ok := envelope[key]
	if !ok {
		return []map[string]any{}, nil
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(err, "unexpected shape under envelope key %q", key)
	}

	return entries, nil
}
