package wlc

// Keys the client reads from or writes into records. The rest of each record
// is passed through untouched.
const (
	// MACField is the key under which the controller reports a client's MAC
	// address in common-oper-data entries.
	MACField = "client-mac"

	// IPAddrField is the key under which ListClients attaches the SISF
	// address bindings looked up for each client.
	IPAddrField = "ip_addr"
)

// Record is one entry of operational data as reported by the controller.
//
// The Cisco-IOS-XE-wireless-client-oper YANG model is externally defined and
// grows fields across IOS-XE releases, so records stay dynamically keyed
// rather than being forced into a struct. Use the typed helpers for the few
// fields the client itself cares about.
type Record map[string]any

// MAC returns the client MAC address reported in the record, or false when
// the field is absent or not a string.
func (r Record) MAC() (string, bool) {
	mac, ok := r[MACField].(string)
	return mac, ok
}

// GetString returns the string value stored under key, or false when the key
// is absent or holds a non-string value.
func (r Record) GetString(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}
