package wlc

import "context"

// ControllerAPIClient defines the interface for IOS-XE WLC operational state
// queries. This interface enables consumers to create mock implementations
// for testing.
//
// All methods mirror the corresponding methods in Client to ensure
// compatibility and ease of use.
//
// Example usage with mocking frameworks:
//
//	// Using gomock:
//	//go:generate mockgen -destination=mocks/controller_client.go -package=mocks github.com/lexfrei/go-iosxe-wlc ControllerAPIClient
//
//	// Using testify/mock:
//	type MockClient struct {
//	    mock.Mock
//	}
//
//	func (m *MockClient) ListClients(ctx context.Context, params *wlc.ListClientsParams) ([]wlc.Record, error) {
//	    args := m.Called(ctx, params)
//	    return args.Get(0).([]wlc.Record), args.Error(1)
//	}
type ControllerAPIClient interface {
	// Test checks that the controller answers authenticated RESTCONF requests.
	Test(ctx context.Context) bool

	// ListClients retrieves the operational records of connected wireless clients.
	ListClients(ctx context.Context, params *ListClientsParams) ([]Record, error)

	// ListAddressBindings retrieves entries from the controller's SISF database.
	ListAddressBindings(ctx context.Context, params *ListAddressBindingsParams) ([]Record, error)

	// UpdateCredentials atomically replaces the basic auth credentials.
	UpdateCredentials(username, password string)
}
