package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/voss/wpfleet/internal/hostapi"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Row ----------

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- Mock Rows ----------

// mockRows implements pgx.Rows for testing.
// It iterates through a list of scan functions, one per row.
type mockRows struct {
	callIndex int
	scanFuncs []func(dest ...any) error
	err       error
}

func newMockRows(scanFuncs ...func(dest ...any) error) *mockRows {
	return &mockRows{scanFuncs: scanFuncs}
}

// newEmptyMockRows returns a mockRows that yields zero rows.
func newEmptyMockRows() *mockRows {
	return &mockRows{}
}

func (m *mockRows) Next() bool {
	return m.callIndex < len(m.scanFuncs)
}

func (m *mockRows) Scan(dest ...any) error {
	if m.callIndex < len(m.scanFuncs) {
		fn := m.scanFuncs[m.callIndex]
		m.callIndex++
		return fn(dest...)
	}
	return nil
}

func (m *mockRows) Err() error                                   { return m.err }
func (m *mockRows) Close()                                       {}
func (m *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

// ---------- Mock Hosting Client ----------

// mockHostingClient implements HostingClient for testing.
type mockHostingClient struct {
	mock.Mock
}

func (m *mockHostingClient) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockHostingClient) CreateSite(ctx context.Context, serverID, domain string) (*hostapi.CreateSiteResult, error) {
	args := m.Called(ctx, serverID, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hostapi.CreateSiteResult), args.Error(1)
}

func (m *mockHostingClient) GetDatabaseInfo(ctx context.Context, serverID, appID string) (*hostapi.DatabaseInfo, error) {
	args := m.Called(ctx, serverID, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hostapi.DatabaseInfo), args.Error(1)
}

func (m *mockHostingClient) GetDatabaseUsers(ctx context.Context, serverID, databaseID string) (*hostapi.DatabaseUsers, error) {
	args := m.Called(ctx, serverID, databaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hostapi.DatabaseUsers), args.Error(1)
}

func (m *mockHostingClient) InstallSSL(ctx context.Context, serverID, appID string, custom, forceHTTPS bool) error {
	return m.Called(ctx, serverID, appID, custom, forceHTTPS).Error(0)
}

func (m *mockHostingClient) DeleteApp(ctx context.Context, serverID, appID string) error {
	return m.Called(ctx, serverID, appID).Error(0)
}

func (m *mockHostingClient) DeleteDatabase(ctx context.Context, serverID, databaseID, appID string) error {
	return m.Called(ctx, serverID, databaseID, appID).Error(0)
}

// ---------- Mock DNS Client ----------

// mockDNSClient implements DNSClient for testing.
type mockDNSClient struct {
	mock.Mock
}

func (m *mockDNSClient) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockDNSClient) CreateARecord(ctx context.Context, name, ipAddress string, proxied bool) (string, error) {
	args := m.Called(ctx, name, ipAddress, proxied)
	return args.String(0), args.Error(1)
}

func (m *mockDNSClient) DeleteRecord(ctx context.Context, recordID string) error {
	return m.Called(ctx, recordID).Error(0)
}
