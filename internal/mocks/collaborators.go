package mocks

// MockModuleLoader is a mock implementation of the tuning.ModuleLoader interface.
//
// This allows testing the congestion-control enabler without issuing
// finit_module syscalls or invoking modprobe.
type MockModuleLoader struct {
	// LoadFunc is called by Load if not nil
	LoadFunc func(name string) error

	// Track calls for verification in tests
	LoadCalls     int
	LoadedModules []string
}

// Load records the module name and returns the scripted outcome.
func (m *MockModuleLoader) Load(name string) error {
	m.LoadCalls++
	m.LoadedModules = append(m.LoadedModules, name)
	if m.LoadFunc != nil {
		return m.LoadFunc(name)
	}
	return nil
}

// NewMockModuleLoader creates a new mock module loader with default behavior.
func NewMockModuleLoader() *MockModuleLoader {
	return &MockModuleLoader{}
}

// MockQuerier is a mock implementation of the resolver.Querier interface.
//
// This allows testing the verification stage without sending DNS queries.
type MockQuerier struct {
	// QueryFunc is called by Query if not nil
	QueryFunc func(domain string) error

	// Track calls for verification in tests
	QueryCalls     int
	QueriedDomains []string
}

// Query records the domain and returns the scripted outcome.
func (m *MockQuerier) Query(domain string) error {
	m.QueryCalls++
	m.QueriedDomains = append(m.QueriedDomains, domain)
	if m.QueryFunc != nil {
		return m.QueryFunc(domain)
	}
	return nil
}

// NewMockQuerier creates a new mock querier with default behavior.
func NewMockQuerier() *MockQuerier {
	return &MockQuerier{}
}
