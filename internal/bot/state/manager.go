package state

import "sync"

// User states constants
const (
	None                      = "none"
	WaitingForGlucose         = "waiting_for_glucose"
	WaitingForManualWW        = "waiting_for_manual_ww"
	WaitingForQuantity        = "waiting_for_quantity"
	WaitingForBarcode         = "waiting_for_barcode"
	WaitingForProductName     = "waiting_for_product_name"
	WaitingForProductCarbs    = "waiting_for_product_carbs"
	WaitingForProductSearch   = "waiting_for_product_search"
	WaitingForMealDesc        = "waiting_for_meal_description"
	WaitingForTargetGlucose   = "waiting_for_target_glucose"
	WaitingForICR             = "waiting_for_icr"
	WaitingForISF             = "waiting_for_isf"
	WaitingForInsulinDuration = "waiting_for_insulin_duration"
)

// StateManager abstracts conversational state storage so the bot can run
// against the in-memory manager or Redis.
type StateManager interface {
	SetUserState(userID int64, state string)
	GetUserState(userID int64) string
	ClearUserState(userID int64)
	SetTempData(userID int64, key string, value interface{})
	GetTempData(userID int64, key string) (interface{}, bool)
	ClearTempData(userID int64)
}

// Manager manages user states and temporary data in process memory.
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]interface{}
	mu         sync.RWMutex
}

// NewManager creates a new in-memory state manager.
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]interface{}),
	}
}

// SetUserState sets the state for a user.
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user.
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user.
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets temporary data for a user.
func (m *Manager) SetTempData(userID int64, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]interface{})
	}
	m.tempData[userID][key] = value
}

// GetTempData gets temporary data for a user.
func (m *Manager) GetTempData(userID int64, key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	userData, exists := m.tempData[userID]
	if !exists {
		return nil, false
	}
	value, exists := userData[key]
	return value, exists
}

// ClearTempData clears all temporary data for a user.
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}
